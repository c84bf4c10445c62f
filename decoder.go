package png

import (
	"io"
	"log"

	"github.com/pkg/errors"
)

// Option configures a Decode call.
type Option func(*config)

type config struct {
	logger   *log.Logger
	standard *Standard // nil: auto-detect from a leading CgBI chunk
}

// WithLogger installs a logger for non-fatal events: unrecognized
// chunks, a detected CgBI marker. Decoding proceeds identically
// whether or not one is installed.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithStandard overrides auto-detection of the iOS/CgBI container variant.
// Decode auto-detects by default: a leading CgBI chunk selects
// StandardIOS, its absence selects StandardPNG.
func WithStandard(s Standard) Option {
	return func(c *config) { c.standard = &s }
}

// Decode reads a complete PNG (or Apple iOS/CgBI variant) datastream from
// r and returns its decoded pixels and recognized metadata.
func Decode(r io.Reader, opts ...Option) (*Image, error) {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	if err := checkSignature(r); err != nil {
		return nil, err
	}

	var (
		ord      chunkOrder
		meta     = newMetadata(cfg.logger)
		standard = StandardPNG
		pinned   = cfg.standard != nil

		header Header
		pf     PixelFormat
		pal    Palette
		trns   *Transparency
		bkgd   *Background

		layout Layout
		inf    *Inflator
		driver *scanlineDriver
		img    *Image
	)
	if pinned {
		standard = *cfg.standard
	}

	for {
		raw, err := nextChunk(r)
		if err != nil {
			return nil, err
		}
		if err := ord.observe(raw.Type); err != nil {
			return nil, err
		}

		switch raw.Type {
		case typeCgBI:
			if !pinned {
				standard = StandardIOS
			}
			if cfg.logger != nil {
				cfg.logger.Printf("png: detected iOS/CgBI variant")
			}

		case typeIHDR:
			header, pf, err = parseIHDR(raw.Data, standard)
			if err != nil {
				return nil, err
			}

		case typePLTE:
			pal, err = parsePLTE(raw.Data, pf)
			if err != nil {
				return nil, err
			}

		case typeTRNS:
			if pf.HasAlpha {
				return nil, &ParsingError{Chunk: "tRNS", Reason: "forbidden for color types that already carry alpha"}
			}
			t, err := parseTRNS(raw.Data, pf, len(pal))
			if err != nil {
				return nil, err
			}
			trns = &t

		case typeBKGD:
			b, err := parseBKGD(raw.Data, pf, len(pal))
			if err != nil {
				return nil, err
			}
			bkgd = &b

		case typeTIME:
			t, err := parseTIME(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.Time = &t

		case typeCHRM:
			c, err := parseCHRM(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.Chromaticities = &c

		case typeGAMA:
			g, err := parseGAMA(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.Gamma = &g

		case typeSRGB:
			intent, err := parseSRGB(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.RenderingIntent = &intent

		case typeSBIT:
			sb, err := parseSBIT(raw.Data, pf)
			if err != nil {
				return nil, err
			}
			meta.SignificantBits = &sb

		case typeICCP:
			p, err := parseICCP(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.ICCProfile = &p

		case typeHIST:
			h, err := parseHIST(raw.Data, len(pal))
			if err != nil {
				return nil, err
			}
			meta.Histogram = h

		case typePHYS:
			p, err := parsePHYS(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.Physical = &p

		case typeSPLT:
			s, err := parseSPLT(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.SuggestedPalettes = append(meta.SuggestedPalettes, s)

		case typeTEXT:
			t, err := parseTEXT(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.Text = append(meta.Text, t)

		case typeZTXT:
			t, err := parseZTXT(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.Text = append(meta.Text, t)

		case typeITXT:
			t, err := parseITXT(raw.Data)
			if err != nil {
				return nil, err
			}
			meta.Text = append(meta.Text, t)

		case typeIDAT:
			if inf == nil {
				if pf.Indexed && len(pal) == 0 {
					return nil, requiredErr("IDAT", "PLTE")
				}
				layout = newLayout(header, pf, pal, trns, bkgd)
				img = newImage(layout)
				img.Metadata = meta
				inf = NewInflator(standard)
				driver = newScanlineDriver(layout, img)
			}
			if _, err := inf.Push(raw.Data); err != nil {
				if err == errPushAfterComplete {
					return nil, &DecodingError{Kind: ExtraneousImageDataCompressedData, Curr: "IDAT"}
				}
				return nil, errors.WithStack(err)
			}
			if _, err := driver.advance(inf); err != nil {
				return nil, err
			}

		case typeIEND:
			if inf == nil {
				// unreachable: order.observe already requires a prior IDAT
				return nil, &DecodingError{Kind: Required, Curr: "IEND", Prev: "IDAT"}
			}
			if _, err := inf.Push(nil); err != nil {
				return nil, errors.WithStack(err)
			}
			done, err := driver.advance(inf)
			if err != nil {
				return nil, err
			}
			if !done || !inf.Done() {
				return nil, &DecodingError{Kind: IncompleteImageDataCompressedDatastream}
			}
			if inf.Pending() > 0 {
				return nil, &DecodingError{Kind: ExtraneousImageData}
			}
			return img, nil

		default:
			meta.recordUnknown(raw.Type, raw.Data)
		}
	}
}
