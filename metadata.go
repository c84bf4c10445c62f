package png

import (
	"encoding/binary"
	"log"
	"strings"
	"time"
)

// Time is the parsed tIME chunk.
type Time struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// ToTime converts Time to a UTC time.Time.
func (t Time) ToTime() time.Time {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day), int(t.Hour), int(t.Minute), int(t.Second), 0, time.UTC)
}

func parseTIME(data []byte) (Time, error) {
	if len(data) != 7 {
		return Time{}, &ParsingError{Chunk: "tIME", Reason: "length must be 7"}
	}
	return Time{
		Year:   binary.BigEndian.Uint16(data[0:2]),
		Month:  data[2],
		Day:    data[3],
		Hour:   data[4],
		Minute: data[5],
		Second: data[6],
	}, nil
}

// Chromaticities is the parsed cHRM chunk: white point plus red/green/blue
// primaries, each coordinate in units of 1/100000.
type Chromaticities struct {
	WhiteX, WhiteY uint32
	RedX, RedY     uint32
	GreenX, GreenY uint32
	BlueX, BlueY   uint32
}

func parseCHRM(data []byte) (Chromaticities, error) {
	if len(data) != 32 {
		return Chromaticities{}, &ParsingError{Chunk: "cHRM", Reason: "length must be 32"}
	}
	u32 := func(i int) uint32 { return binary.BigEndian.Uint32(data[i : i+4]) }
	return Chromaticities{
		WhiteX: u32(0), WhiteY: u32(4),
		RedX: u32(8), RedY: u32(12),
		GreenX: u32(16), GreenY: u32(20),
		BlueX: u32(24), BlueY: u32(28),
	}, nil
}

// Gamma is the parsed gAMA chunk, in units of 1/100000.
type Gamma uint32

func parseGAMA(data []byte) (Gamma, error) {
	if len(data) != 4 {
		return 0, &ParsingError{Chunk: "gAMA", Reason: "length must be 4"}
	}
	g := binary.BigEndian.Uint32(data)
	if g == 0 {
		return 0, &ParsingError{Chunk: "gAMA", Reason: "gamma must not be zero"}
	}
	return Gamma(g), nil
}

// RenderingIntent is the parsed sRGB chunk.
type RenderingIntent uint8

const (
	IntentPerceptual RenderingIntent = iota
	IntentRelativeColorimetric
	IntentSaturation
	IntentAbsoluteColorimetric
)

func parseSRGB(data []byte) (RenderingIntent, error) {
	if len(data) != 1 {
		return 0, &ParsingError{Chunk: "sRGB", Reason: "length must be 1"}
	}
	if data[0] > byte(IntentAbsoluteColorimetric) {
		return 0, &ParsingError{Chunk: "sRGB", Reason: "unrecognized rendering intent"}
	}
	return RenderingIntent(data[0]), nil
}

// ICCProfile is the parsed iCCP chunk: a named, inflated ICC profile. This
// module exposes the profile bytes as-is; it does not interpret them (see
// Non-goals: no ICC color management).
type ICCProfile struct {
	Name    string
	Profile []byte
}

func parseICCP(data []byte) (ICCProfile, error) {
	nul := indexByte(data, 0)
	if nul < 0 || nul > 79 {
		return ICCProfile{}, &ParsingError{Chunk: "iCCP", Reason: "missing or oversized profile name"}
	}
	name := string(data[:nul])
	rest := data[nul+1:]
	if len(rest) < 1 {
		return ICCProfile{}, &ParsingError{Chunk: "iCCP", Reason: "missing compression method"}
	}
	if rest[0] != 0 {
		return ICCProfile{}, &ParsingError{Chunk: "iCCP", Reason: "unsupported compression method"}
	}
	profile, err := inflateAll(rest[1:])
	if err != nil {
		return ICCProfile{}, err
	}
	return ICCProfile{Name: name, Profile: profile}, nil
}

// inflateAll drains a self-contained zlib stream (an iCCP profile, or the
// body of a zTXt/iTXt compressed text chunk) to completion via the same
// Inflator used for IDAT.
func inflateAll(src []byte) ([]byte, error) {
	inf := NewInflator(StandardPNG)
	if _, err := inf.Push(src); err != nil {
		return nil, err
	}
	if !inf.Done() {
		return nil, &InflationError{Kind: TruncatedStream, Detail: "iCCP/zTXt/iTXt profile"}
	}
	return inf.PullAll(), nil
}

// Histogram is the parsed hIST chunk: one approximate usage frequency per
// palette entry.
type Histogram []uint16

func parseHIST(data []byte, palLen int) (Histogram, error) {
	if len(data) != 2*palLen {
		return nil, &ParsingError{Chunk: "hIST", Reason: "must have exactly one entry per palette color"}
	}
	h := make(Histogram, palLen)
	for i := range h {
		h[i] = binary.BigEndian.Uint16(data[2*i : 2*i+2])
	}
	return h, nil
}

// PhysicalDimensions is the parsed pHYs chunk.
type PhysicalDimensions struct {
	PixelsPerUnitX uint32
	PixelsPerUnitY uint32
	UnitIsMeter    bool
}

func parsePHYS(data []byte) (PhysicalDimensions, error) {
	if len(data) != 9 {
		return PhysicalDimensions{}, &ParsingError{Chunk: "pHYs", Reason: "length must be 9"}
	}
	unit := data[8]
	if unit > 1 {
		return PhysicalDimensions{}, &ParsingError{Chunk: "pHYs", Reason: "unrecognized unit specifier"}
	}
	return PhysicalDimensions{
		PixelsPerUnitX: binary.BigEndian.Uint32(data[0:4]),
		PixelsPerUnitY: binary.BigEndian.Uint32(data[4:8]),
		UnitIsMeter:    unit == 1,
	}, nil
}

// SuggestedPaletteEntry is one entry of an sPLT chunk.
type SuggestedPaletteEntry struct {
	R, G, B, A uint16
	Frequency  uint16
}

// SuggestedPalette is the parsed sPLT chunk.
type SuggestedPalette struct {
	Name    string
	Depth   uint8
	Entries []SuggestedPaletteEntry
}

func parseSPLT(data []byte) (SuggestedPalette, error) {
	nul := indexByte(data, 0)
	if nul < 0 || nul > 79 {
		return SuggestedPalette{}, &ParsingError{Chunk: "sPLT", Reason: "missing or oversized palette name"}
	}
	name := string(data[:nul])
	rest := data[nul+1:]
	if len(rest) < 1 {
		return SuggestedPalette{}, &ParsingError{Chunk: "sPLT", Reason: "missing sample depth"}
	}
	depth := rest[0]
	rest = rest[1:]

	var entrySize int
	switch depth {
	case 8:
		entrySize = 6
	case 16:
		entrySize = 10
	default:
		return SuggestedPalette{}, &ParsingError{Chunk: "sPLT", Reason: "sample depth must be 8 or 16"}
	}
	if len(rest)%entrySize != 0 {
		return SuggestedPalette{}, &ParsingError{Chunk: "sPLT", Reason: "entry data is misaligned"}
	}
	n := len(rest) / entrySize
	entries := make([]SuggestedPaletteEntry, n)
	for i := range entries {
		e := rest[i*entrySize:]
		if depth == 8 {
			entries[i] = SuggestedPaletteEntry{
				R: uint16(e[0]), G: uint16(e[1]), B: uint16(e[2]), A: uint16(e[3]),
				Frequency: binary.BigEndian.Uint16(e[4:6]),
			}
		} else {
			entries[i] = SuggestedPaletteEntry{
				R: binary.BigEndian.Uint16(e[0:2]), G: binary.BigEndian.Uint16(e[2:4]),
				B: binary.BigEndian.Uint16(e[4:6]), A: binary.BigEndian.Uint16(e[6:8]),
				Frequency: binary.BigEndian.Uint16(e[8:10]),
			}
		}
	}
	return SuggestedPalette{Name: name, Depth: depth, Entries: entries}, nil
}

// TextEntry is a decoded tEXt/zTXt/iTXt chunk, normalized to a common shape.
type TextEntry struct {
	Keyword  string
	Language string
	Translated string
	Text     string
	Compressed bool
}

func parseTEXT(data []byte) (TextEntry, error) {
	nul := indexByte(data, 0)
	if nul < 0 || nul > 79 {
		return TextEntry{}, &TextError{Chunk: "tEXt", Reason: "missing or oversized keyword"}
	}
	return TextEntry{Keyword: string(data[:nul]), Text: string(data[nul+1:])}, nil
}

func parseZTXT(data []byte) (TextEntry, error) {
	nul := indexByte(data, 0)
	if nul < 0 || nul > 79 {
		return TextEntry{}, &TextError{Chunk: "zTXt", Reason: "missing or oversized keyword"}
	}
	rest := data[nul+1:]
	if len(rest) < 1 {
		return TextEntry{}, &TextError{Chunk: "zTXt", Reason: "missing compression method"}
	}
	if rest[0] != 0 {
		return TextEntry{}, &TextError{Chunk: "zTXt", Reason: "unsupported compression method"}
	}
	text, err := inflateAll(rest[1:])
	if err != nil {
		return TextEntry{}, err
	}
	return TextEntry{Keyword: string(data[:nul]), Text: string(text), Compressed: true}, nil
}

func parseITXT(data []byte) (TextEntry, error) {
	nul := indexByte(data, 0)
	if nul < 0 || nul > 79 {
		return TextEntry{}, &TextError{Chunk: "iTXt", Reason: "missing or oversized keyword"}
	}
	keyword := string(data[:nul])
	rest := data[nul+1:]
	if len(rest) < 2 {
		return TextEntry{}, &TextError{Chunk: "iTXt", Reason: "truncated header"}
	}
	compressed, method := rest[0], rest[1]
	rest = rest[2:]

	langEnd := indexByte(rest, 0)
	if langEnd < 0 {
		return TextEntry{}, &TextError{Chunk: "iTXt", Reason: "missing language tag terminator"}
	}
	lang := string(rest[:langEnd])
	rest = rest[langEnd+1:]

	transEnd := indexByte(rest, 0)
	if transEnd < 0 {
		return TextEntry{}, &TextError{Chunk: "iTXt", Reason: "missing translated-keyword terminator"}
	}
	translated := string(rest[:transEnd])
	rest = rest[transEnd+1:]

	if compressed == 0 {
		return TextEntry{Keyword: keyword, Language: lang, Translated: translated, Text: string(rest)}, nil
	}
	if compressed != 1 {
		return TextEntry{}, &TextError{Chunk: "iTXt", Reason: "compression flag must be 0 or 1"}
	}
	if method != 0 {
		return TextEntry{}, &TextError{Chunk: "iTXt", Reason: "unsupported compression method"}
	}
	text, err := inflateAll(rest)
	if err != nil {
		return TextEntry{}, err
	}
	return TextEntry{Keyword: keyword, Language: lang, Translated: translated, Text: string(text), Compressed: true}, nil
}

func indexByte(b []byte, c byte) int {
	return strings.IndexByte(string(b), c)
}

// Metadata accumulates every ancillary chunk encountered while decoding,
// plus a sink for chunk types this module does not interpret.
type Metadata struct {
	Time            *Time
	Chromaticities  *Chromaticities
	Gamma           *Gamma
	RenderingIntent *RenderingIntent
	ICCProfile      *ICCProfile
	Histogram       Histogram
	Physical        *PhysicalDimensions
	SuggestedPalettes []SuggestedPalette
	Text            []TextEntry
	SignificantBits *SignificantBits

	// Unknown holds the raw payload of every chunk, ancillary or critical,
	// whose type this module does not parse, keyed by its 4-character
	// type code.
	Unknown map[string][][]byte

	log *log.Logger
}

func newMetadata(logger *log.Logger) *Metadata {
	return &Metadata{Unknown: make(map[string][][]byte), log: logger}
}

// recordUnknown stashes the payload of a chunk type this module has no
// parser for. Unrecognized chunks are ignored for decoding purposes but
// preserved for callers that want them. This applies to critical and
// ancillary chunks alike: the type check only rejects a type code whose
// reserved bit is set.
func (m *Metadata) recordUnknown(id ChunkIdentifier, data []byte) {
	name := id.String()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.Unknown[name] = append(m.Unknown[name], cp)
	if m.log != nil {
		m.log.Printf("png: ignoring unrecognized chunk %q (%d bytes)", name, len(data))
	}
}
