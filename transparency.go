package png

import "encoding/binary"

// Transparency is the parsed tRNS chunk. Exactly one of the three forms is
// populated, matching the pixel format it was parsed against: a single gray
// chroma key, a single RGB chroma key, or one alpha value per palette index.
type Transparency struct {
	GrayKey    uint16
	HasGrayKey bool

	RGBKey    RGB16
	HasRGBKey bool

	IndexAlpha []uint8
}

// RGB16 is a 16-bit-per-channel RGB triple. As a tRNS chroma key or a
// bKGD color it holds values at the image's own bit depth; the parsers do
// not check them against that depth's range. UnpackRGB16 also returns it,
// at full 16-bit range.
type RGB16 struct {
	R, G, B uint16
}

func parseTRNS(data []byte, pf PixelFormat, palLen int) (Transparency, error) {
	switch {
	case pf.Indexed:
		if len(data) == 0 || len(data) > palLen {
			return Transparency{}, &ParsingError{Chunk: "tRNS", Reason: "must have at most one entry per palette color"}
		}
		alpha := make([]uint8, palLen)
		for i := range alpha {
			alpha[i] = 0xff
		}
		copy(alpha, data)
		return Transparency{IndexAlpha: alpha}, nil

	case !pf.HasColor:
		if len(data) != 2 {
			return Transparency{}, &ParsingError{Chunk: "tRNS", Reason: "grayscale key must be 2 bytes"}
		}
		return Transparency{GrayKey: binary.BigEndian.Uint16(data), HasGrayKey: true}, nil

	default:
		if len(data) != 6 {
			return Transparency{}, &ParsingError{Chunk: "tRNS", Reason: "RGB key must be 6 bytes"}
		}
		return Transparency{
			RGBKey: RGB16{
				R: binary.BigEndian.Uint16(data[0:2]),
				G: binary.BigEndian.Uint16(data[2:4]),
				B: binary.BigEndian.Uint16(data[4:6]),
			},
			HasRGBKey: true,
		}, nil
	}
}
