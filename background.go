package png

import "encoding/binary"

// Background is the parsed bKGD chunk: a suggested background color in
// whatever form matches the image's pixel format.
type Background struct {
	GrayValue uint16
	RGBValue  RGB16
	PaletteIndex uint8

	Indexed bool
	Gray    bool
}

func parseBKGD(data []byte, pf PixelFormat, palLen int) (Background, error) {
	switch {
	case pf.Indexed:
		if len(data) != 1 {
			return Background{}, &ParsingError{Chunk: "bKGD", Reason: "palette index must be 1 byte"}
		}
		if int(data[0]) >= palLen {
			return Background{}, &ParsingError{Chunk: "bKGD", Reason: "palette index out of range"}
		}
		return Background{PaletteIndex: data[0], Indexed: true}, nil

	case !pf.HasColor:
		if len(data) != 2 {
			return Background{}, &ParsingError{Chunk: "bKGD", Reason: "gray value must be 2 bytes"}
		}
		return Background{GrayValue: binary.BigEndian.Uint16(data), Gray: true}, nil

	default:
		if len(data) != 6 {
			return Background{}, &ParsingError{Chunk: "bKGD", Reason: "RGB value must be 6 bytes"}
		}
		return Background{RGBValue: RGB16{
			R: binary.BigEndian.Uint16(data[0:2]),
			G: binary.BigEndian.Uint16(data[2:4]),
			B: binary.BigEndian.Uint16(data[4:6]),
		}}, nil
	}
}
