package png

import "encoding/binary"

// Header is the parsed IHDR chunk.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// Color type codes, per spec.md §3.
const (
	colorGray       = 0
	colorTrueColor  = 2
	colorIndexed    = 3
	colorGrayAlpha  = 4
	colorTrueAlpha  = 6
)

// Interlace methods.
const (
	InterlaceNone  = 0
	InterlaceAdam7 = 1
)

// PixelFormat is the set of attributes derived from (bit depth, color
// type): how many bits a sample occupies, how many samples a pixel has,
// and whether the format carries color, alpha, or a palette index.
type PixelFormat struct {
	Depth    int
	Channels int
	HasColor bool
	HasAlpha bool
	Indexed  bool
	// BGROrder is set for the iOS/CgBI variant, whose samples are stored
	// BGR or BGRA instead of RGB/RGBA.
	BGROrder bool
}

// Volume is the bits per pixel: depth × channel count.
func (f PixelFormat) Volume() int { return f.Depth * f.Channels }

func parseIHDR(data []byte, standard Standard) (Header, PixelFormat, error) {
	if len(data) != 13 {
		return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "length must be 13"}
	}
	h := Header{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}
	if h.Width == 0 || h.Width > 1<<31-1 {
		return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "width out of range"}
	}
	if h.Height == 0 || h.Height > 1<<31-1 {
		return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "height out of range"}
	}
	if h.CompressionMethod != 0 {
		return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "unsupported compression method"}
	}
	if h.FilterMethod != 0 {
		return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "unsupported filter method"}
	}
	if h.InterlaceMethod != InterlaceNone && h.InterlaceMethod != InterlaceAdam7 {
		return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "unsupported interlace method"}
	}

	if standard == StandardIOS {
		if h.ColorType != colorTrueColor && h.ColorType != colorTrueAlpha {
			return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "iOS variant requires rgb8/rgba8"}
		}
		if h.BitDepth != 8 {
			return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "iOS variant requires bit depth 8"}
		}
	}

	pf, ok := derivePixelFormat(h.BitDepth, h.ColorType)
	if !ok {
		return Header{}, PixelFormat{}, &ParsingError{Chunk: "IHDR", Reason: "invalid bit depth / color type combination"}
	}
	pf.BGROrder = standard == StandardIOS
	return h, pf, nil
}

func derivePixelFormat(depth, colorType uint8) (PixelFormat, bool) {
	allowed := func(depths ...uint8) bool {
		for _, d := range depths {
			if d == depth {
				return true
			}
		}
		return false
	}
	switch colorType {
	case colorGray:
		if !allowed(1, 2, 4, 8, 16) {
			return PixelFormat{}, false
		}
		return PixelFormat{Depth: int(depth), Channels: 1}, true
	case colorTrueColor:
		if !allowed(8, 16) {
			return PixelFormat{}, false
		}
		return PixelFormat{Depth: int(depth), Channels: 3, HasColor: true}, true
	case colorIndexed:
		if !allowed(1, 2, 4, 8) {
			return PixelFormat{}, false
		}
		return PixelFormat{Depth: int(depth), Channels: 1, HasColor: true, Indexed: true}, true
	case colorGrayAlpha:
		if !allowed(8, 16) {
			return PixelFormat{}, false
		}
		return PixelFormat{Depth: int(depth), Channels: 2, HasAlpha: true}, true
	case colorTrueAlpha:
		if !allowed(8, 16) {
			return PixelFormat{}, false
		}
		return PixelFormat{Depth: int(depth), Channels: 4, HasColor: true, HasAlpha: true}, true
	default:
		return PixelFormat{}, false
	}
}
