package png

// unpackSamples splits one reconstructed scanline (filter already
// reversed, no leading filter byte) into width*channels per-pixel samples,
// each left in its native bit-depth range: [0, 2^depth - 1]. Indexed rows
// yield one "sample" per pixel, the raw palette index.
func unpackSamples(raw []byte, pf PixelFormat, width int) []uint16 {
	channels := pf.Channels
	out := make([]uint16, width*channels)

	switch pf.Depth {
	case 16:
		for i := range out {
			out[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
		}
	case 8:
		for i := range out {
			out[i] = uint16(raw[i])
		}
	default: // 1, 2, 4 — always single-channel (grayscale or indexed)
		mask := uint8(1<<pf.Depth - 1)
		perByte := 8 / pf.Depth
		for i := range out {
			byteIdx := i / perByte
			slot := i % perByte
			shift := uint(8 - pf.Depth - slot*pf.Depth)
			out[i] = uint16((raw[byteIdx] >> shift) & mask)
		}
	}
	return out
}

// quantum scales a depth-bit sample up to the full 8-bit range by bit
// replication, per the PNG recommendation for sub-8-bit sample expansion:
// value * 255 / (2^depth - 1).
func quantum(sample uint16, depth int) uint8 {
	if depth == 8 {
		return uint8(sample)
	}
	maxVal := uint32(1<<uint(depth) - 1)
	return uint8((uint32(sample)*255 + maxVal/2) / maxVal)
}

// quantum16 scales a depth-bit sample up to the full 16-bit range the same
// way, for callers that want 16-bit-per-channel output regardless of the
// source depth. Used by resolvePixelAt to normalize every source format
// (native depth 1–16, and the always-8-bit palette) onto one 16-bit scale
// before the caller's requested Unpack target quantizes back down.
func quantum16(sample uint16, depth int) uint16 {
	if depth == 16 {
		return sample
	}
	maxVal := uint32(1<<uint(depth) - 1)
	return uint16((uint32(sample)*65535 + maxVal/2) / maxVal)
}

// storageBitOffset locates channel c of pixel pixelIdx (row-major,
// y*width+x) within a tightly packed Storage buffer.
func storageBitOffset(pixelIdx, channel int, pf PixelFormat) int {
	return (pixelIdx*pf.Channels + channel) * pf.Depth
}

// writeStorageSample stores one depth-bit sample at the given bit offset.
func writeStorageSample(storage []byte, bitOffset, depth int, value uint16) {
	switch depth {
	case 16:
		storage[bitOffset/8] = byte(value >> 8)
		storage[bitOffset/8+1] = byte(value)
	case 8:
		storage[bitOffset/8] = byte(value)
	default: // 1, 2, 4
		for b := 0; b < depth; b++ {
			pos := bitOffset + b
			byteIdx, shift := pos/8, uint(7-pos%8)
			if (value>>uint(depth-1-b))&1 != 0 {
				storage[byteIdx] |= 1 << shift
			} else {
				storage[byteIdx] &^= 1 << shift
			}
		}
	}
}

// readStorageSample is writeStorageSample's inverse.
func readStorageSample(storage []byte, bitOffset, depth int) uint16 {
	switch depth {
	case 16:
		return uint16(storage[bitOffset/8])<<8 | uint16(storage[bitOffset/8+1])
	case 8:
		return uint16(storage[bitOffset/8])
	default:
		var v uint16
		for b := 0; b < depth; b++ {
			pos := bitOffset + b
			byteIdx, shift := pos/8, uint(7-pos%8)
			v = v<<1 | uint16((storage[byteIdx]>>shift)&1)
		}
		return v
	}
}

// resolvedPixel is one pixel's color fully resolved to the 16-bit range,
// with alpha already folding in a tRNS chroma key when the source format
// carries no native alpha channel. Every Unpack method quantizes down
// from this common representation, which is what lets a caller request
// any target independent of the PNG's own color type.
type resolvedPixel struct {
	r, g, b, a uint16
}

// luma16 is the pixel's grayscale value at 16-bit precision, by the
// standard ITU-R BT.601 luma weights. For a source that is already
// grayscale (r == g == b), this reduces to that value exactly.
func (p resolvedPixel) luma16() uint16 {
	return uint16((299*uint32(p.r) + 587*uint32(p.g) + 114*uint32(p.b)) / 1000)
}

// resolvePixelAt reconstructs pixel idx (row-major, y*Width+x) from
// Storage at full 16-bit precision, regardless of the image's native
// pixel format.
func (img *Image) resolvePixelAt(idx int) (resolvedPixel, error) {
	pf := img.Format.Pixel
	trns := img.Format.Transparency

	if pf.Indexed {
		sample := readStorageSample(img.Storage, storageBitOffset(idx, 0, pf), pf.Depth)
		c, ok := img.deindex(sample)
		if !ok {
			return resolvedPixel{}, &ParsingError{Chunk: "IDAT", Reason: "palette index out of range"}
		}
		return resolvedPixel{
			r: quantum16(uint16(c.R), 8), g: quantum16(uint16(c.G), 8), b: quantum16(uint16(c.B), 8),
			a: quantum16(uint16(c.A), 8),
		}, nil
	}

	depth := pf.Depth
	if !pf.HasColor {
		v := readStorageSample(img.Storage, storageBitOffset(idx, 0, pf), depth)
		a16 := uint16(0xffff)
		if pf.HasAlpha {
			a16 = quantum16(readStorageSample(img.Storage, storageBitOffset(idx, 1, pf), depth), depth)
		} else if trns != nil && trns.HasGrayKey && v == trns.GrayKey {
			a16 = 0
		}
		v16 := quantum16(v, depth)
		return resolvedPixel{r: v16, g: v16, b: v16, a: a16}, nil
	}

	r := readStorageSample(img.Storage, storageBitOffset(idx, 0, pf), depth)
	g := readStorageSample(img.Storage, storageBitOffset(idx, 1, pf), depth)
	b := readStorageSample(img.Storage, storageBitOffset(idx, 2, pf), depth)
	if pf.BGROrder {
		r, b = b, r
	}
	a16 := uint16(0xffff)
	if pf.HasAlpha {
		a16 = quantum16(readStorageSample(img.Storage, storageBitOffset(idx, 3, pf), depth), depth)
	} else if trns != nil && trns.HasRGBKey && r == trns.RGBKey.R && g == trns.RGBKey.G && b == trns.RGBKey.B {
		a16 = 0
	}
	return resolvedPixel{r: quantum16(r, depth), g: quantum16(g, depth), b: quantum16(b, depth), a: a16}, nil
}

// UnpackGray8 materializes the image as one 8-bit luma sample per pixel.
func (img *Image) UnpackGray8() ([]uint8, error) {
	out := make([]uint8, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = uint8(p.luma16() >> 8)
	}
	return out, nil
}

// UnpackGray16 is UnpackGray8 at 16 bits per pixel.
func (img *Image) UnpackGray16() ([]uint16, error) {
	out := make([]uint16, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = p.luma16()
	}
	return out, nil
}

// UnpackGrayAlpha8 materializes the image as 8-bit gray-plus-alpha
// pixels, synthesizing alpha from a tRNS chroma key when the source has
// no native alpha channel.
func (img *Image) UnpackGrayAlpha8() ([]VA8, error) {
	out := make([]VA8, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = VA8{V: uint8(p.luma16() >> 8), A: uint8(p.a >> 8)}
	}
	return out, nil
}

// UnpackGrayAlpha16 is UnpackGrayAlpha8 at 16 bits per channel.
func (img *Image) UnpackGrayAlpha16() ([]VA16, error) {
	out := make([]VA16, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = VA16{V: p.luma16(), A: p.a}
	}
	return out, nil
}

// UnpackRGB8 materializes the image as 8-bit RGB pixels with no alpha
// channel. Any tRNS chroma key is dropped; callers who need per-pixel
// transparency should use UnpackRGBA8 instead.
func (img *Image) UnpackRGB8() ([]RGB8, error) {
	out := make([]RGB8, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = RGB8{R: uint8(p.r >> 8), G: uint8(p.g >> 8), B: uint8(p.b >> 8)}
	}
	return out, nil
}

// UnpackRGB16 is UnpackRGB8 at 16 bits per channel.
func (img *Image) UnpackRGB16() ([]RGB16, error) {
	out := make([]RGB16, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = RGB16{R: p.r, G: p.g, B: p.b}
	}
	return out, nil
}

// UnpackRGBA8 materializes the image as 8-bit RGBA pixels, synthesizing
// alpha from a tRNS chroma key when a grayscale or RGB source has no
// native alpha channel. Indexed sources take alpha from the per-index
// tRNS values, or 255 for an index with no tRNS entry.
func (img *Image) UnpackRGBA8() ([]RGBA8, error) {
	out := make([]RGBA8, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = RGBA8{R: uint8(p.r >> 8), G: uint8(p.g >> 8), B: uint8(p.b >> 8), A: uint8(p.a >> 8)}
	}
	return out, nil
}

// UnpackRGBA16 is UnpackRGBA8 at 16 bits per channel.
func (img *Image) UnpackRGBA16() ([]RGBA16, error) {
	out := make([]RGBA16, img.Width*img.Height)
	for i := range out {
		p, err := img.resolvePixelAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = RGBA16{R: p.r, G: p.g, B: p.b, A: p.a}
	}
	return out, nil
}
