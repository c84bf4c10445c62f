package png

// adam7Pass describes one of the seven passes of Adam7 interlacing:
// pixel (x, y) of the full image belongs to this pass when
// x%xFactor == xOffset and y%yFactor == yOffset.
type adam7Pass struct {
	xOffset, yOffset int
	xFactor, yFactor int
}

var adam7Passes = [7]adam7Pass{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

// nonInterlacedPass is the degenerate single-pass geometry used for
// images with interlace method 0: every pixel belongs to it.
var nonInterlacedPass = adam7Pass{0, 0, 1, 1}

// passesFor returns the sequence of passes a layout's scanlines arrive in:
// the seven Adam7 passes when interlaced, or one pass covering the whole
// image otherwise.
func passesFor(interlaced bool) []adam7Pass {
	if !interlaced {
		return []adam7Pass{nonInterlacedPass}
	}
	return adam7Passes[:]
}

// dims returns the pixel width and height of this pass's sub-image, for a
// full image of the given dimensions. A pass with zero width or height
// contributes no scanlines and is skipped entirely.
func (p adam7Pass) dims(width, height int) (w, h int) {
	w = ceilDiv(width-p.xOffset, p.xFactor)
	h = ceilDiv(height-p.yOffset, p.yFactor)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// rowByteWidth returns the byte width of one reconstructed (unfiltered)
// scanline holding w pixels at the given bit volume (bits per pixel).
func rowByteWidth(w int, volume int) int {
	return ceilDiv(w*volume, 8)
}
