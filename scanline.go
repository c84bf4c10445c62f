package png

// scanlineDriver reconstructs an Image's Storage bytes from the bytes an
// Inflator yields, one reconstructed scanline at a time, and suspends
// cleanly (ok=false, no error) whenever the inflator has not yet produced
// a full row. It resumes exactly where it left off — mid-pass, mid-row —
// the next time advance is called with more available input.
type scanlineDriver struct {
	layout Layout
	img    *Image

	passes  []adam7Pass
	passIdx int
	rowIdx  int
	prevRow []byte
}

func newScanlineDriver(layout Layout, img *Image) *scanlineDriver {
	return &scanlineDriver{
		layout: layout,
		img:    img,
		passes: passesFor(layout.Interlaced),
	}
}

// advance pulls as many complete scanlines as inf currently has buffered,
// writing reconstructed samples into img.Storage. It returns done=true
// once every pass has been fully consumed.
func (d *scanlineDriver) advance(inf *Inflator) (done bool, err error) {
	pf := d.layout.Format.Pixel
	delay := delayFor(pf)

	for d.passIdx < len(d.passes) {
		p := d.passes[d.passIdx]
		w, h := p.dims(d.layout.Width, d.layout.Height)
		if w == 0 || h == 0 {
			d.passIdx++
			d.rowIdx, d.prevRow = 0, nil
			continue
		}
		rowBytes := rowByteWidth(w, pf.Volume())

		for d.rowIdx < h {
			raw, ok := inf.Pull(rowBytes + 1)
			if !ok {
				return false, nil
			}
			if d.prevRow == nil {
				d.prevRow = make([]byte, rowBytes)
			}
			if err := unfilter(raw, d.prevRow, delay); err != nil {
				return false, err
			}
			cdat := raw[1:]
			d.writeRow(p, d.rowIdx, cdat, w)
			d.prevRow = cdat
			d.rowIdx++
		}
		d.passIdx++
		d.rowIdx, d.prevRow = 0, nil
	}
	return true, nil
}

// delayFor is the Sub/Average/Paeth predictor stride: one byte per pixel
// group for depths < 8 (PNG predicts byte-by-byte, not sample-by-sample,
// below one byte per pixel), otherwise the pixel's own byte width.
func delayFor(pf PixelFormat) int {
	if pf.Volume() < 8 {
		return 1
	}
	return pf.Volume() / 8
}

// writeRow scatters one reconstructed, unfiltered scanline's samples into
// img.Storage at the pixel positions pass p's geometry assigns them,
// verbatim in whatever channel order the bitstream carries them (e.g.
// BGR(A) for the iOS/CgBI variant) — channel reordering and color-target
// conversion both happen later, in Unpack.
func (d *scanlineDriver) writeRow(p adam7Pass, sy int, cdat []byte, w int) {
	pf := d.layout.Format.Pixel
	channels := pf.Channels
	samples := unpackSamples(cdat, pf, w)
	width := d.layout.Width
	storage := d.img.Storage

	for sx := 0; sx < w; sx++ {
		x := p.xOffset + sx*p.xFactor
		y := p.yOffset + sy*p.yFactor
		idx := y*width + x
		for c := 0; c < channels; c++ {
			bitOffset := storageBitOffset(idx, c, pf)
			writeStorageSample(storage, bitOffset, pf.Depth, samples[sx*channels+c])
		}
	}
}
