package png

// Format is the fully resolved pixel interpretation for an image: its raw
// sample layout plus whatever PLTE/tRNS/bKGD chunks refine it.
type Format struct {
	Pixel        PixelFormat
	Palette      Palette
	Transparency *Transparency
	Background   *Background
}

// Layout adds the scanline geometry (width, height, interlacing) that a
// Format needs to actually be decoded into pixels.
type Layout struct {
	Format      Format
	Width       int
	Height      int
	Interlaced  bool
}

// newLayout builds a Layout from a validated Header and its accumulated
// ancillary chunks.
func newLayout(h Header, pf PixelFormat, pal Palette, trns *Transparency, bkgd *Background) Layout {
	return Layout{
		Format: Format{
			Pixel:        pf,
			Palette:      pal,
			Transparency: trns,
			Background:   bkgd,
		},
		Width:      int(h.Width),
		Height:     int(h.Height),
		Interlaced: h.InterlaceMethod == InterlaceAdam7,
	}
}
