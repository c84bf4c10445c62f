package png

// Image is a fully decoded PNG: its geometry, resolved Format, every
// ancillary chunk this module recognizes, and the reconstructed pixel
// data in Storage — a row-major, tightly bit-packed byte matrix at the
// image's native sample depth (no per-row padding). Storage always has
// length ceil(Width*Height*Format.Pixel.Volume()/8).
//
// Storage is deliberately not a caller-facing pixel type: call one of the
// Unpack methods to materialize it as a concrete representation (gray,
// gray+alpha, RGB, or RGBA at 8 or 16 bits per channel), independent of
// however the source PNG itself encoded color.
type Image struct {
	Width, Height int
	Format        Format
	Metadata      *Metadata
	Storage       []byte

	// deindex resolves a palette index to its RGBA8 color, folding in any
	// per-index tRNS alpha. Only set for Indexed formats.
	deindex func(idx uint16) (RGBA8, bool)
}

func newImage(layout Layout) *Image {
	pf := layout.Format.Pixel
	n := layout.Width * layout.Height
	storageLen := rowByteWidth(n, pf.Volume())
	img := &Image{
		Width:   layout.Width,
		Height:  layout.Height,
		Format:  layout.Format,
		Storage: make([]byte, storageLen),
	}
	if pf.Indexed {
		img.deindex = deindex(layout.Format.Palette, layout.Format.Transparency)
	}
	return img
}
