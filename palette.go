package png

// Palette is the parsed PLTE chunk: up to 256 RGB entries indexed by an
// indexed-color pixel's sample value.
type Palette []RGB8

// RGB8 is one 24-bit palette entry.
type RGB8 struct {
	R, G, B uint8
}

func parsePLTE(data []byte, pf PixelFormat) (Palette, error) {
	if len(data)%3 != 0 {
		return nil, &ParsingError{Chunk: "PLTE", Reason: "length must be a multiple of 3"}
	}
	n := len(data) / 3
	if n == 0 {
		return nil, &ParsingError{Chunk: "PLTE", Reason: "must have at least one entry"}
	}
	if !pf.HasColor {
		return nil, &ParsingError{Chunk: "PLTE", Reason: "forbidden for grayscale color types"}
	}
	maxEntries := 1 << uint(pf.Depth)
	if maxEntries > 256 {
		maxEntries = 256
	}
	if pf.Indexed && n > maxEntries {
		return nil, &ParsingError{Chunk: "PLTE", Reason: "more entries than the index depth allows"}
	}
	if n > 256 {
		return nil, &ParsingError{Chunk: "PLTE", Reason: "more than 256 entries"}
	}
	pal := make(Palette, n)
	for i := range pal {
		pal[i] = RGB8{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return pal, nil
}
