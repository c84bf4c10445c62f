package png

// SignificantBits is the parsed sBIT chunk: the number of bits that were
// actually significant in the original sample data before it was scaled
// up to the stored bit depth, per channel. Fields not meaningful for the
// image's color type are left zero.
type SignificantBits struct {
	Gray            uint8
	Red, Green, Blue uint8
	Alpha           uint8
}

func parseSBIT(data []byte, pf PixelFormat) (SignificantBits, error) {
	// Indexed images store an 8-bit-per-channel palette regardless of the
	// index sample depth, so sBIT bounds against 8, not pf.Depth.
	bound := uint8(pf.Depth)
	if pf.Indexed {
		bound = 8
	}
	valid := func(v uint8) bool { return v >= 1 && v <= bound }

	switch {
	case pf.Indexed, pf.HasColor && !pf.HasAlpha:
		if len(data) != 3 {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "length must be 3 for indexed/RGB images"}
		}
		if !valid(data[0]) || !valid(data[1]) || !valid(data[2]) {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "significant-bit count out of range"}
		}
		return SignificantBits{Red: data[0], Green: data[1], Blue: data[2]}, nil

	case pf.HasColor && pf.HasAlpha:
		if len(data) != 4 {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "length must be 4 for RGBA images"}
		}
		if !valid(data[0]) || !valid(data[1]) || !valid(data[2]) || !valid(data[3]) {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "significant-bit count out of range"}
		}
		return SignificantBits{Red: data[0], Green: data[1], Blue: data[2], Alpha: data[3]}, nil

	case !pf.HasColor && pf.HasAlpha:
		if len(data) != 2 {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "length must be 2 for gray-alpha images"}
		}
		if !valid(data[0]) || !valid(data[1]) {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "significant-bit count out of range"}
		}
		return SignificantBits{Gray: data[0], Alpha: data[1]}, nil

	default: // grayscale, no alpha
		if len(data) != 1 {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "length must be 1 for grayscale images"}
		}
		if !valid(data[0]) {
			return SignificantBits{}, &ParsingError{Chunk: "sBIT", Reason: "significant-bit count out of range"}
		}
		return SignificantBits{Gray: data[0]}, nil
	}
}
