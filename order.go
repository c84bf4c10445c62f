package png

// chunkOrder enforces the chunk-ordering grammar of spec.md §4.2: CgBI (if
// present) must be first; IHDR must be first (or second, after CgBI) and
// unique; PLTE is optional, unique, and must precede bKGD/tRNS/hIST/IDAT;
// cHRM/gAMA/sRGB/iCCP/sBIT must precede PLTE; hIST requires a prior PLTE;
// IDAT chunks must be contiguous; IEND is last and cannot precede every
// IDAT.
type chunkOrder struct {
	chunkCount int

	sawCgBI bool
	sawIHDR bool
	sawPLTE bool
	sawBKGD bool
	sawTRNS bool
	sawHIST bool
	sawIEND bool

	idatStarted bool
	idatEnded   bool
}

func requiredErr(curr, prev string) error {
	return &DecodingError{Kind: Required, Curr: curr, Prev: prev}
}

func duplicateErr(curr string) error {
	return &DecodingError{Kind: Duplicate, Curr: curr}
}

func unexpectedErr(curr, after string) error {
	return &DecodingError{Kind: Unexpected, Curr: curr, After: after}
}

// observe records the arrival of a chunk of the given type and reports any
// ordering violation. It must be called for every chunk in stream order,
// including IHDR and IEND.
func (o *chunkOrder) observe(id ChunkIdentifier) error {
	o.chunkCount++
	name := id.String()

	if id == typeCgBI {
		if o.chunkCount != 1 {
			return unexpectedErr("CgBI", "stream start")
		}
		o.sawCgBI = true
		return nil
	}

	if id == typeIHDR {
		if o.sawIHDR {
			return duplicateErr("IHDR")
		}
		first := o.chunkCount == 1 || (o.chunkCount == 2 && o.sawCgBI)
		if !first {
			return unexpectedErr("IHDR", "stream start")
		}
		o.sawIHDR = true
		return nil
	}

	if !o.sawIHDR {
		return requiredErr(name, "IHDR")
	}

	switch id {
	case typePLTE:
		if o.sawPLTE {
			return duplicateErr("PLTE")
		}
		switch {
		case o.idatStarted:
			return unexpectedErr("PLTE", "IDAT")
		case o.sawBKGD:
			return unexpectedErr("PLTE", "bKGD")
		case o.sawTRNS:
			return unexpectedErr("PLTE", "tRNS")
		case o.sawHIST:
			return unexpectedErr("PLTE", "hIST")
		}
		o.sawPLTE = true

	case typeCHRM, typeGAMA, typeSRGB, typeICCP, typeSBIT:
		if o.sawPLTE {
			return unexpectedErr(name, "PLTE")
		}
		if o.idatStarted {
			return unexpectedErr(name, "IDAT")
		}

	case typeBKGD:
		if o.idatStarted {
			return unexpectedErr("bKGD", "IDAT")
		}
		o.sawBKGD = true

	case typeTRNS:
		if o.idatStarted {
			return unexpectedErr("tRNS", "IDAT")
		}
		o.sawTRNS = true

	case typeHIST:
		if !o.sawPLTE {
			return requiredErr("hIST", "PLTE")
		}
		if o.idatStarted {
			return unexpectedErr("hIST", "IDAT")
		}
		o.sawHIST = true

	case typeIDAT:
		if o.idatEnded {
			return unexpectedErr("IDAT", "IDAT")
		}
		o.idatStarted = true
		return nil

	case typeIEND:
		if !o.idatStarted {
			return requiredErr("IEND", "IDAT")
		}
		o.sawIEND = true

	default:
		// Ancillary chunks with no ordering constraint of their own
		// (tIME, pHYs, sPLT, iTXt, tEXt, zTXt) fall through: their only
		// effect is ending IDAT contiguity, handled below.
	}

	if o.idatStarted && !o.idatEnded {
		o.idatEnded = true
	}
	return nil
}
