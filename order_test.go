package png

import "testing"

func observeAll(ids ...ChunkIdentifier) error {
	var o chunkOrder
	for _, id := range ids {
		if err := o.observe(id); err != nil {
			return err
		}
	}
	return nil
}

func TestChunkOrderMinimalValid(t *testing.T) {
	if err := observeAll(typeIHDR, typeIDAT, typeIEND); err != nil {
		t.Fatalf("minimal valid stream rejected: %v", err)
	}
}

func TestChunkOrderRequiresIHDRFirst(t *testing.T) {
	if err := observeAll(typeIDAT, typeIHDR, typeIEND); err == nil {
		t.Fatalf("expected an error when IDAT precedes IHDR")
	}
}

func TestChunkOrderRejectsDuplicateIHDR(t *testing.T) {
	if err := observeAll(typeIHDR, typeIHDR, typeIDAT, typeIEND); err == nil {
		t.Fatalf("expected an error for a duplicate IHDR")
	}
}

func TestChunkOrderAllowsCgBIBeforeIHDR(t *testing.T) {
	if err := observeAll(typeCgBI, typeIHDR, typeIDAT, typeIEND); err != nil {
		t.Fatalf("CgBI before IHDR rejected: %v", err)
	}
}

func TestChunkOrderRejectsCgBINotFirst(t *testing.T) {
	if err := observeAll(typeIHDR, typeCgBI, typeIDAT, typeIEND); err == nil {
		t.Fatalf("expected an error when CgBI does not lead the stream")
	}
}

func TestChunkOrderPLTEBeforeIDAT(t *testing.T) {
	if err := observeAll(typeIHDR, typePLTE, typeIDAT, typeIEND); err != nil {
		t.Fatalf("PLTE before IDAT rejected: %v", err)
	}
}

func TestChunkOrderRejectsPLTEAfterIDAT(t *testing.T) {
	if err := observeAll(typeIHDR, typeIDAT, typePLTE, typeIEND); err == nil {
		t.Fatalf("expected an error for PLTE after IDAT")
	}
}

func TestChunkOrderRejectsDuplicatePLTE(t *testing.T) {
	if err := observeAll(typeIHDR, typePLTE, typePLTE, typeIDAT, typeIEND); err == nil {
		t.Fatalf("expected an error for a duplicate PLTE")
	}
}

func TestChunkOrderHISTRequiresPriorPLTE(t *testing.T) {
	if err := observeAll(typeIHDR, typeHIST, typeIDAT, typeIEND); err == nil {
		t.Fatalf("expected an error for hIST with no prior PLTE")
	}
	if err := observeAll(typeIHDR, typePLTE, typeHIST, typeIDAT, typeIEND); err != nil {
		t.Fatalf("hIST after PLTE rejected: %v", err)
	}
}

func TestChunkOrderRejectsGAMAAfterPLTE(t *testing.T) {
	if err := observeAll(typeIHDR, typePLTE, typeGAMA, typeIDAT, typeIEND); err == nil {
		t.Fatalf("expected an error for gAMA after PLTE")
	}
}

func TestChunkOrderRejectsNonContiguousIDAT(t *testing.T) {
	if err := observeAll(typeIHDR, typeIDAT, typeTEXT, typeIDAT, typeIEND); err == nil {
		t.Fatalf("expected an error for a non-contiguous IDAT run")
	}
}

func TestChunkOrderRejectsIENDWithoutIDAT(t *testing.T) {
	if err := observeAll(typeIHDR, typeIEND); err == nil {
		t.Fatalf("expected an error for IEND with no prior IDAT")
	}
}

func TestChunkOrderAllowsAncillaryAfterIDAT(t *testing.T) {
	if err := observeAll(typeIHDR, typeIDAT, typeTEXT, typeIEND); err != nil {
		t.Fatalf("tEXt after the IDAT run rejected: %v", err)
	}
}
