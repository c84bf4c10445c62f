package png

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func encodeChunk(typ string, data []byte) []byte {
	var buf bytes.Buffer
	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(len(data)))
	buf.Write(lenBytes[:])
	buf.WriteString(typ)
	buf.Write(data)
	var tb [4]byte
	copy(tb[:], typ)
	crc := crc32Of(tb, data)
	var crcBytes [4]byte
	binary.BigEndian.PutUint32(crcBytes[:], crc)
	buf.Write(crcBytes[:])
	return buf.Bytes()
}

func TestCheckSignatureAccepts(t *testing.T) {
	r := bytes.NewReader(pngSignature[:])
	if err := checkSignature(r); err != nil {
		t.Fatalf("checkSignature: %v", err)
	}
}

func TestCheckSignatureRejectsBadMagic(t *testing.T) {
	r := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	err := checkSignature(r)
	lexErr, ok := err.(*LexingError)
	if !ok {
		// Errors may arrive wrapped in github.com/pkg/errors; unwrap via Cause.
		type causer interface{ Cause() error }
		if c, ok2 := err.(causer); ok2 {
			lexErr, ok = c.Cause().(*LexingError)
		}
	}
	if !ok || lexErr.Kind != BadSignature {
		t.Fatalf("got %v, want LexingError{Kind: BadSignature}", err)
	}
}

func TestCheckSignatureRejectsTruncated(t *testing.T) {
	r := bytes.NewReader(pngSignature[:4])
	if err := checkSignature(r); err == nil {
		t.Fatalf("expected an error for a truncated signature")
	}
}

func TestNextChunkRoundTrip(t *testing.T) {
	data := []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 0, 0, 0, 0}
	raw := encodeChunk("IHDR", data)
	chunk, err := nextChunk(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("nextChunk: %v", err)
	}
	if chunk.Type != typeIHDR {
		t.Fatalf("Type = %v, want IHDR", chunk.Type)
	}
	if !bytes.Equal(chunk.Data, data) {
		t.Fatalf("Data = %v, want %v", chunk.Data, data)
	}
}

func TestNextChunkRejectsBadChecksum(t *testing.T) {
	raw := encodeChunk("IDAT", []byte("hello"))
	raw[len(raw)-1] ^= 0xFF // corrupt the trailing CRC byte
	_, err := nextChunk(bytes.NewReader(raw))
	if err == nil {
		t.Fatalf("expected a checksum error")
	}
}

func TestNextChunkRejectsReservedBitSet(t *testing.T) {
	// Bit 5 of the third byte is the reserved bit; lowercasing that byte
	// sets it, which is invalid regardless of the rest of the code.
	raw := encodeChunk("IHdR", []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 0, 0, 0, 0})
	_, err := nextChunk(bytes.NewReader(raw))
	if err == nil {
		t.Fatalf("expected an invalid-chunk-type error")
	}
}

func TestNextChunkAllowsUnknownPrivateChunkWithClearReservedBit(t *testing.T) {
	raw := encodeChunk("zzZz", []byte("private"))
	chunk, err := nextChunk(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("nextChunk: %v", err)
	}
	if chunk.Type.String() != "zzZz" {
		t.Fatalf("Type = %q, want %q", chunk.Type.String(), "zzZz")
	}
}

func TestNextChunkTruncatedBody(t *testing.T) {
	full := encodeChunk("IDAT", []byte("0123456789"))
	_, err := nextChunk(bytes.NewReader(full[:10]))
	if err == nil {
		t.Fatalf("expected a truncated-body error")
	}
}
