package png

import (
	"strings"
	"testing"
)

// fixedHuffmanZlib is the zlib stream for "hello, world!" compressed with a
// single fixed-Huffman DEFLATE block.
var fixedHuffmanZlib = []byte{
	0x78, 0x01, 0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0xd7, 0x51, 0x28, 0xcf, 0x2f,
	0xca, 0x49, 0x51, 0x04, 0x00, 0x21, 0xfe, 0x04, 0xaa,
}

// storedZlib is the zlib stream for "abcdefghijABCDEFGHIJ0123456789" as a
// single stored (uncompressed) DEFLATE block.
var storedZlib = []byte{
	0x78, 0x01, 0x01, 0x1e, 0x00, 0xe1, 0xff, 0x61, 0x62, 0x63, 0x64, 0x65,
	0x66, 0x67, 0x68, 0x69, 0x6a, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47,
	0x48, 0x49, 0x4a, 0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38,
	0x39, 0x99, 0x9d, 0x08, 0xbc,
}

// dynamicHuffmanZlib is the zlib stream for 20 repetitions of "the quick
// brown fox jumps over the lazy dog. " compressed with a dynamic-Huffman
// DEFLATE block (back-references exercise the sliding window).
var dynamicHuffmanZlib = []byte{
	0x78, 0xda, 0x2b, 0xc9, 0x48, 0x55, 0x28, 0x2c, 0xcd, 0x4c, 0xce, 0x56,
	0x48, 0x2a, 0xca, 0x2f, 0xcf, 0x53, 0x48, 0xcb, 0xaf, 0x50, 0xc8, 0x2a,
	0xcd, 0x2d, 0x28, 0x56, 0xc8, 0x2f, 0x4b, 0x2d, 0x52, 0x28, 0x01, 0x4a,
	0xe7, 0x24, 0x56, 0x55, 0x2a, 0xa4, 0xe4, 0xa7, 0xeb, 0x81, 0x79, 0xa3,
	0x8a, 0x47, 0x15, 0x8f, 0x2a, 0xa6, 0xaa, 0x62, 0x00, 0xe5, 0x21, 0x45,
	0x9c,
}

func inflateWholeShot(t *testing.T, stream []byte) []byte {
	t.Helper()
	inf := NewInflator(StandardPNG)
	if _, err := inf.Push(stream); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if !inf.Done() {
		t.Fatalf("inflator did not reach Done after a whole-shot Push")
	}
	return inf.PullAll()
}

func TestInflatorFixedHuffmanBlock(t *testing.T) {
	got := inflateWholeShot(t, fixedHuffmanZlib)
	if string(got) != "hello, world!" {
		t.Fatalf("got %q, want %q", got, "hello, world!")
	}
}

func TestInflatorStoredBlock(t *testing.T) {
	got := inflateWholeShot(t, storedZlib)
	want := "abcdefghijABCDEFGHIJ0123456789"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInflatorDynamicHuffmanBlockWithBackreferences(t *testing.T) {
	got := inflateWholeShot(t, dynamicHuffmanZlib)
	want := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20)
	if string(got) != want {
		t.Fatalf("lengths differ: got %d, want %d", len(got), len(want))
	}
}

// TestInflatorByteAtATime feeds the stream one byte per Push call, proving
// Push never blocks and Pull only returns complete bytes as they become
// available.
func TestInflatorByteAtATime(t *testing.T) {
	inf := NewInflator(StandardPNG)
	var out []byte
	for _, b := range fixedHuffmanZlib {
		if _, err := inf.Push([]byte{b}); err != nil {
			t.Fatalf("Push: %v", err)
		}
		out = append(out, inf.PullAll()...)
	}
	if !inf.Done() {
		t.Fatalf("inflator did not complete after feeding every byte")
	}
	if string(out) != "hello, world!" {
		t.Fatalf("got %q, want %q", out, "hello, world!")
	}
}

func TestInflatorPullRequiresFullCount(t *testing.T) {
	inf := NewInflator(StandardPNG)
	if _, err := inf.Push(fixedHuffmanZlib); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, ok := inf.Pull(1000); ok {
		t.Fatalf("Pull(1000) should have failed: only 13 bytes were produced")
	}
	got, ok := inf.Pull(13)
	if !ok {
		t.Fatalf("Pull(13) should have succeeded")
	}
	if string(got) != "hello, world!" {
		t.Fatalf("got %q", got)
	}
}

func TestInflatorChecksumMismatch(t *testing.T) {
	corrupt := append([]byte(nil), fixedHuffmanZlib...)
	corrupt[len(corrupt)-1] ^= 0xFF
	inf := NewInflator(StandardPNG)
	err := func() error { _, err := inf.Push(corrupt); return err }()
	infErr, ok := err.(*InflationError)
	if !ok || infErr.Kind != ChecksumMismatch {
		t.Fatalf("got %v, want InflationError{Kind: ChecksumMismatch}", err)
	}
}

func TestInflatorIOSVariantHasNoHeaderOrTrailer(t *testing.T) {
	// Strip the zlib header (2 bytes) and Adler-32 trailer (4 bytes) to
	// produce the headerless/trailerless stream Apple's iOS PNG variant
	// stores in IDAT.
	raw := fixedHuffmanZlib[2 : len(fixedHuffmanZlib)-4]
	inf := NewInflator(StandardIOS)
	if _, err := inf.Push(raw); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if !inf.Done() {
		t.Fatalf("iOS-variant inflator did not complete")
	}
	got := inf.PullAll()
	if string(got) != "hello, world!" {
		t.Fatalf("got %q, want %q", got, "hello, world!")
	}
}

func TestInflatorPendingTracksUndeliveredBytes(t *testing.T) {
	inf := NewInflator(StandardPNG)
	if _, err := inf.Push(fixedHuffmanZlib); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := inf.Pending(); got != 13 {
		t.Fatalf("Pending() = %d, want 13", got)
	}
	inf.PullAll()
	if got := inf.Pending(); got != 0 {
		t.Fatalf("Pending() after PullAll = %d, want 0", got)
	}
}
