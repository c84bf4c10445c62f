// Package png decodes PNG images into raw pixel buffers.
//
// The decoder is self-contained: the DEFLATE/zlib inflator, CRC-32 and
// Adler-32 checksums, and Huffman table construction are implemented
// in this package rather than delegated to compress/flate or
// hash/crc32. The Inflator takes partial byte arrivals with Push and
// hands out decompressed bytes with Pull, never blocking for more input;
// Decode itself reads the whole stream from an io.Reader. Encoding is not
// implemented.
package png

// pngSignature is the fixed 8-byte magic every PNG stream begins with.
var pngSignature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Standard distinguishes the plain PNG container from Apple's iOS (CgBI)
// variant, which strips the zlib header/trailer from IDAT and stores
// BGR(A) samples instead of RGB(A).
type Standard int

const (
	StandardPNG Standard = iota
	StandardIOS
)
