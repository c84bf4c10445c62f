package png

// crc32Polynomial is the reflected form of the CRC-32 polynomial used by
// PNG chunk checksums: x^32+x^26+x^23+x^22+x^16+x^12+x^11+x^10+x^8+x^7+x^5+x^4+x^2+x+1.
const crc32Polynomial = 0xEDB88320

var crc32Table [256]uint32

func init() {
	for n := uint32(0); n < 256; n++ {
		c := n
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = crc32Polynomial ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crc32Table[n] = c
	}
}

// crc32Update folds p into the running CRC-32 accumulator crc, continuing a
// checksum started with crc == 0xFFFFFFFF. Call crc32Finish on the result
// to obtain the value that appears on the wire.
func crc32Update(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = crc32Table[byte(crc)^b] ^ (crc >> 8)
	}
	return crc
}

func crc32Finish(crc uint32) uint32 {
	return crc ^ 0xFFFFFFFF
}

// crc32Of is a convenience wrapper computing the CRC-32 of the
// concatenation of typ and data, as required over (type ‖ payload) for
// every PNG chunk.
func crc32Of(typ [4]byte, data []byte) uint32 {
	c := uint32(0xFFFFFFFF)
	c = crc32Update(c, typ[:])
	c = crc32Update(c, data)
	return crc32Finish(c)
}
