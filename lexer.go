package png

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const maxChunkLength = 1<<31 - 1

// checkSignature consumes and validates the fixed 8-byte PNG signature.
func checkSignature(r io.Reader) error {
	var got [8]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.WithStack(&LexingError{Kind: TruncatedSignature})
		}
		return errors.WithStack(err)
	}
	if got != pngSignature {
		return errors.WithStack(&LexingError{Kind: BadSignature})
	}
	return nil
}

// rawChunk is a single (type, data) framing unit as read off the wire,
// along with its declared CRC for diagnostics.
type rawChunk struct {
	Type ChunkIdentifier
	Data []byte
	CRC  uint32
}

// nextChunk reads one (type, data) chunk from r: a 4-byte big-endian
// length, a 4-byte type code, length bytes of payload, and a 4-byte CRC-32
// over (type ‖ payload). It validates the CRC and the type code before
// returning.
func nextChunk(r io.Reader) (rawChunk, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return rawChunk{}, errors.WithStack(&LexingError{Kind: TruncatedChunkHeader})
		}
		return rawChunk{}, errors.WithStack(err)
	}
	length := binary.BigEndian.Uint32(header[:4])
	if length > maxChunkLength {
		typ := newChunkIdentifier([4]byte(header[4:8]))
		return rawChunk{}, errors.WithStack(&LexingError{Kind: TruncatedChunkBody, Chunk: typ.String()})
	}
	typ := newChunkIdentifier([4]byte(header[4:8]))

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return rawChunk{}, errors.WithStack(&LexingError{Kind: TruncatedChunkBody, Chunk: typ.String()})
		}
		return rawChunk{}, errors.WithStack(err)
	}

	var crcBytes [4]byte
	if _, err := io.ReadFull(r, crcBytes[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return rawChunk{}, errors.WithStack(&LexingError{Kind: TruncatedChunkFooter, Chunk: typ.String()})
		}
		return rawChunk{}, errors.WithStack(err)
	}
	declared := binary.BigEndian.Uint32(crcBytes[:])
	if got := crc32Of([4]byte(header[4:8]), data); got != declared {
		return rawChunk{}, errors.WithStack(&LexingError{Kind: InvalidChunkChecksum, Chunk: typ.String()})
	}

	if !validChunkType(typ) {
		return rawChunk{}, errors.WithStack(&LexingError{Kind: InvalidChunkType, Chunk: typ.String()})
	}

	return rawChunk{Type: typ, Data: data, CRC: declared}, nil
}
