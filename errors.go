package png

import "fmt"

// LexingKind enumerates the ways the chunk container itself can be malformed,
// before any chunk's payload is interpreted.
type LexingKind int

const (
	TruncatedSignature LexingKind = iota
	BadSignature
	TruncatedChunkHeader
	TruncatedChunkBody
	TruncatedChunkFooter
	InvalidChunkChecksum
	InvalidChunkType
)

func (k LexingKind) String() string {
	switch k {
	case TruncatedSignature:
		return "truncated signature"
	case BadSignature:
		return "bad signature"
	case TruncatedChunkHeader:
		return "truncated chunk header"
	case TruncatedChunkBody:
		return "truncated chunk body"
	case TruncatedChunkFooter:
		return "truncated chunk footer"
	case InvalidChunkChecksum:
		return "invalid chunk checksum"
	case InvalidChunkType:
		return "invalid chunk type"
	default:
		return "unknown lexing error"
	}
}

// LexingError reports that the chunk container framing is broken.
type LexingError struct {
	Kind  LexingKind
	Chunk string
}

func (e *LexingError) Error() string {
	if e.Chunk == "" {
		return "png: " + e.Kind.String()
	}
	return fmt.Sprintf("png: %s (chunk %q)", e.Kind, e.Chunk)
}

// ParsingError reports that a chunk's payload violates the PNG grammar for
// its type: a wrong length, a field outside its legal range, a duplicated
// value that must be unique, or an unrecognized enum code.
type ParsingError struct {
	Chunk  string
	Reason string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("png: invalid %s chunk: %s", e.Chunk, e.Reason)
}

// DecodingKind enumerates chunk-ordering and IDAT-stream-lifecycle
// violations, as opposed to a single chunk's own malformed payload.
type DecodingKind int

const (
	Required DecodingKind = iota
	Duplicate
	Unexpected
	IncompleteImageDataCompressedDatastream
	ExtraneousImageDataCompressedData
	ExtraneousImageData
)

// DecodingError reports a chunk-ordering or IDAT-lifecycle violation.
type DecodingError struct {
	Kind DecodingKind
	// Curr is the chunk that triggered the violation.
	Curr string
	// Prev or After give the chunk Curr was missing after, duplicated, or
	// found unexpectedly after. Unused for the two IDAT/lifecycle kinds.
	Prev  string
	After string
}

func (e *DecodingError) Error() string {
	switch e.Kind {
	case Required:
		return fmt.Sprintf("png: %s requires a prior %s", e.Curr, e.Prev)
	case Duplicate:
		return fmt.Sprintf("png: duplicate %s chunk", e.Curr)
	case Unexpected:
		return fmt.Sprintf("png: unexpected %s after %s", e.Curr, e.After)
	case IncompleteImageDataCompressedDatastream:
		return "png: IDAT stream ended before the zlib/DEFLATE stream completed"
	case ExtraneousImageDataCompressedData:
		return "png: IDAT chunk after the compressed datastream already completed"
	case ExtraneousImageData:
		return "png: inflator produced more bytes than the image needs"
	default:
		return "png: chunk ordering error"
	}
}

// InflationKind enumerates the ways the embedded DEFLATE/zlib stream can be
// malformed.
type InflationKind int

const (
	BadZlibHeader InflationKind = iota
	BadBlockType
	BadHuffmanTable
	BackReferencePastWindow
	TruncatedStream
	ChecksumMismatch
)

// InflationError reports that the DEFLATE/zlib stream itself is malformed,
// as opposed to the PNG container around it.
type InflationError struct {
	Kind   InflationKind
	Detail string
}

func (e *InflationError) Error() string {
	if e.Detail == "" {
		return "png: inflate: " + inflationKindString(e.Kind)
	}
	return fmt.Sprintf("png: inflate: %s: %s", inflationKindString(e.Kind), e.Detail)
}

func inflationKindString(k InflationKind) string {
	switch k {
	case BadZlibHeader:
		return "bad zlib header"
	case BadBlockType:
		return "bad block type"
	case BadHuffmanTable:
		return "malformed Huffman table"
	case BackReferencePastWindow:
		return "back-reference past window"
	case TruncatedStream:
		return "truncated stream"
	case ChecksumMismatch:
		return "checksum mismatch"
	default:
		return "unknown inflation error"
	}
}

// TextError reports that an iTXt/zTXt/tEXt chunk has an invalid keyword,
// language tag, or compression flag/method.
type TextError struct {
	Chunk  string
	Reason string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("png: invalid %s text chunk: %s", e.Chunk, e.Reason)
}
