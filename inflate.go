package png

import "errors"

// Status is the result of a call to Inflator.Push.
type Status int

const (
	NeedMore Status = iota
	Complete
)

const windowSize = 1 << 15 // 32 KiB sliding window, per RFC 1951 §2.3

// errPushAfterComplete is returned by Push once the wrapped zlib/DEFLATE
// stream has already reached its end; the decode coordinator turns this
// into a DecodingError{Kind: ExtraneousImageDataCompressedData}.
var errPushAfterComplete = errors.New("png: push after inflator completed")

type inflatePhase int

const (
	phaseHeader inflatePhase = iota
	phaseBlockStart
	phaseStoredLen
	phaseStoredCopy
	phaseDynHeader
	phaseDynCodeLengths
	phaseDynSymLengths
	phaseSymbols
	phaseTrailer
	phaseDone
)

type symSubPhase int

const (
	subSymbol symSubPhase = iota
	subLengthExtra
	subDistSymbol
	subDistExtra
)

// Inflator is a streaming, single-threaded DEFLATE decoder wrapped in
// either the zlib container (StandardPNG) or Apple's headerless/trailerless
// iOS variant (StandardIOS). Push feeds partial input; Pull drains decoded bytes.
// Neither call blocks: Push returns NeedMore when the input it was given
// ends mid-symbol, and Pull returns ok=false when fewer bytes are
// currently available than requested.
type Inflator struct {
	format Standard
	br     bitReader

	phase      inflatePhase
	finalBlock bool

	win       []byte
	delivered int
	adler     adler32State

	storedRemaining int

	litTree, distTree *huffmanDecoder

	// dynamic Huffman table construction state
	nlit, ndist, nclen int
	clIdx               int
	codebits             [numCodes]int
	clTree               huffmanDecoder
	symLengths           []int
	symIdx               int
	pendingRepeatSym     int
	dynLit, dynDist      huffmanDecoder

	// symbol-decode sub-state
	symSub       symSubPhase
	curV         int
	curLength    int
	curLenExtra  uint
	curDist      int
	curDistExtra uint
	curDistSym   int
}

// NewInflator constructs an Inflator for the given container variant.
func NewInflator(format Standard) *Inflator {
	inf := &Inflator{format: format, adler: newAdler32State()}
	if format == StandardIOS {
		inf.phase = phaseBlockStart
	} else {
		inf.phase = phaseHeader
	}
	inf.pendingRepeatSym = -1
	return inf
}

// Push feeds a slice of newly arrived input bytes and advances decoding as
// far as the currently buffered bits allow.
func (inf *Inflator) Push(p []byte) (Status, error) {
	if inf.phase == phaseDone {
		if len(p) > 0 {
			return Complete, errPushAfterComplete
		}
		return Complete, nil
	}
	inf.br.fill(p)
	if err := inf.run(); err != nil {
		return NeedMore, err
	}
	if inf.phase == phaseDone {
		return Complete, nil
	}
	return NeedMore, nil
}

// Pull returns up to n contiguous decoded bytes, or ok=false if fewer than
// n are currently available.
func (inf *Inflator) Pull(n int) ([]byte, bool) {
	avail := len(inf.win) - inf.delivered
	if avail < n {
		return nil, false
	}
	out := make([]byte, n)
	copy(out, inf.win[inf.delivered:inf.delivered+n])
	inf.delivered += n
	inf.compact()
	return out, true
}

// PullAll drains every decoded byte buffered so far.
func (inf *Inflator) PullAll() []byte {
	out := make([]byte, len(inf.win)-inf.delivered)
	copy(out, inf.win[inf.delivered:])
	inf.delivered = len(inf.win)
	inf.compact()
	return out
}

// Done reports whether the wrapped stream has fully terminated.
func (inf *Inflator) Done() bool { return inf.phase == phaseDone }

// Pending reports how many decoded-but-undelivered bytes are buffered.
func (inf *Inflator) Pending() int { return len(inf.win) - inf.delivered }

func (inf *Inflator) compact() {
	if inf.delivered == 0 {
		return
	}
	keepFrom := len(inf.win) - windowSize
	if keepFrom < 0 {
		keepFrom = 0
	}
	trim := inf.delivered
	if trim > keepFrom {
		trim = keepFrom
	}
	if trim <= 0 {
		return
	}
	inf.win = append(inf.win[:0], inf.win[trim:]...)
	inf.delivered -= trim
}

// run advances the state machine until either the buffered bits run out or
// the stream completes.
func (inf *Inflator) run() error {
	for {
		switch inf.phase {
		case phaseHeader:
			ok, err := inf.readZlibHeader()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			inf.phase = phaseBlockStart

		case phaseBlockStart:
			ok, err := inf.readBlockStart()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

		case phaseStoredLen:
			ok, err := inf.readStoredLen()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			inf.phase = phaseStoredCopy

		case phaseStoredCopy:
			ok := inf.copyStored()
			if !ok {
				return nil
			}
			inf.phase = inf.afterBlock()

		case phaseDynHeader:
			ok, err := inf.readDynHeader()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			inf.phase = phaseDynCodeLengths

		case phaseDynCodeLengths:
			ok, err := inf.readDynCodeLengths()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			inf.phase = phaseDynSymLengths

		case phaseDynSymLengths:
			ok, err := inf.readDynSymLengths()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			inf.litTree = &inf.dynLit
			inf.distTree = &inf.dynDist
			inf.phase = phaseSymbols

		case phaseSymbols:
			done, ok, err := inf.decodeSymbols()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if done {
				inf.phase = inf.afterBlock()
			}

		case phaseTrailer:
			ok, err := inf.readTrailer()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			inf.phase = phaseDone

		case phaseDone:
			return nil
		}
	}
}

func (inf *Inflator) afterBlock() inflatePhase {
	if inf.finalBlock {
		if inf.format == StandardIOS {
			return phaseDone
		}
		return phaseTrailer
	}
	return phaseBlockStart
}

func (inf *Inflator) readZlibHeader() (bool, error) {
	if !inf.br.need(16) {
		return false, nil
	}
	cmf := byte(inf.br.acc & 0xFF)
	flg := byte((inf.br.acc >> 8) & 0xFF)
	inf.br.take(16)
	if cmf&0x0F != 8 {
		return false, &InflationError{Kind: BadZlibHeader, Detail: "compression method"}
	}
	if cmf>>4 > 7 {
		return false, &InflationError{Kind: BadZlibHeader, Detail: "window size exceeds 32 KiB"}
	}
	if flg&0x20 != 0 {
		return false, &InflationError{Kind: BadZlibHeader, Detail: "preset dictionary not supported"}
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return false, &InflationError{Kind: BadZlibHeader, Detail: "FCHECK"}
	}
	return true, nil
}

func (inf *Inflator) readBlockStart() (bool, error) {
	if !inf.br.need(3) {
		return false, nil
	}
	final := inf.br.acc&1 == 1
	btype := (inf.br.acc >> 1) & 3
	inf.br.take(3)
	inf.finalBlock = final
	switch btype {
	case 0:
		inf.phase = phaseStoredLen
		inf.br.alignByte()
	case 1:
		inf.litTree = &fixedHuffmanLit
		inf.distTree = &fixedHuffmanDist
		inf.symSub = subSymbol
		inf.phase = phaseSymbols
	case 2:
		inf.phase = phaseDynHeader
	default:
		return false, &InflationError{Kind: BadBlockType}
	}
	return true, nil
}

func (inf *Inflator) readStoredLen() (bool, error) {
	b0, ok := inf.br.takeByte()
	if !ok {
		return false, nil
	}
	b1, ok := inf.br.takeByte()
	if !ok {
		inf.br.unreadByte(b0)
		return false, nil
	}
	b2, ok := inf.br.takeByte()
	if !ok {
		inf.br.unreadByte(b0, b1)
		return false, nil
	}
	b3, ok := inf.br.takeByte()
	if !ok {
		inf.br.unreadByte(b0, b1, b2)
		return false, nil
	}
	n := int(b0) | int(b1)<<8
	nn := int(b2) | int(b3)<<8
	if uint16(nn) != uint16(^uint16(n)) {
		return false, &InflationError{Kind: TruncatedStream, Detail: "NLEN does not complement LEN"}
	}
	inf.storedRemaining = n
	return true, nil
}

func (inf *Inflator) copyStored() bool {
	for inf.storedRemaining > 0 {
		b, ok := inf.br.takeByte()
		if !ok {
			return false
		}
		inf.win = append(inf.win, b)
		inf.adler = inf.adler.update(inf.win[len(inf.win)-1:])
		inf.storedRemaining--
	}
	return true
}

func (inf *Inflator) readDynHeader() (bool, error) {
	if !inf.br.need(5 + 5 + 4) {
		return false, nil
	}
	nlit := int(inf.br.acc&0x1F) + 257
	b := inf.br.acc >> 5
	ndist := int(b&0x1F) + 1
	b >>= 5
	nclen := int(b&0xF) + 4
	if nlit > maxNumLit || ndist > maxNumDist {
		return false, &InflationError{Kind: BadHuffmanTable, Detail: "HLIT/HDIST out of range"}
	}
	inf.br.take(5 + 5 + 4)
	inf.nlit, inf.ndist, inf.nclen = nlit, ndist, nclen
	inf.clIdx = 0
	for i := range inf.codebits {
		inf.codebits[i] = 0
	}
	return true, nil
}

func (inf *Inflator) readDynCodeLengths() (bool, error) {
	for inf.clIdx < inf.nclen {
		if !inf.br.need(3) {
			return false, nil
		}
		inf.codebits[codeLengthOrder[inf.clIdx]] = int(inf.br.acc & 0x7)
		inf.br.take(3)
		inf.clIdx++
	}
	if !inf.clTree.init(inf.codebits[:]) {
		return false, &InflationError{Kind: BadHuffmanTable, Detail: "code-length table"}
	}
	inf.symLengths = make([]int, inf.nlit+inf.ndist)
	inf.symIdx = 0
	inf.pendingRepeatSym = -1
	return true, nil
}

func (inf *Inflator) readDynSymLengths() (bool, error) {
	total := inf.nlit + inf.ndist
	for inf.symIdx < total {
		if inf.pendingRepeatSym < 0 {
			x, ok, err := inf.clTree.decode(&inf.br)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			if x < 16 {
				inf.symLengths[inf.symIdx] = x
				inf.symIdx++
				continue
			}
			inf.pendingRepeatSym = x
		}

		var rep int
		var nb uint
		var fill int
		switch inf.pendingRepeatSym {
		case 16:
			rep, nb = 3, 2
			if inf.symIdx == 0 {
				return false, &InflationError{Kind: BadHuffmanTable, Detail: "repeat with no previous length"}
			}
			fill = inf.symLengths[inf.symIdx-1]
		case 17:
			rep, nb = 3, 3
			fill = 0
		case 18:
			rep, nb = 11, 7
			fill = 0
		default:
			return false, &InflationError{Kind: BadHuffmanTable, Detail: "bad meta symbol"}
		}
		if !inf.br.need(nb) {
			return false, nil
		}
		rep += int(inf.br.acc & (1<<nb - 1))
		inf.br.take(nb)
		if inf.symIdx+rep > total {
			return false, &InflationError{Kind: BadHuffmanTable, Detail: "repeat overruns table"}
		}
		for j := 0; j < rep; j++ {
			inf.symLengths[inf.symIdx] = fill
			inf.symIdx++
		}
		inf.pendingRepeatSym = -1
	}

	if !inf.dynLit.init(inf.symLengths[:inf.nlit]) || !inf.dynDist.init(inf.symLengths[inf.nlit:total]) {
		return false, &InflationError{Kind: BadHuffmanTable, Detail: "literal/distance table"}
	}
	return true, nil
}

// lengthBase/lengthExtra and distBase/distExtra are only needed as inline
// arithmetic (RFC 1951 §3.2.5 groups lengths geometrically rather than via
// a flat table), matching the grounding example's formulas directly.

func (inf *Inflator) decodeSymbols() (done bool, ok bool, err error) {
	for {
		switch inf.symSub {
		case subSymbol:
			v, got, derr := inf.litTree.decode(&inf.br)
			if derr != nil {
				return false, false, derr
			}
			if !got {
				return false, false, nil
			}
			if v < 256 {
				inf.win = append(inf.win, byte(v))
				inf.adler = inf.adler.update(inf.win[len(inf.win)-1:])
				continue
			}
			if v == 256 {
				return true, true, nil
			}
			inf.curV = v
			length, n := lengthFor(v)
			if length < 0 {
				return false, false, &InflationError{Kind: BadHuffmanTable, Detail: "length symbol out of range"}
			}
			inf.curLength = length
			inf.curLenExtra = n
			inf.symSub = subLengthExtra

		case subLengthExtra:
			if inf.curLenExtra > 0 {
				if !inf.br.need(inf.curLenExtra) {
					return false, false, nil
				}
				inf.curLength += int(inf.br.acc & (1<<inf.curLenExtra - 1))
				inf.br.take(inf.curLenExtra)
			}
			inf.symSub = subDistSymbol

		case subDistSymbol:
			d, got, derr := inf.distTree.decode(&inf.br)
			if derr != nil {
				return false, false, derr
			}
			if !got {
				return false, false, nil
			}
			inf.curDistSym = d
			dist, n, derr2 := distBaseFor(d)
			if derr2 != nil {
				return false, false, derr2
			}
			inf.curDist = dist
			inf.curDistExtra = n
			inf.symSub = subDistExtra

		case subDistExtra:
			if inf.curDistExtra > 0 {
				if !inf.br.need(inf.curDistExtra) {
					return false, false, nil
				}
				inf.curDist += int(inf.br.acc & (1<<inf.curDistExtra - 1))
				inf.br.take(inf.curDistExtra)
			}
			if inf.curDist > len(inf.win) || inf.curDist > windowSize {
				return false, false, &InflationError{Kind: BackReferencePastWindow}
			}
			start := len(inf.win) - inf.curDist
			for k := 0; k < inf.curLength; k++ {
				inf.win = append(inf.win, inf.win[start+k])
			}
			inf.adler = inf.adler.update(inf.win[len(inf.win)-inf.curLength:])
			inf.symSub = subSymbol
		}
	}
}

func lengthFor(v int) (length int, extra uint) {
	switch {
	case v < 265:
		return v - 254, 0
	case v < 269:
		return v*2 - (265*2 - 11), 1
	case v < 273:
		return v*4 - (269*4 - 19), 2
	case v < 277:
		return v*8 - (273*8 - 35), 3
	case v < 281:
		return v*16 - (277*16 - 67), 4
	case v < 285:
		return v*32 - (281*32 - 131), 5
	case v == 285:
		return 258, 0
	default:
		return -1, 0
	}
}

func distBaseFor(d int) (dist int, extra uint, err error) {
	switch {
	case d < 4:
		return d + 1, 0, nil
	case d < maxNumDist:
		nb := uint(d-2) >> 1
		extraLow := (d & 1) << nb
		return 1<<(nb+1) + 1 + extraLow, nb, nil
	default:
		return 0, 0, &InflationError{Kind: BadHuffmanTable, Detail: "distance symbol out of range"}
	}
}

func (inf *Inflator) readTrailer() (bool, error) {
	inf.br.alignByte()
	var b [4]byte
	for i := range b {
		v, ok := inf.br.takeByte()
		if !ok {
			for j := 0; j < i; j++ {
				inf.br.unreadByte(b[j])
			}
			return false, nil
		}
		b[i] = v
	}
	want := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	if want != inf.adler.sum32() {
		return false, &InflationError{Kind: ChecksumMismatch}
	}
	return true, nil
}
