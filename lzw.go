package gifenc

// This file implements the GIF-flavored LZW compressor (component D). The bit-packing
// and clear/EOI discipline follow the classic GIFCOMPR.C lineage; the dictionary here
// is a plain Go map keyed by the candidate byte string rather than the open-addressed
// hash table that lineage uses, which reads more directly for a maintained Go codebase
// while producing bit-for-bit identical GIF LZW output (the format only constrains the
// bitstream, not how an encoder gets there).

const (
	maxLZWBits = 12
	maxLZWCode = 1<<maxLZWBits - 1
)

// minCodeSize returns the minimum LZW code size for the given palette indices,
// satisfying 2 <= size <= 8 for any nonempty input: the value count (max index + 1) is
// floored at 4 per the GIF convention real decoders accept, so the size is never
// below 2. Empty input also yields 2. The scan short-circuits once it has seen a byte
// greater than 127, since that already forces the maximum code size.
func minCodeSize(indices []byte) byte {
	var maxByte byte
	for _, b := range indices {
		if b > maxByte {
			maxByte = b
			if maxByte > 127 {
				break
			}
		}
	}
	if len(indices) == 0 {
		return 2
	}
	m := uint32(maxByte) + 1
	if m < 4 {
		m = 4
	}
	return byte(nextPow2Log2(m))
}

// nextPow2Log2 returns log2 of the smallest power of two >= v.
func nextPow2Log2(v uint32) uint {
	bits := uint(0)
	p := uint32(1)
	for p < v {
		p <<= 1
		bits++
	}
	return bits
}

// validateMinCodeSize enforces the source's over-permissive [2, 11] sanity bound on a
// pre-encoded frame's header byte. Real decoders only accept up to 8; this module
// preserves the looser source bound rather than silently tightening it (see the
// "Open Question decisions" section of DESIGN.md).
func validateMinCodeSize(b byte) error {
	if b < 2 || b > 11 {
		return formatErr(ErrInvalidMinCodeSize)
	}
	return nil
}

// lzwCompress runs the GIF LZW algorithm over indices and returns a buffer whose
// first byte is the chosen minimum code size and whose remaining bytes are the
// LSB-first packed code stream, unblocked (sub-block framing is the caller's job).
func lzwCompress(indices []byte) []byte {
	size := minCodeSize(indices)
	out := make([]byte, 0, len(indices)/2+4)
	out = append(out, size)
	out = append(out, compressCodes(indices, size)...)
	return out
}

func compressCodes(data []byte, codeSize byte) []byte {
	clearCode := uint32(1) << codeSize
	eoiCode := clearCode + 1

	bw := &lzwBitWriter{}

	width := uint(codeSize) + 1
	maxcode := uint32(1)<<width - 1
	nextCode := eoiCode + 1
	dict := make(map[string]uint32, 512)

	reset := func() {
		dict = make(map[string]uint32, 512)
		nextCode = eoiCode + 1
		width = uint(codeSize) + 1
		maxcode = uint32(1)<<width - 1
	}

	codeOf := func(seq []byte) uint32 {
		if len(seq) == 1 {
			return uint32(seq[0])
		}
		return dict[string(seq)]
	}

	bw.writeCode(clearCode, width)

	if len(data) == 0 {
		bw.writeCode(eoiCode, width)
		bw.flush()
		return bw.buf
	}

	prefix := data[0:1]
	for _, c := range data[1:] {
		candidate := make([]byte, len(prefix)+1)
		copy(candidate, prefix)
		candidate[len(prefix)] = c

		if _, ok := dict[string(candidate)]; ok {
			prefix = candidate
			continue
		}

		bw.writeCode(codeOf(prefix), width)

		if nextCode <= maxLZWCode {
			// The width is widened here, using nextCode's value from before this
			// code's own entry is added, so the code that just filled the table
			// stays at the old width and only the following code is packed wider
			// (the "early change" GIF decoders are built to expect).
			if nextCode > maxcode && width < maxLZWBits {
				width++
				maxcode = uint32(1)<<width - 1
			}
			dict[string(candidate)] = nextCode
			nextCode++
		} else {
			bw.writeCode(clearCode, width)
			reset()
		}
		prefix = candidate[len(candidate)-1:]
	}

	bw.writeCode(codeOf(prefix), width)
	bw.writeCode(eoiCode, width)
	bw.flush()
	return bw.buf
}

// lzwBitWriter packs variable-width codes LSB-first into a growing byte buffer, the
// way every GIF decoder expects to unpack them.
type lzwBitWriter struct {
	buf  []byte
	acc  uint32
	bits uint
}

func (w *lzwBitWriter) writeCode(code uint32, width uint) {
	w.acc |= code << w.bits
	w.bits += width
	for w.bits >= 8 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc >>= 8
		w.bits -= 8
	}
}

func (w *lzwBitWriter) flush() {
	if w.bits > 0 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc = 0
		w.bits = 0
	}
}
