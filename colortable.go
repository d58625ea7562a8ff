package gifenc

import "github.com/riverrun/gifenc/internal/leio"

// flagSize computes the 3-bit color-table-size field for a palette holding n
// triplets: the table doubles in size until it can hold n, a minimum of 2.
func flagSize(n int) byte {
	size := n
	if size < 2 {
		size = 2
	}
	if size > 256 {
		size = 256
	}
	bits := 0
	for (1 << uint(bits)) < size {
		bits++
	}
	return byte(bits - 1)
}

// checkColorTable validates a flat R,G,B palette and returns the slice of real
// triplet bytes to emit, how many zero triplets must follow as padding, and the
// encoded table-size field.
func checkColorTable(table []byte) ([]byte, int, byte, error) {
	numColors := len(table) / 3
	if numColors > 256 {
		return nil, 0, 0, formatErr(ErrTooManyColors)
	}
	size := flagSize(numColors)
	padding := (2 << size) - numColors
	return table[:numColors*3], padding, size, nil
}

// writeColorTable emits the real palette triplets followed by zero-filled padding
// triplets, bringing the table up to its declared power-of-two size.
func writeColorTable(sink Sink, table []byte, padding int) error {
	if err := leio.WriteBytes(sink, table); err != nil {
		return wrapIO(err)
	}
	if padding <= 0 {
		return nil
	}
	zeros := make([]byte, padding*3)
	if err := leio.WriteBytes(sink, zeros); err != nil {
		return wrapIO(err)
	}
	return nil
}
