package gifenc

import "github.com/riverrun/gifenc/internal/leio"

// writeSubBlocks partitions data into length-prefixed chunks of at most 255 bytes,
// followed by a single zero-length terminator block. An empty input still produces
// the terminator, so every LZW stream and extension payload ends in exactly one 0x00.
func writeSubBlocks(sink Sink, data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > 255 {
			n = 255
		}
		if err := leio.WriteU8(sink, byte(n)); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteBytes(sink, data[:n]); err != nil {
			return wrapIO(err)
		}
		data = data[n:]
	}
	if err := leio.WriteU8(sink, 0); err != nil {
		return wrapIO(err)
	}
	return nil
}
