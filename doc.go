// Package gifenc is a from-scratch GIF89a encoder: header, logical screen
// descriptor, global/local color tables, graphic-control and Netscape looping
// extensions, an LZW image compressor, and the lifecycle that guarantees the
// trailer byte is written exactly once. It does not decode GIFs and does not
// quantize true-color images to a palette — callers supply already-indexed
// pixel buffers, the same division of labor the rest of this module's
// dependency-free predecessor used between its encoder and its NeuQuant
// quantizer, just with quantization left to the caller instead of bundled in.
package gifenc

// QuickEncode is a convenience wrapper around Encoder for the common case of encoding
// a finished sequence of already-indexed frames in one call: construct, optionally
// loop, write every frame in order, finalize. It exists for the same reason this
// module's predecessor carried an EncodeGIF helper alongside its lower-level encoder
// type — most callers don't need fine-grained control over extension ordering.
func QuickEncode(sink Sink, width, height uint16, globalPalette []byte, repeat Repeat, frames []*Frame) error {
	enc, err := NewEncoder(sink, width, height, globalPalette)
	if err != nil {
		return err
	}
	defer enc.Close()

	if err := enc.SetRepeat(repeat); err != nil {
		return err
	}
	for _, f := range frames {
		if err := enc.WriteFrame(f); err != nil {
			return err
		}
	}

	_, err = enc.IntoInner()
	return err
}
