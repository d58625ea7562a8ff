package gifenc

import "github.com/riverrun/gifenc/internal/leio"

// DisposalMethod tells a GIF player what to do with a frame's pixels before drawing
// the next one.
type DisposalMethod byte

const (
	DisposalAny        DisposalMethod = 0
	DisposalKeep       DisposalMethod = 1
	DisposalBackground DisposalMethod = 2
	DisposalPrevious   DisposalMethod = 3
)

// Frame is one image in an animation. Buffer holds either raw palette indices (one
// byte per pixel, row-major) or, after MakeLZWPreEncoded, an already LZW-compressed
// payload whose first byte is the minimum code size.
type Frame struct {
	Left, Top       uint16
	Width, Height   uint16
	Delay           uint16 // hundredths of a second
	Dispose         DisposalMethod
	NeedsUserInput  bool
	Transparent     *byte // optional palette index
	Interlaced      bool
	Palette         []byte // optional local palette, flat R,G,B triplets
	Buffer          []byte

	preEncoded bool
}

// MakeLZWPreEncoded replaces f.Buffer with its LZW-compressed form (component I).
// This is a pure transform with no dependency on any Encoder, so frames may be
// compressed on separate goroutines and later written in order with
// Encoder.WriteLZWPreEncodedFrame, which skips the compression step entirely.
func (f *Frame) MakeLZWPreEncoded() {
	f.Buffer = lzwCompress(f.Buffer)
	f.preEncoded = true
}

// checkFrameBuffer validates that the frame's buffer is large enough for its declared
// dimensions, using widened arithmetic so a 16-bit overflow can never mask a short
// buffer.
func checkFrameBuffer(f *Frame) error {
	size := uint64(f.Width) * uint64(f.Height)
	if uint64(len(f.Buffer)) < size {
		return formatErr(ErrFrameBufferTooSmall)
	}
	return nil
}

// controlExtensionNeeded is kept for documentation parity with the source design note
// (§9): the source always writes the control extension regardless of this check. This
// implementation does the same to stay byte-identical, but the predicate is retained
// so a reader can see which fields would, in principle, justify it.
func controlExtensionNeeded(f *Frame) bool {
	return f.Delay > 0 || f.Dispose != DisposalAny || f.NeedsUserInput || f.Transparent != nil
}

func controlExtensionFor(f *Frame) ExtensionData {
	return NewControlExtension(f.Delay, f.Dispose, f.NeedsUserInput, f.Transparent)
}

// writeFrameHeader emits the (always-present) control extension followed by the image
// descriptor and, if the frame carries a local palette, the local color table.
func writeFrameHeader(sink Sink, f *Frame, globalPaletteSet bool) error {
	if err := writeExtension(sink, controlExtensionFor(f)); err != nil {
		return err
	}

	flags := byte(0)
	if f.Interlaced {
		flags |= 1 << 6
	}

	var localTable []byte
	var localPadding int
	hasLocal := len(f.Palette) > 0
	if hasLocal {
		table, padding, size, err := checkColorTable(f.Palette)
		if err != nil {
			return err
		}
		flags |= 1 << 7
		flags |= size
		localTable, localPadding = table, padding
	} else if !globalPaletteSet {
		return formatErr(ErrMissingColorPalette)
	}

	if err := writeExtension(sink, controlExtensionFor(f)); err != nil {
		return err
	}
	if err := leio.WriteU8(sink, 0x2C); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU16LE(sink, f.Left); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU16LE(sink, f.Top); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU16LE(sink, f.Width); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU16LE(sink, f.Height); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU8(sink, flags); err != nil {
		return wrapIO(err)
	}
	if hasLocal {
		if err := writeColorTable(sink, localTable, localPadding); err != nil {
			return err
		}
	}
	return nil
}

// writeEncodedImageBlock emits the bare minimum-code-size byte followed by the
// sub-blocked LZW stream in data. data must already carry the min-code-size byte as
// its first element.
func writeEncodedImageBlock(sink Sink, data []byte) error {
	var header byte = 2
	var payload []byte
	if len(data) > 0 {
		header = data[0]
		payload = data[1:]
	}
	if err := leio.WriteU8(sink, header); err != nil {
		return wrapIO(err)
	}
	return writeSubBlocks(sink, payload)
}
