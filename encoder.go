package gifenc

import (
	"runtime"

	"github.com/riverrun/gifenc/internal/leio"
)

// ClosePolicy controls what happens when the garbage collector's finalizer closes an
// Encoder that was never closed explicitly (the "scoped release" path; an explicit
// Close or IntoInner returns its error instead) and the trailer write fails. This mirrors the two build-time modes the source design
// calls out: panic-on-drop-error, the default, surfaces a forgotten/failed close
// loudly; silent-on-drop-error swallows it, for callers who always pair construction
// with an explicit Close or IntoInner and only want the finalizer as a backstop.
type ClosePolicy int

const (
	ClosePolicyPanic ClosePolicy = iota
	ClosePolicySilent
)

// Option configures an Encoder at construction time.
type Option func(*Encoder)

// WithClosePolicy overrides the default ClosePolicyPanic.
func WithClosePolicy(p ClosePolicy) Option {
	return func(e *Encoder) { e.closePolicy = p }
}

// Encoder is the GIF89a encoder lifecycle (component H). It owns a Sink, writes the
// header/logical-screen-descriptor/global-palette at construction, accepts
// extension/frame writes, and emits the trailer byte exactly once on Close or
// IntoInner. An Encoder must not be used from more than one goroutine at a time.
type Encoder struct {
	sink             Sink
	width, height    uint16
	globalPaletteSet bool
	scratch          []byte
	closed           bool
	closePolicy      ClosePolicy
}

// NewEncoder constructs an Encoder over sink, declaring the canvas size and an
// optional global palette (pass nil or an empty slice for none). Construction writes
// the "GIF89a" signature, logical screen descriptor, and global color table, in that
// order, before returning.
func NewEncoder(sink Sink, width, height uint16, globalPalette []byte, opts ...Option) (*Encoder, error) {
	e := &Encoder{sink: sink, width: width, height: height, closePolicy: ClosePolicyPanic}
	for _, opt := range opts {
		opt(e)
	}

	table, padding, size, err := checkColorTable(globalPalette)
	if err != nil {
		return nil, err
	}
	e.globalPaletteSet = len(table) > 0

	flags := byte(0x80) | (size << 4) | size
	if err := e.writeScreenDescriptor(flags); err != nil {
		return nil, err
	}
	// The global-color-table-present bit is set unconditionally above, but the table
	// itself is only emitted when a palette was actually supplied: an empty global
	// palette means "no palette at this scope", not "a palette of zeros" (see
	// boundary scenario 1 in the design doc).
	if e.globalPaletteSet {
		if err := writeColorTable(e.sink, table, padding); err != nil {
			return nil, err
		}
	}

	runtime.SetFinalizer(e, (*Encoder).finalizerClose)
	return e, nil
}

func (e *Encoder) writeScreenDescriptor(flags byte) error {
	if err := leio.WriteASCII(e.sink, "GIF89a"); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU16LE(e.sink, e.width); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU16LE(e.sink, e.height); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU8(e.sink, flags); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU8(e.sink, 0); err != nil { // background color index
		return wrapIO(err)
	}
	if err := leio.WriteU8(e.sink, 0); err != nil { // pixel aspect ratio
		return wrapIO(err)
	}
	return nil
}

func (e *Encoder) writer() (Sink, error) {
	if e.closed {
		return nil, formatErr(ErrWriterNotFound)
	}
	return e.sink, nil
}

// Writer exposes the underlying Sink without consuming the encoder, for callers that
// want to interleave out-of-band writes alongside normal frame/extension calls. The
// returned bool is false once the encoder has been closed or finalized, in which case
// the Sink is nil. Most callers want WriteFrame/WriteExtension instead.
func (e *Encoder) Writer() (Sink, bool) {
	if e.closed {
		return nil, false
	}
	return e.sink, true
}

// SetRepeat writes a Netscape looping extension for r, or nothing for RepeatFinite(0).
func (e *Encoder) SetRepeat(r Repeat) error {
	return e.WriteExtension(NewRepeatExtension(r))
}

// WriteExtension writes a single control or repeat extension directly. Callers rarely
// need this: WriteFrame already emits the per-frame control extension, and SetRepeat
// already wraps the looping extension.
func (e *Encoder) WriteExtension(ext ExtensionData) error {
	sink, err := e.writer()
	if err != nil {
		return err
	}
	return writeExtension(sink, ext)
}

// WriteRawExtension writes an extension identified by funcByte with the given payload
// blocks, each independently chunked at 255-byte sub-block boundaries. Use this for
// extension types this package has no first-class support for.
func (e *Encoder) WriteRawExtension(funcByte AnyExtension, data ...[]byte) error {
	sink, err := e.writer()
	if err != nil {
		return err
	}
	return writeRawExtension(sink, funcByte, data)
}

// WriteFrame writes f, compressing its raw index buffer with the LZW engine. It also
// writes the frame's control extension and image descriptor.
func (e *Encoder) WriteFrame(f *Frame) error {
	if err := checkFrameBuffer(f); err != nil {
		return err
	}
	sink, err := e.writer()
	if err != nil {
		return err
	}
	if err := writeFrameHeader(sink, f, e.globalPaletteSet); err != nil {
		return err
	}

	e.scratch = e.scratch[:0]
	e.scratch = append(e.scratch, lzwCompress(f.Buffer)...)
	return writeEncodedImageBlock(sink, e.scratch)
}

// WriteLZWPreEncodedFrame writes f whose Buffer already holds LZW-compressed data
// produced by Frame.MakeLZWPreEncoded (first byte = minimum code size). It performs
// no compression, only validates the header byte, making it O(len(f.Buffer)) — the
// intended counterpart to off-encoder, parallel frame precompression.
func (e *Encoder) WriteLZWPreEncodedFrame(f *Frame) error {
	if len(f.Buffer) > 0 {
		if err := validateMinCodeSize(f.Buffer[0]); err != nil {
			return err
		}
	}
	sink, err := e.writer()
	if err != nil {
		return err
	}
	if err := writeFrameHeader(sink, f, e.globalPaletteSet); err != nil {
		return err
	}
	return writeEncodedImageBlock(sink, f.Buffer)
}

// IntoInner finalizes the encoder: it writes the trailer exactly once and returns the
// underlying Sink to the caller. After IntoInner returns successfully, every write
// method and a second IntoInner fail with ErrWriterNotFound, Close is a no-op, and
// Writer reports false.
func (e *Encoder) IntoInner() (Sink, error) {
	if e.closed {
		return nil, formatErr(ErrWriterNotFound)
	}
	if err := e.writeTrailer(); err != nil {
		return nil, err
	}
	sink := e.sink
	e.sink = nil
	e.closed = true
	runtime.SetFinalizer(e, nil)
	return sink, nil
}

// Close is the scoped-release counterpart to IntoInner: it writes the trailer if the
// encoder is still open and does nothing otherwise, so it is safe to defer
// unconditionally after NewEncoder. Unlike IntoInner it does not hand back the Sink.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	err := e.writeTrailer()
	e.closed = true
	e.sink = nil
	runtime.SetFinalizer(e, nil)
	return err
}

func (e *Encoder) finalizerClose() {
	if e.closed {
		return
	}
	err := e.writeTrailer()
	e.closed = true
	e.sink = nil
	if err != nil && e.closePolicy == ClosePolicyPanic {
		panic(err)
	}
}

func (e *Encoder) writeTrailer() error {
	if err := leio.WriteU8(e.sink, blockTrailer); err != nil {
		return wrapIO(err)
	}
	return nil
}
