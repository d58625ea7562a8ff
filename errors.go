package gifenc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind discriminates the closed set of ways an encoding operation can fail.
type ErrorKind int

const (
	// ErrFrameBufferTooSmall means a frame's buffer is too small for width*height.
	ErrFrameBufferTooSmall ErrorKind = iota
	// ErrOutOfMemory means the scratch buffer could not be grown.
	ErrOutOfMemory
	// ErrWriterNotFound means the encoder has already been finalized.
	ErrWriterNotFound
	// ErrTooManyColors means a palette has more than 256 triplets.
	ErrTooManyColors
	// ErrMissingColorPalette means neither a local nor a global palette is present.
	ErrMissingColorPalette
	// ErrInvalidMinCodeSize means a pre-encoded frame's header byte is out of range.
	ErrInvalidMinCodeSize
	// ErrIO wraps a failure from the underlying Sink.
	ErrIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrFrameBufferTooSmall:
		return "frame buffer too small for dimensions"
	case ErrOutOfMemory:
		return "out of memory"
	case ErrWriterNotFound:
		return "writer not found"
	case ErrTooManyColors:
		return "the image has too many colors"
	case ErrMissingColorPalette:
		return "the GIF format requires a color palette but none was given"
	case ErrInvalidMinCodeSize:
		return "LZW data is invalid"
	case ErrIO:
		return "io error"
	default:
		return "unknown encoding error"
	}
}

// EncodingError is the single error type returned by every fallible operation in this
// package. Kind is always comparable with errors.Is against another *EncodingError of
// the same Kind (see the Is method); Unwrap exposes the underlying sink failure, if
// any, for errors.As.
type EncodingError struct {
	Kind  ErrorKind
	cause error
}

func (e *EncodingError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("gifenc: %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("gifenc: %s", e.Kind)
}

// Unwrap exposes the wrapped sink error, if this EncodingError carries one.
func (e *EncodingError) Unwrap() error {
	return e.cause
}

// Is lets callers write errors.Is(err, gifenc.KindError(gifenc.ErrTooManyColors))
// without caring whether the error was wrapped along the way.
func (e *EncodingError) Is(target error) bool {
	te, ok := target.(*EncodingError)
	if !ok {
		return false
	}
	return e.Kind == te.Kind
}

// KindError builds a bare sentinel value of the given kind, suitable for errors.Is.
func KindError(kind ErrorKind) error {
	return &EncodingError{Kind: kind}
}

func formatErr(kind ErrorKind) *EncodingError {
	return &EncodingError{Kind: kind}
}

// wrapIO turns a raw sink/IO failure into an EncodingError of kind ErrIO, attaching a
// stack trace via pkg/errors the way the rest of this module attaches context to
// opaque causes crossing a package boundary.
func wrapIO(err error) *EncodingError {
	if err == nil {
		return nil
	}
	return &EncodingError{Kind: ErrIO, cause: errors.WithStack(err)}
}
