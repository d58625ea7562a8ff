package gifenc

import (
	"errors"
	"testing"
)

func TestCheckFrameBufferTooSmall(t *testing.T) {
	f := &Frame{Width: 10, Height: 10, Buffer: make([]byte, 99)}
	if err := checkFrameBuffer(f); err == nil {
		t.Fatal("expected an error for a 99-byte buffer against a 10x10 frame")
	} else if !errors.Is(err, KindError(ErrFrameBufferTooSmall)) {
		t.Fatalf("got %v, want ErrFrameBufferTooSmall", err)
	}
}

func TestCheckFrameBufferExact(t *testing.T) {
	f := &Frame{Width: 10, Height: 10, Buffer: make([]byte, 100)}
	if err := checkFrameBuffer(f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestCheckFrameBufferWideDimensions exercises the widened uint64 arithmetic: with
// 16-bit width and height both at their maximum, width*height (4,294,836,225) is far
// beyond 16 bits and overflows a signed 32-bit int, but must not wrap around and
// falsely pass.
func TestCheckFrameBufferWideDimensions(t *testing.T) {
	f := &Frame{Width: 65535, Height: 65535, Buffer: make([]byte, 100)}
	if err := checkFrameBuffer(f); err == nil {
		t.Fatal("expected ErrFrameBufferTooSmall for a 65535x65535 frame with a 100-byte buffer")
	}
}

// TestMakeLZWPreEncodedMatchesWriteFrame is the idempotence property from the design
// notes: precompressing a frame off the encoder and writing it with
// WriteLZWPreEncodedFrame must produce exactly the same bytes as WriteFrame would for
// the same, not-yet-compressed frame.
func TestMakeLZWPreEncodedMatchesWriteFrame(t *testing.T) {
	palette := []byte{0, 0, 0, 255, 255, 255}
	buf := []byte{0, 1, 1, 0}

	sinkA := NewBufferSink()
	encA, _ := NewEncoder(sinkA, 2, 2, palette)
	if err := encA.WriteFrame(&Frame{Width: 2, Height: 2, Buffer: append([]byte(nil), buf...)}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	encA.Close()

	sinkB := NewBufferSink()
	encB, _ := NewEncoder(sinkB, 2, 2, palette)
	pre := &Frame{Width: 2, Height: 2, Buffer: append([]byte(nil), buf...)}
	pre.MakeLZWPreEncoded()
	if err := encB.WriteLZWPreEncodedFrame(pre); err != nil {
		t.Fatalf("WriteLZWPreEncodedFrame: %v", err)
	}
	encB.Close()

	if string(sinkA.Bytes()) != string(sinkB.Bytes()) {
		t.Fatalf("pre-encoded stream differs from normally-written stream:\n got % X\nwant % X",
			sinkB.Bytes(), sinkA.Bytes())
	}
}

func TestWriteLZWPreEncodedFrameRejectsBadHeader(t *testing.T) {
	sink := NewBufferSink()
	enc, _ := NewEncoder(sink, 1, 1, []byte{0, 0, 0})
	f := &Frame{Width: 1, Height: 1, Buffer: []byte{200}} // 200 is not a valid min code size
	if err := enc.WriteLZWPreEncodedFrame(f); err == nil {
		t.Fatal("expected ErrInvalidMinCodeSize")
	} else if !errors.Is(err, KindError(ErrInvalidMinCodeSize)) {
		t.Fatalf("got %v, want ErrInvalidMinCodeSize", err)
	}
}
