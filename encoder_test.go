package gifenc

import (
	"errors"
	"testing"
)

// TestMinimalEmptyPaletteStream pins the smallest possible stream this package can
// produce: a 1x1 canvas, no global palette, no frames. The global-color-table-present
// bit is still set in the logical screen descriptor's flags byte (0x80), but since no
// palette was supplied, no color table bytes follow it.
func TestMinimalEmptyPaletteStream(t *testing.T) {
	sink := NewBufferSink()
	enc, err := NewEncoder(sink, 1, 1, nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := []byte{
		0x47, 0x49, 0x46, 0x38, 0x39, 0x61, // GIF89a
		0x01, 0x00, // width = 1
		0x01, 0x00, // height = 1
		0x80, // flags: GCT present, resolution/sort bits zero, table size 0
		0x00, // background color index
		0x00, // pixel aspect ratio
		0x3B, // trailer
	}
	if got := sink.Bytes(); string(got) != string(want) {
		t.Fatalf("stream = % X, want % X", got, want)
	}
}

// TestTwoColorFrameStream pins a single-frame animation against a two-color global
// palette: the global color table, a graphic control extension, the image descriptor,
// and the LZW-compressed image data are each checked byte-for-byte.
func TestTwoColorFrameStream(t *testing.T) {
	sink := NewBufferSink()
	palette := []byte{255, 0, 0, 0, 255, 0} // red, green
	enc, err := NewEncoder(sink, 2, 1, palette)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	f := &Frame{Width: 2, Height: 1, Delay: 10, Buffer: []byte{0, 1}}
	if err := enc.WriteFrame(f); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := []byte{
		0x47, 0x49, 0x46, 0x38, 0x39, 0x61, // GIF89a
		0x02, 0x00, // width = 2
		0x01, 0x00, // height = 1
		0x80, 0x00, 0x00, // flags, bg index, aspect ratio
		0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00, // global color table
		0x21, 0xF9, 0x04, 0x00, 0x0A, 0x00, 0x00, 0x00, // graphic control extension
		0x2C, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01, 0x00, 0x00, // image descriptor
		0x02,             // LZW minimum code size
		0x02, 0x44, 0x0A, // sub-block: 2 bytes of packed codes
		0x00, // sub-block terminator
		0x3B, // trailer
	}
	if got := sink.Bytes(); string(got) != string(want) {
		t.Fatalf("stream = % X, want % X", got, want)
	}
}

func TestTooManyColorsOnConstruction(t *testing.T) {
	sink := NewBufferSink()
	palette := make([]byte, 257*3)
	if _, err := NewEncoder(sink, 1, 1, palette); err == nil {
		t.Fatal("expected an error for a 257-color global palette")
	} else if !errors.Is(err, KindError(ErrTooManyColors)) {
		t.Fatalf("got %v, want ErrTooManyColors", err)
	}
}

func TestMissingColorPalette(t *testing.T) {
	sink := NewBufferSink()
	enc, err := NewEncoder(sink, 1, 1, nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	f := &Frame{Width: 1, Height: 1, Buffer: []byte{0}}
	if err := enc.WriteFrame(f); err == nil {
		t.Fatal("expected ErrMissingColorPalette: no global or local palette")
	} else if !errors.Is(err, KindError(ErrMissingColorPalette)) {
		t.Fatalf("got %v, want ErrMissingColorPalette", err)
	}
}

func TestFrameBufferTooSmall(t *testing.T) {
	sink := NewBufferSink()
	enc, _ := NewEncoder(sink, 2, 2, []byte{0, 0, 0})
	f := &Frame{Width: 2, Height: 2, Buffer: []byte{0, 0, 0}} // needs 4 bytes
	if err := enc.WriteFrame(f); err == nil {
		t.Fatal("expected ErrFrameBufferTooSmall")
	} else if !errors.Is(err, KindError(ErrFrameBufferTooSmall)) {
		t.Fatalf("got %v, want ErrFrameBufferTooSmall", err)
	}
}

func TestWriterNotFoundAfterClose(t *testing.T) {
	sink := NewBufferSink()
	enc, _ := NewEncoder(sink, 1, 1, []byte{0, 0, 0})
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
	f := &Frame{Width: 1, Height: 1, Buffer: []byte{0}}
	if err := enc.WriteFrame(f); err == nil {
		t.Fatal("expected ErrWriterNotFound after Close")
	} else if !errors.Is(err, KindError(ErrWriterNotFound)) {
		t.Fatalf("got %v, want ErrWriterNotFound", err)
	}
}

func TestIntoInnerReturnsSinkOnce(t *testing.T) {
	sink := NewBufferSink()
	enc, _ := NewEncoder(sink, 1, 1, []byte{0, 0, 0})
	got, err := enc.IntoInner()
	if err != nil {
		t.Fatalf("IntoInner: %v", err)
	}
	if got != sink {
		t.Fatal("IntoInner should return the original sink")
	}
	if _, err := enc.IntoInner(); err == nil {
		t.Fatal("second IntoInner should fail")
	} else if !errors.Is(err, KindError(ErrWriterNotFound)) {
		t.Fatalf("got %v, want ErrWriterNotFound", err)
	}
}

// TestRepeatExtensionBytes exercises the Netscape looping extension's three shapes:
// the RepeatFinite(0) no-op, an infinite loop, and a finite loop count.
func TestRepeatExtensionBytes(t *testing.T) {
	cases := []struct {
		name   string
		repeat Repeat
		want   []byte
	}{
		{"no-op", RepeatFinite(0), nil},
		{
			"infinite",
			RepeatInfinite(),
			append([]byte{0x21, 0xFF, 0x0B}, append([]byte("NETSCAPE2.0"), 0x03, 0x01, 0x00, 0x00, 0x00)...),
		},
		{
			"finite three",
			RepeatFinite(3),
			append([]byte{0x21, 0xFF, 0x0B}, append([]byte("NETSCAPE2.0"), 0x03, 0x01, 0x03, 0x00, 0x00)...),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sink := NewBufferSink()
			enc, _ := NewEncoder(sink, 1, 1, []byte{0, 0, 0})
			if err := enc.SetRepeat(c.repeat); err != nil {
				t.Fatalf("SetRepeat: %v", err)
			}
			got := sink.Bytes()[19:] // skip header+LSD+padded 2-entry global palette
			if string(got) != string(c.want) {
				t.Fatalf("repeat bytes = % X, want % X", got, c.want)
			}
		})
	}
}
