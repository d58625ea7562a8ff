// Package manifest loads the JSON animation manifest the gifenc-cli command reads:
// canvas size, an optional base64-encoded global palette, a repeat count, and an
// ordered list of frames each pointing at a raw indexed-pixel file on disk. It is
// parsed with gjson path queries rather than encoding/json into a tagged struct,
// since the manifest's frame objects are expected to grow optional fields over time
// without forcing a struct migration in lockstep.
package manifest

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/riverrun/gifenc"
	"github.com/tidwall/gjson"
)

// Frame is one entry in a Manifest's frame list, naming the raw indexed-pixel file to
// load rather than embedding pixel data directly.
type Frame struct {
	Path        string
	Delay       uint16
	Dispose     gifenc.DisposalMethod
	Transparent *byte
	Interlaced  bool
	Palette     []byte // decoded local palette, nil if the frame has none
}

// Manifest is the fully-parsed, validated contents of an animation manifest file.
type Manifest struct {
	Width, Height uint16
	Palette       []byte // decoded global palette, nil if none
	Repeat        gifenc.Repeat
	Frames        []Frame
}

// Parse decodes raw manifest JSON into a Manifest. It rejects invalid JSON, missing
// width or height, a non-array frames field, a frame without a path, palettes that are
// not valid base64, and repeat values that are not "infinite", "none" or a uint16.
// Numeric fields (width, height, delay, transparent) are converted without a range
// check, so out-of-range values are truncated rather than rejected.
func Parse(raw []byte) (*Manifest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("manifest: not valid JSON")
	}
	root := gjson.ParseBytes(raw)

	width := root.Get("width")
	height := root.Get("height")
	if !width.Exists() || !height.Exists() {
		return nil, errors.New("manifest: width and height are required")
	}

	m := &Manifest{
		Width:  uint16(width.Uint()),
		Height: uint16(height.Uint()),
	}

	if pal := root.Get("palette"); pal.Exists() && pal.String() != "" {
		decoded, err := base64.StdEncoding.DecodeString(pal.String())
		if err != nil {
			return nil, errors.Wrap(err, "manifest: decoding palette")
		}
		m.Palette = decoded
	}

	repeat, err := parseRepeat(root.Get("repeat"))
	if err != nil {
		return nil, err
	}
	m.Repeat = repeat

	framesResult := root.Get("frames")
	if !framesResult.IsArray() {
		return nil, errors.New("manifest: frames must be an array")
	}

	var parseErr error
	framesResult.ForEach(func(_, frame gjson.Result) bool {
		f, err := parseFrame(frame)
		if err != nil {
			parseErr = err
			return false
		}
		m.Frames = append(m.Frames, f)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return m, nil
}

func parseFrame(r gjson.Result) (Frame, error) {
	path := r.Get("path")
	if !path.Exists() || path.String() == "" {
		return Frame{}, errors.New("manifest: frame is missing a path")
	}

	f := Frame{
		Path:       path.String(),
		Delay:      uint16(r.Get("delay").Uint()),
		Interlaced: r.Get("interlaced").Bool(),
	}

	f.Dispose = parseDispose(r.Get("dispose").String())

	if trns := r.Get("transparent"); trns.Exists() {
		v := byte(trns.Uint())
		f.Transparent = &v
	}

	if pal := r.Get("palette"); pal.Exists() && pal.String() != "" {
		decoded, err := base64.StdEncoding.DecodeString(pal.String())
		if err != nil {
			return Frame{}, errors.Wrapf(err, "manifest: decoding local palette for %q", f.Path)
		}
		f.Palette = decoded
	}

	return f, nil
}

func parseDispose(s string) gifenc.DisposalMethod {
	switch s {
	case "keep":
		return gifenc.DisposalKeep
	case "background":
		return gifenc.DisposalBackground
	case "previous":
		return gifenc.DisposalPrevious
	default:
		return gifenc.DisposalAny
	}
}

func parseRepeat(r gjson.Result) (gifenc.Repeat, error) {
	if !r.Exists() {
		return gifenc.RepeatFinite(0), nil
	}
	switch s := r.String(); s {
	case "infinite":
		return gifenc.RepeatInfinite(), nil
	case "none", "":
		return gifenc.RepeatFinite(0), nil
	default:
		n, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return gifenc.Repeat{}, errors.Wrapf(err, "manifest: invalid repeat value %q", s)
		}
		return gifenc.RepeatFinite(uint16(n)), nil
	}
}

// Summary is the human-readable digest `gifenc-cli inspect` prints: frame count,
// canvas dimensions, and total nominal playback duration.
func (m *Manifest) Summary() string {
	var totalDelay int
	for _, f := range m.Frames {
		totalDelay += int(f.Delay)
	}
	return fmt.Sprintf(
		"%dx%d canvas, %d frame(s), %.2fs nominal duration, global palette: %v",
		m.Width, m.Height, len(m.Frames), float64(totalDelay)/100, len(m.Palette) > 0,
	)
}
