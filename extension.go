package gifenc

import "github.com/riverrun/gifenc/internal/leio"

type extVariant int

const (
	extControl extVariant = iota
	extRepetitions
)

// ExtensionData is the payload for Encoder.WriteExtension. Use NewControlExtension or
// NewRepeatExtension rather than constructing one by hand.
type ExtensionData struct {
	variant extVariant
	flags   byte
	delay   uint16
	trns    byte
	repeat  Repeat
}

// NewControlExtension builds the graphic-control extension data for a frame with the
// given delay (hundredths of a second), disposal method, user-input flag, and
// optional transparent palette index.
func NewControlExtension(delay uint16, dispose DisposalMethod, needsUserInput bool, trns *byte) ExtensionData {
	flags := byte(0)
	var t byte
	if trns != nil {
		flags |= 1
		t = *trns
	}
	if needsUserInput {
		flags |= 1 << 1
	}
	flags |= byte(dispose) << 2
	return ExtensionData{variant: extControl, flags: flags, delay: delay, trns: t}
}

// NewRepeatExtension builds the Netscape looping extension data.
func NewRepeatExtension(r Repeat) ExtensionData {
	return ExtensionData{variant: extRepetitions, repeat: r}
}

// Repeat is the number of times an animation should loop.
type Repeat struct {
	infinite bool
	n        uint16
}

// RepeatFinite loops the animation n times. RepeatFinite(0) is a no-op sentinel: it
// is the default and emits no looping extension at all.
func RepeatFinite(n uint16) Repeat { return Repeat{n: n} }

// RepeatInfinite loops the animation forever.
func RepeatInfinite() Repeat { return Repeat{infinite: true} }

func (r Repeat) isNoOp() bool { return !r.infinite && r.n == 0 }

func (r Repeat) loopCount() uint16 {
	if r.infinite {
		return 0
	}
	return r.n
}

// AnyExtension identifies a raw extension block by its GIF function/label byte, for
// use with Encoder.WriteRawExtension.
type AnyExtension byte

const (
	blockExtension = 0x21
	blockImage     = 0x2C
	blockTrailer   = 0x3B

	labelControl     = 0xF9
	labelApplication = 0xFF
)

func writeExtension(sink Sink, ext ExtensionData) error {
	if ext.variant == extRepetitions && ext.repeat.isNoOp() {
		return nil
	}

	if err := leio.WriteU8(sink, blockExtension); err != nil {
		return wrapIO(err)
	}

	switch ext.variant {
	case extControl:
		if err := leio.WriteU8(sink, labelControl); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU8(sink, 4); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU8(sink, ext.flags); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU16LE(sink, ext.delay); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU8(sink, ext.trns); err != nil {
			return wrapIO(err)
		}
	case extRepetitions:
		if err := leio.WriteU8(sink, labelApplication); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU8(sink, 11); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteASCII(sink, "NETSCAPE2.0"); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU8(sink, 3); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU8(sink, 1); err != nil {
			return wrapIO(err)
		}
		if err := leio.WriteU16LE(sink, ext.repeat.loopCount()); err != nil {
			return wrapIO(err)
		}
	}

	if err := leio.WriteU8(sink, 0); err != nil {
		return wrapIO(err)
	}
	return nil
}

// writeRawExtension emits an arbitrary extension identified by funcByte, chunking each
// payload slice independently at 255-byte sub-block boundaries.
func writeRawExtension(sink Sink, funcByte AnyExtension, data [][]byte) error {
	if err := leio.WriteU8(sink, blockExtension); err != nil {
		return wrapIO(err)
	}
	if err := leio.WriteU8(sink, byte(funcByte)); err != nil {
		return wrapIO(err)
	}
	for _, block := range data {
		for len(block) > 0 {
			n := len(block)
			if n > 255 {
				n = 255
			}
			if err := leio.WriteU8(sink, byte(n)); err != nil {
				return wrapIO(err)
			}
			if err := leio.WriteBytes(sink, block[:n]); err != nil {
				return wrapIO(err)
			}
			block = block[n:]
		}
	}
	if err := leio.WriteU8(sink, 0); err != nil {
		return wrapIO(err)
	}
	return nil
}
