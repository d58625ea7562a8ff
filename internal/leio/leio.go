// Package leio writes the little-endian primitives the GIF wire format is built from
// onto any write-all style sink. It mirrors the WriteBytesExt trait the source
// encoder layers over its io.Write: every multi-byte integer is least-significant-byte
// first, and every call is a single complete write.
package leio

// Sink is the minimal capability leio needs: a single write-all call. gifenc.Sink
// satisfies this structurally.
type Sink interface {
	WriteAll(p []byte) error
}

// WriteU8 writes a single byte.
func WriteU8(s Sink, v byte) error {
	return s.WriteAll([]byte{v})
}

// WriteU16LE writes v as two bytes, least-significant first.
func WriteU16LE(s Sink, v uint16) error {
	return s.WriteAll([]byte{byte(v), byte(v >> 8)})
}

// WriteU32LE writes v as four bytes, least-significant first.
func WriteU32LE(s Sink, v uint32) error {
	return s.WriteAll([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// WriteBytes writes p verbatim.
func WriteBytes(s Sink, p []byte) error {
	return s.WriteAll(p)
}

// WriteASCII writes s as raw bytes (the GIF header and the Netscape application
// identifier are both plain ASCII literals, never UTF-8 multi-byte sequences).
func WriteASCII(s Sink, str string) error {
	return s.WriteAll([]byte(str))
}
