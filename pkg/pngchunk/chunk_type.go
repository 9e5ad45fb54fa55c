package pngchunk

import "fmt"

// ChunkType is the four byte tag identifying a chunk's kind. The byte array
// is the single source of truth: each property below is derived on demand
// from the case of one byte position, never stored separately.
//
//	byte 0 uppercase: chunk is critical (ancillary otherwise)
//	byte 1 uppercase: chunk is public (private otherwise)
//	byte 2 uppercase: reserved bit; required for the tag to be valid at all
//	byte 3 lowercase: chunk is safe to copy by editors
//
// A ChunkType is a comparable value type; equality is equality of the four
// bytes.
type ChunkType struct {
	b [4]byte
}

// NewChunkType builds a ChunkType from four raw bytes without any validity
// check, so tags found in untrusted input can be round-tripped for
// diagnostics. Use ChunkTypeFromBytes or ParseChunkType when accepting new
// input.
func NewChunkType(b0, b1, b2, b3 byte) ChunkType {
	return ChunkType{b: [4]byte{b0, b1, b2, b3}}
}

// ChunkTypeFromBytes builds a ChunkType from four bytes, rejecting tags that
// are not four ASCII letters with the reserved bit set.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	t := ChunkType{b: b}
	if !t.IsValid() {
		return ChunkType{}, fmt.Errorf("tag %q: %w", b[:], ErrInvalidChunkType)
	}
	return t, nil
}

// ParseChunkType parses a textual tag such as "tEXt". The string must be
// exactly four ASCII letters and the reserved bit rule applies.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("tag %q is %d bytes, want 4: %w", s, len(s), ErrInvalidChunkType)
	}
	return ChunkTypeFromBytes([4]byte{s[0], s[1], s[2], s[3]})
}

// Bytes returns the four raw tag bytes.
func (t ChunkType) Bytes() [4]byte {
	return t.b
}

// String renders the tag bytes as text, e.g. "IHDR".
func (t ChunkType) String() string {
	return string(t.b[:])
}

// IsValid reports whether all four bytes are ASCII letters and the reserved
// bit is set. The individual property predicates below stay computable even
// on invalid tags; only the parse constructors enforce validity.
func (t ChunkType) IsValid() bool {
	for _, b := range t.b {
		if !isASCIILetter(b) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

// IsCritical reports whether the chunk is required for correct display, per
// the case of byte 0.
func (t ChunkType) IsCritical() bool {
	return isASCIIUpper(t.b[0])
}

// IsPublic reports whether the tag belongs to the public registry, per the
// case of byte 1.
func (t ChunkType) IsPublic() bool {
	return isASCIIUpper(t.b[1])
}

// IsReservedBitValid reports whether byte 2 is uppercase, as the format
// requires of every valid tag.
func (t ChunkType) IsReservedBitValid() bool {
	return isASCIIUpper(t.b[2])
}

// IsSafeToCopy reports whether editors may copy the chunk unmodified when
// they do not recognize it, per the case of byte 3.
func (t ChunkType) IsSafeToCopy() bool {
	return isASCIILower(t.b[3])
}

func isASCIIUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isASCIILower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isASCIILetter(b byte) bool {
	return isASCIIUpper(b) || isASCIILower(b)
}
