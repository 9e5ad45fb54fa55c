package pngchunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
)

// Chunk is one complete record: a stored length field, a type tag, the data
// bytes and a CRC-32 trailer over type and data. A Chunk never exists with a
// CRC that disagrees with its own type and data; New computes the checksum
// and FromBytes verifies it before the Chunk is returned. Chunks are
// immutable, so any "modification" means building a new one.
type Chunk struct {
	// length holds the big-endian length field exactly as persisted. The
	// format stores it redundantly with the data size; it is kept for
	// byte-for-byte serialization but Length() never trusts it.
	length [4]byte
	typ    ChunkType
	data   []byte
	crc    uint32
}

// New builds a Chunk from a type tag and data bytes, copying the data and
// computing the CRC trailer. Data of 2^32 bytes or more cannot be represented
// by the record's length field and is a caller error.
func New(typ ChunkType, data []byte) *Chunk {
	c := &Chunk{
		typ:  typ,
		data: append([]byte(nil), data...),
		crc:  Checksum(typ.Bytes(), data),
	}
	binary.BigEndian.PutUint32(c.length[:], uint32(len(data)))
	return c
}

// FromBytes parses one chunk record from the front of buf. Field order is
// length, type, data, crc; any short read wraps ErrTruncated, an invalid tag
// wraps ErrInvalidChunkType, and a trailer that disagrees with the recomputed
// checksum wraps ErrCRCMismatch. Bytes beyond the record are left untouched
// for the caller, who advances past exactly 4+4+length+4 bytes.
func FromBytes(buf []byte) (*Chunk, error) {
	stream := kaitai.NewStream(bytes.NewReader(buf))

	length, err := stream.ReadU4be()
	if err != nil {
		return nil, fmt.Errorf("reading length field: %w", ErrTruncated)
	}

	tag, err := stream.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("reading type tag: %w", ErrTruncated)
	}
	typ := NewChunkType(tag[0], tag[1], tag[2], tag[3])
	if !typ.IsValid() {
		return nil, fmt.Errorf("tag %q: %w", tag, ErrInvalidChunkType)
	}

	data, err := stream.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("reading %d data bytes: %w", length, ErrTruncated)
	}

	stored, err := stream.ReadU4be()
	if err != nil {
		return nil, fmt.Errorf("reading crc field: %w", ErrTruncated)
	}
	if computed := Checksum(typ.Bytes(), data); stored != computed {
		return nil, fmt.Errorf("stored %08x, computed %08x: %w", stored, computed, ErrCRCMismatch)
	}

	c := &Chunk{typ: typ, data: data, crc: stored}
	binary.BigEndian.PutUint32(c.length[:], length)
	return c, nil
}

// Length returns the data byte count, recomputed from the data itself rather
// than read back from the stored length field.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk's type tag.
func (c *Chunk) Type() ChunkType {
	return c.typ
}

// CRC returns the checksum stored in the record trailer.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// Data returns a copy of the data bytes, keeping the chunk immutable.
func (c *Chunk) Data() []byte {
	return append([]byte(nil), c.data...)
}

// DataAsString returns the data as text, wrapping ErrNotText when the bytes
// are not valid UTF-8. See DecodeText for other encodings.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%s chunk: %w", c.typ, ErrNotText)
	}
	return string(c.data), nil
}

// Bytes serializes the record exactly as it appears on the wire:
// length, type, data, crc, all multi-byte fields big-endian.
func (c *Chunk) Bytes() []byte {
	out := make([]byte, 0, 4+4+len(c.data)+4)
	out = append(out, c.length[:]...)
	tag := c.typ.Bytes()
	out = append(out, tag[:]...)
	out = append(out, c.data...)
	return binary.BigEndian.AppendUint32(out, c.crc)
}

// String renders a multi-line diagnostic view of the chunk. Non-text data is
// shown as a placeholder; the output is for humans, not the wire.
func (c *Chunk) String() string {
	text, err := c.DataAsString()
	if err != nil {
		text = fmt.Sprintf("<%d bytes of non-text data>", len(c.data))
	}
	return fmt.Sprintf("Length: %d\nType: %s\nData: %s\nCRC: %d",
		binary.BigEndian.Uint32(c.length[:]), c.typ, text, c.crc)
}
