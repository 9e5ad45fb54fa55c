// Package pngchunk implements the PNG-style chunk record format: typed,
// length-delimited, CRC-32 checked binary records.
//
// # Overview
//
// A chunk is laid out on the wire as four big-endian fields with no padding:
//
//	length (4 bytes) | type (4 bytes) | data (length bytes) | crc (4 bytes)
//
// The type tag is four ASCII letters whose case encodes per-chunk properties
// (critical, public, reserved, safe-to-copy), and the CRC-32 trailer covers
// the type bytes followed by the data bytes. This package owns exactly that
// record: [ChunkType] for the tag, [Checksum] for the integrity trailer, and
// [Chunk] for construction, parsing and serialization. Walking a whole
// container file and handling its signature is the caller's concern.
//
// # Quick Start
//
//	typ, err := pngchunk.ParseChunkType("tEXt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	chunk := pngchunk.New(typ, []byte("Comment\x00Hello"))
//	wire := chunk.Bytes()
//
//	parsed, err := pngchunk.FromBytes(wire)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(parsed.Length(), parsed.Type(), parsed.CRC())
//
// # Error Handling
//
// Parsing never yields a partially valid chunk. Failures wrap one of the
// sentinel errors [ErrTruncated], [ErrInvalidChunkType] or [ErrCRCMismatch]
// and are matched with errors.Is. [Chunk.DataAsString] wraps [ErrNotText]
// when the payload is not UTF-8; that accessor is a convenience view and not
// part of the binary contract.
//
// Chunks and chunk types are immutable values once constructed, so they may
// be shared freely across goroutines.
package pngchunk
