package pngchunk

import "hash/crc32"

// Checksum computes the CRC-32 of the four type bytes followed by the data
// bytes, which is exactly what a chunk's trailer stores. The algorithm is the
// standard ISO-HDLC/zlib CRC-32 (reflected polynomial 0xEDB88320, initial
// value 0xFFFFFFFF, final complement); hash/crc32's IEEE table implements it,
// and Update lets the two regions stream through without concatenating them.
func Checksum(typ [4]byte, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, typ[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}
