package fit

import (
	"encoding/binary"

	"fitcheck/fit/fcrc"
)

// Helpers to assemble synthetic FIT files byte by byte. The library never
// writes FIT files itself, so the encoding side lives with the tests.

func buildFile(records ...[]byte) []byte {
	data := make([]byte, 0)
	for _, record := range records {
		data = append(data, record...)
	}

	header := make([]byte, 14)
	header[0] = 14
	header[1] = 0x20 // protocol version
	binary.LittleEndian.PutUint16(header[2:4], 0x0854)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(data)))
	copy(header[8:12], ".FIT")
	binary.LittleEndian.PutUint16(header[12:14], fcrc.Checksum(header[:12]))

	file := append(header, data...)
	trailer := make([]byte, 2)
	binary.LittleEndian.PutUint16(trailer, fcrc.Checksum(data))
	return append(file, trailer...)
}

type fieldTriple struct {
	number uint8
	size   uint8
	tag    uint8
}

func encodeDefinition(localType uint8, global uint16, fields []fieldTriple, developerFields []fieldTriple) []byte {
	header := 0x40 | (localType & 0x0F)
	if developerFields != nil {
		header |= 0x20
	}
	bs := []byte{header, 0x00, 0x00} // little endian
	globalBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(globalBytes, global)
	bs = append(bs, globalBytes...)
	bs = append(bs, uint8(len(fields)))
	for _, field := range fields {
		bs = append(bs, field.number, field.size, field.tag)
	}
	if developerFields != nil {
		bs = append(bs, uint8(len(developerFields)))
		for _, field := range developerFields {
			// the third byte is the developer data index here
			bs = append(bs, field.number, field.size, field.tag)
		}
	}
	return bs
}

func encodeData(localType uint8, payload ...byte) []byte {
	return append([]byte{localType & 0x0F}, payload...)
}

func encodeCompressedData(localType uint8, timeOffset uint8, payload ...byte) []byte {
	header := 0x80 | ((localType & 0x03) << 5) | (timeOffset & 0x1F)
	return append([]byte{header}, payload...)
}

func uint32LE(v uint32) []byte {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, v)
	return bs
}
