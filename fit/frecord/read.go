package frecord

import (
	"encoding/binary"

	"fitcheck/fit/ferror"
	"fitcheck/fit/lbytes"
)

// The helpers below turn short reads into TruncatedFile errors carrying
// the offset the read started at.

func readUint8(reader *lbytes.Reader) (uint8, error) {
	start, have := reader.Offset(), reader.Remaining()
	value, err := reader.ReadUint8()
	if err != nil {
		return 0, ferror.TruncatedFile{Offset: start, Need: 1, Have: have}
	}
	return value, nil
}

func readUint16(reader *lbytes.Reader, order binary.ByteOrder) (uint16, error) {
	start, have := reader.Offset(), reader.Remaining()
	value, err := reader.ReadUint16(order)
	if err != nil {
		return 0, ferror.TruncatedFile{Offset: start, Need: 2, Have: have}
	}
	return value, nil
}

func readBytes(reader *lbytes.Reader, n int) ([]byte, error) {
	start, have := reader.Offset(), reader.Remaining()
	bs, err := reader.ReadBytes(n)
	if err != nil {
		return nil, ferror.TruncatedFile{Offset: start, Need: n, Have: have}
	}
	return bs, nil
}
