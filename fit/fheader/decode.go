package fheader

import (
	"encoding/binary"
	"fmt"

	"fitcheck/fit/ferror"
	"fitcheck/fit/lbytes"
	"github.com/pkg/errors"
)

func createSignatureReadFunction(reader *lbytes.Reader) lbytes.ReadFunction {
	return func() (any, error) {
		signatureBytes, err := reader.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		if !IsValidSignature(signatureBytes) {
			err := ferror.InvalidHeader{
				Offset: reader.Offset() - 4,
				Reason: fmt.Sprintf(
					`signature mismatch: expected "%v", got "%v"`,
					SignatureBytes, signatureBytes,
				),
			}
			return nil, err
		}
		return signatureBytes, nil
	}
}

// Decode parses the fixed-layout file header at the reader's current
// position. The size byte is read first to discover the header's total
// length; the remaining fields follow. The optional header CRC is read
// but not checked here, since checking it needs the raw header bytes.
func Decode(reader *lbytes.Reader) (*Header, error) {
	start := reader.Offset()
	if reader.Remaining() < 1 {
		return nil, ferror.InvalidHeader{
			Offset: start,
			Reason: "no bytes available for the header size",
		}
	}
	size, err := reader.ReadUint8()
	if err != nil {
		return nil, errors.Wrap(err, "fheader.Decode error: read size")
	}
	if size != SizeNoCRC && size != SizeWithCRC {
		return nil, ferror.InvalidHeader{
			Offset: start,
			Reason: fmt.Sprintf(
				"unrecognized header size %d: expected %d or %d",
				size, SizeNoCRC, SizeWithCRC,
			),
		}
	}
	if reader.Remaining() < int(size)-1 {
		return nil, ferror.InvalidHeader{
			Offset: start,
			Reason: fmt.Sprintf(
				"declared header size %d but only %d bytes available",
				size, reader.Remaining()+1,
			),
		}
	}

	readUint8 := lbytes.CreateUint8ReadFunction(reader)
	readUint16 := lbytes.CreateUint16ReadFunction(reader, binary.LittleEndian)
	readUint32 := lbytes.CreateUint32ReadFunction(reader, binary.LittleEndian)
	readSignature := createSignatureReadFunction(reader)

	headerInstructions := []lbytes.Instruction{
		{Key: "protocol_version", ReadFunction: readUint8},
		{Key: "profile_version", ReadFunction: readUint16},
		{Key: "data_length", ReadFunction: readUint32},
		{Key: "signature", ReadFunction: readSignature},
	}

	header, err := lbytes.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		err := errors.Wrap(err, "fheader.Decode error")
		return nil, err
	}
	header.Size = int(size)

	if size == SizeWithCRC {
		crc, err := reader.ReadUint16(binary.LittleEndian)
		if err != nil {
			err := errors.Wrap(err, "fheader.Decode error: read crc")
			return nil, err
		}
		header.CRC = crc
	}

	return header, nil
}
