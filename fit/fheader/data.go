package fheader

import (
	"bytes"
)

type (
	Header struct {
		Size            int    `json:"size"`
		ProtocolVersion uint8  `json:"protocol_version"`
		ProfileVersion  uint16 `json:"profile_version"`
		DataLength      int    `json:"data_length"`
		Signature       []byte `json:"signature"`
		// CRC covers the first 12 header bytes. Only present when Size is
		// SizeWithCRC; a stored value of 0 means the writer left it unset.
		CRC uint16 `json:"crc"`
	}
)

const (
	SizeNoCRC   = 12
	SizeWithCRC = 14
	// CRCRegionSize is the number of leading header bytes the header CRC covers.
	CRCRegionSize = 12
	// SignatureOffset is where the 4-byte signature sits within the header.
	SignatureOffset = 8
)

var SignatureBytes = []byte{'.', 'F', 'I', 'T'}

func IsValidSignature(bs []byte) bool {
	return bytes.Equal(bs, SignatureBytes)
}
