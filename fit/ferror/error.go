// Package ferror defines the error kinds a verification run can fail with.
// Every kind carries the byte offset of the first violation, so that the
// surrounding tooling can report it verbatim.
package ferror

import (
	"fmt"
)

type (
	InvalidHeader struct {
		Offset int
		Reason string
	}
	TruncatedFile struct {
		Offset int
		Need   int
		Have   int
	}
	UnknownMessageDefinition struct {
		Offset    int
		LocalType uint8
	}
	UnresolvedDeveloperField struct {
		Offset             int
		DeveloperDataIndex uint8
		FieldNumber        uint8
	}
	MalformedField struct {
		Offset int
		Reason string
	}
	UnsupportedBaseType struct {
		Offset int
		Tag    uint8
	}
	ChecksumMismatch struct {
		Offset   int
		Computed uint16
		Stored   uint16
	}
)

func (r InvalidHeader) Error() string {
	return fmt.Sprintf("invalid header at offset %d: %s", r.Offset, r.Reason)
}

func (r TruncatedFile) Error() string {
	return fmt.Sprintf(
		"truncated file at offset %d: needed %d more bytes; had %d",
		r.Offset, r.Need, r.Have,
	)
}

func (r UnknownMessageDefinition) Error() string {
	return fmt.Sprintf(
		"data record at offset %d references local message type %d with no active definition",
		r.Offset, r.LocalType,
	)
}

func (r UnresolvedDeveloperField) Error() string {
	return fmt.Sprintf(
		"developer field %d of developer data index %d at offset %d has no registered type",
		r.FieldNumber, r.DeveloperDataIndex, r.Offset,
	)
}

func (r MalformedField) Error() string {
	return fmt.Sprintf("malformed field at offset %d: %s", r.Offset, r.Reason)
}

func (r UnsupportedBaseType) Error() string {
	return fmt.Sprintf("unsupported base type 0x%02X at offset %d", r.Tag, r.Offset)
}

func (r ChecksumMismatch) Error() string {
	return fmt.Sprintf(
		"checksum mismatch at offset %d: computed 0x%04X; stored 0x%04X",
		r.Offset, r.Computed, r.Stored,
	)
}
