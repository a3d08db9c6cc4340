package frecord

import (
	"fitcheck/fit/fdef"
	"fitcheck/fit/ftype"
)

type (
	Kind   string
	Record struct {
		Kind      Kind  `json:"kind"`
		LocalType uint8 `json:"local_type"`
		// Offset is where the record's header byte sits in the file;
		// Size is the total number of bytes the record consumed.
		Offset int `json:"offset"`
		Size   int `json:"size"`
		// Layout is set for definition records only.
		Layout *fdef.Layout `json:"layout,omitempty"`
		// Fields and DeveloperFields are set for data records only.
		Fields          []FieldValue `json:"fields,omitempty"`
		DeveloperFields []FieldValue `json:"developer_fields,omitempty"`
		// Timestamp is the absolute timestamp the record establishes or
		// derives; HasTimestamp distinguishes a real zero from "none".
		Timestamp    uint32 `json:"timestamp,omitempty"`
		HasTimestamp bool   `json:"has_timestamp,omitempty"`
	}
	FieldValue struct {
		Number uint8         `json:"number"`
		Tag    ftype.Tag     `json:"base_type"`
		Raw    []byte        `json:"raw"`
		Values []ftype.Value `json:"values"`
	}
)

const (
	KindDefinition = Kind("definition")
	KindData       = Kind("data")
)

// Record header byte layout. Bit 7 marks the compressed-timestamp data
// form with a 2-bit local type and a 5-bit time offset; otherwise bit 6
// distinguishes definition (1) from data (0) records with a 4-bit local
// type, and bit 5 on a definition flags a developer-field trailer.
const (
	headerCompressedFlag     = uint8(0x80)
	headerDefinitionFlag     = uint8(0x40)
	headerDeveloperFlag      = uint8(0x20)
	headerLocalTypeMask      = uint8(0x0F)
	compressedLocalTypeMask  = uint8(0x03)
	compressedLocalTypeShift = 5
	compressedOffsetMask     = uint8(0x1F)
)

// TimestampFieldNumber is the reserved field number that carries an
// absolute timestamp inside ordinary data records.
const TimestampFieldNumber = uint8(253)

// timestampRollover is the period the 5-bit compressed offset wraps over.
const timestampRollover = uint32(compressedOffsetMask) + 1
