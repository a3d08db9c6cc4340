package fdef

import (
	"encoding/binary"

	"fitcheck/fit/ftype"
)

type (
	// FieldDefinition describes one field of a record layout. Size is the
	// declared byte width and must be a positive multiple of the base
	// type's element width; larger multiples are fixed-size arrays.
	FieldDefinition struct {
		Number uint8     `json:"number"`
		Size   int       `json:"size"`
		Tag    ftype.Tag `json:"base_type"`
	}
	// DeveloperFieldDefinition carries a declared size but no base type;
	// the type is discovered through field description records and looked
	// up in the table's developer registry at data-record decode time.
	DeveloperFieldDefinition struct {
		Number             uint8 `json:"number"`
		Size               int   `json:"size"`
		DeveloperDataIndex uint8 `json:"developer_data_index"`
	}
	Layout struct {
		GlobalNumber    uint16                     `json:"global_number"`
		Architecture    uint8                      `json:"architecture"`
		Fields          []FieldDefinition          `json:"fields"`
		DeveloperFields []DeveloperFieldDefinition `json:"developer_fields"`
	}
)

const (
	ArchitectureLittleEndian = uint8(0)
	ArchitectureBigEndian    = uint8(1)
)

// GlobalNumberFieldDescription is the global message number of the records
// that register developer field types.
const GlobalNumberFieldDescription = uint16(206)

const (
	FieldNumberDeveloperDataIndex    = uint8(0)
	FieldNumberFieldDefinitionNumber = uint8(1)
	FieldNumberBaseTypeID            = uint8(2)
)

func (r Layout) ByteOrder() binary.ByteOrder {
	if r.Architecture == ArchitectureBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
