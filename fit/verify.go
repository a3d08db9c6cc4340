package fit

import (
	"encoding/binary"
	"fmt"

	"fitcheck/fit/fcrc"
	"fitcheck/fit/fdef"
	"fitcheck/fit/ferror"
	"fitcheck/fit/fheader"
	"fitcheck/fit/frecord"
	"fitcheck/fit/lbytes"
)

type (
	Outcome string
	Result  struct {
		Outcome           Outcome     `json:"outcome"`
		DefinitionRecords int         `json:"definition_records"`
		DataRecords       int         `json:"data_records"`
		BytesConsumed     int         `json:"bytes_consumed"`
		ComputedChecksum  uint16      `json:"computed_checksum"`
		StoredChecksum    uint16      `json:"stored_checksum"`
		ErrKind           ferror.Kind `json:"error_kind,omitempty"`
		ErrOffset         int         `json:"error_offset,omitempty"`
		Err               error       `json:"-"`
	}
)

const (
	OutcomePassed = Outcome("passed")
	OutcomeFailed = Outcome("failed")
)

// Verify runs one pass over bs: header, every record up to the declared
// data length, then the trailing checksum. The first violation halts the
// pass; no bytes after it are decoded.
func Verify(bs []byte) Result {
	_, result := run(bs)
	return result
}

// ToStructuredFile verifies bs and returns the decoded header and
// records. The records of a failing file are withheld, since offsets past
// the first violation are unreliable.
func ToStructuredFile(bs []byte) (*File, error) {
	file, result := run(bs)
	if result.Outcome == OutcomeFailed {
		return nil, result.Err
	}
	return file, nil
}

func run(bs []byte) (*File, Result) {
	result := Result{Outcome: OutcomeFailed}
	fail := func(err error) (*File, Result) {
		result.Outcome = OutcomeFailed
		result.Err = err
		result.ErrKind = ferror.KindOf(err)
		result.ErrOffset = ferror.OffsetOf(err)
		return nil, result
	}

	reader := lbytes.NewBytesReader(bs)
	header, err := fheader.Decode(reader)
	if err != nil {
		return fail(err)
	}
	if header.Size == fheader.SizeWithCRC && header.CRC != 0 {
		computed := fcrc.Checksum(bs[:fheader.CRCRegionSize])
		if computed != header.CRC {
			return fail(ferror.InvalidHeader{
				Offset: fheader.CRCRegionSize,
				Reason: fmt.Sprintf(
					"header checksum mismatch: computed 0x%04X; stored 0x%04X",
					computed, header.CRC,
				),
			})
		}
	}

	file := File{Header: *header}
	table := fdef.NewTable()
	engine := fcrc.NewEngine()
	timeline := frecord.Timeline{}
	cursor := header.Size
	remaining := header.DataLength

	for remaining > 0 {
		record, err := frecord.DecodeOne(reader, table, &timeline)
		if err != nil {
			return fail(err)
		}
		if record.Size > remaining {
			// the declared data length is authoritative
			return fail(ferror.MalformedField{
				Offset: record.Offset,
				Reason: fmt.Sprintf(
					"record of %d bytes overruns the declared data length by %d bytes",
					record.Size, record.Size-remaining,
				),
			})
		}
		engine.UpdateBytes(bs[cursor : cursor+record.Size])
		cursor += record.Size
		remaining -= record.Size
		result.BytesConsumed += record.Size
		result.ComputedChecksum = engine.Value()
		switch record.Kind {
		case frecord.KindDefinition:
			result.DefinitionRecords++
		case frecord.KindData:
			result.DataRecords++
		}
		file.Records = append(file.Records, *record)
	}

	if reader.Remaining() < 2 {
		return fail(ferror.TruncatedFile{
			Offset: cursor,
			Need:   2,
			Have:   reader.Remaining(),
		})
	}
	stored, err := reader.ReadUint16(binary.LittleEndian)
	if err != nil {
		return fail(ferror.TruncatedFile{Offset: cursor, Need: 2, Have: 0})
	}
	result.StoredChecksum = stored
	result.ComputedChecksum = engine.Value()
	if stored != engine.Value() {
		return fail(ferror.ChecksumMismatch{
			Offset:   cursor,
			Computed: engine.Value(),
			Stored:   stored,
		})
	}

	result.Outcome = OutcomePassed
	return &file, result
}
