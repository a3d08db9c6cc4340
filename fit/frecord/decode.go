// Package frecord decodes one record at a time: definition records that
// install layouts into the definition table, and data records decoded
// against the layout their local message type currently maps to.
package frecord

import (
	"encoding/binary"
	"fmt"

	"fitcheck/fit/fdef"
	"fitcheck/fit/ferror"
	"fitcheck/fit/ftype"
	"fitcheck/fit/lbytes"
	"github.com/pkg/errors"
)

// DecodeOne reads the record starting at the reader's current position.
// Definition records are installed into table as a side effect; data
// records consult table for their layout and timeline for compressed
// timestamps. No other state survives between calls.
func DecodeOne(reader *lbytes.Reader, table *fdef.Table, timeline *Timeline) (*Record, error) {
	start := reader.Offset()
	header, err := readUint8(reader)
	if err != nil {
		return nil, errors.Wrap(err, "frecord.DecodeOne error: read record header")
	}

	if header&headerCompressedFlag != 0 {
		localType := (header >> compressedLocalTypeShift) & compressedLocalTypeMask
		timeOffset := header & compressedOffsetMask
		return decodeData(reader, table, timeline, start, localType, &timeOffset)
	}
	if header&headerDefinitionFlag != 0 {
		hasDeveloperFields := header&headerDeveloperFlag != 0
		return decodeDefinition(reader, table, start, header&headerLocalTypeMask, hasDeveloperFields)
	}
	return decodeData(reader, table, timeline, start, header&headerLocalTypeMask, nil)
}

func decodeDefinition(
	reader *lbytes.Reader,
	table *fdef.Table,
	start int,
	localType uint8,
	hasDeveloperFields bool,
) (*Record, error) {
	// reserved byte, ignored
	if _, err := readUint8(reader); err != nil {
		return nil, errors.Wrap(err, "frecord.decodeDefinition error: read reserved byte")
	}
	architecture, err := readUint8(reader)
	if err != nil {
		return nil, errors.Wrap(err, "frecord.decodeDefinition error: read architecture")
	}
	if architecture != fdef.ArchitectureLittleEndian &&
		architecture != fdef.ArchitectureBigEndian {
		return nil, ferror.MalformedField{
			Offset: reader.Offset() - 1,
			Reason: fmt.Sprintf("unrecognized architecture byte 0x%02X", architecture),
		}
	}

	layout := fdef.Layout{Architecture: architecture}
	layout.GlobalNumber, err = readUint16(reader, layout.ByteOrder())
	if err != nil {
		return nil, errors.Wrap(err, "frecord.decodeDefinition error: read global message number")
	}

	numFields, err := readUint8(reader)
	if err != nil {
		return nil, errors.Wrap(err, "frecord.decodeDefinition error: read field count")
	}
	layout.Fields = make([]fdef.FieldDefinition, 0, numFields)
	for i := 0; i < int(numFields); i++ {
		field, err := decodeFieldDefinition(reader)
		if err != nil {
			return nil, errors.Wrap(err, "frecord.decodeDefinition error")
		}
		layout.Fields = append(layout.Fields, *field)
	}

	if hasDeveloperFields {
		numDeveloperFields, err := readUint8(reader)
		if err != nil {
			return nil, errors.Wrap(err, "frecord.decodeDefinition error: read developer field count")
		}
		layout.DeveloperFields = make([]fdef.DeveloperFieldDefinition, 0, numDeveloperFields)
		for i := 0; i < int(numDeveloperFields); i++ {
			field, err := decodeDeveloperFieldDefinition(reader)
			if err != nil {
				return nil, errors.Wrap(err, "frecord.decodeDefinition error")
			}
			layout.DeveloperFields = append(layout.DeveloperFields, *field)
		}
	}

	table.Define(localType, layout)

	record := Record{
		Kind:      KindDefinition,
		LocalType: localType,
		Offset:    start,
		Size:      reader.Offset() - start,
		Layout:    &layout,
	}
	return &record, nil
}

func decodeFieldDefinition(reader *lbytes.Reader) (*fdef.FieldDefinition, error) {
	triple, err := readBytes(reader, 3)
	if err != nil {
		return nil, errors.Wrap(err, "frecord.decodeFieldDefinition error")
	}
	number, size, tag := triple[0], int(triple[1]), ftype.Tag(triple[2])

	baseType, ok := ftype.Lookup(tag)
	if !ok {
		return nil, ferror.UnsupportedBaseType{
			Offset: reader.Offset() - 1,
			Tag:    uint8(tag),
		}
	}
	if size == 0 || size%baseType.Size != 0 {
		return nil, ferror.MalformedField{
			Offset: reader.Offset() - 2,
			Reason: fmt.Sprintf(
				`field %d declares %d bytes for type "%s"; expected a positive multiple of %d`,
				number, size, baseType.Name, baseType.Size,
			),
		}
	}

	return &fdef.FieldDefinition{Number: number, Size: size, Tag: tag}, nil
}

func decodeDeveloperFieldDefinition(reader *lbytes.Reader) (*fdef.DeveloperFieldDefinition, error) {
	triple, err := readBytes(reader, 3)
	if err != nil {
		return nil, errors.Wrap(err, "frecord.decodeDeveloperFieldDefinition error")
	}
	number, size, developerDataIndex := triple[0], int(triple[1]), triple[2]
	if size == 0 {
		return nil, ferror.MalformedField{
			Offset: reader.Offset() - 2,
			Reason: fmt.Sprintf("developer field %d declares zero bytes", number),
		}
	}

	field := fdef.DeveloperFieldDefinition{
		Number:             number,
		Size:               size,
		DeveloperDataIndex: developerDataIndex,
	}
	return &field, nil
}

func decodeData(
	reader *lbytes.Reader,
	table *fdef.Table,
	timeline *Timeline,
	start int,
	localType uint8,
	compressedTimeOffset *uint8,
) (*Record, error) {
	layout, ok := table.Lookup(localType)
	if !ok {
		return nil, ferror.UnknownMessageDefinition{
			Offset:    start,
			LocalType: localType,
		}
	}
	order := layout.ByteOrder()
	record := Record{
		Kind:      KindData,
		LocalType: localType,
		Offset:    start,
		Fields:    make([]FieldValue, 0, len(layout.Fields)),
	}

	for _, field := range layout.Fields {
		raw, err := readBytes(reader, field.Size)
		if err != nil {
			return nil, errors.Wrapf(err, "frecord.decodeData error: read field %d", field.Number)
		}
		values, err := ftype.Decode(field.Tag, raw, order)
		if err != nil {
			err := errors.Wrapf(err, "frecord.decodeData error: decode field %d", field.Number)
			return nil, err
		}
		record.Fields = append(record.Fields, FieldValue{
			Number: field.Number,
			Tag:    field.Tag,
			Raw:    raw,
			Values: values,
		})
		if field.Number == TimestampFieldNumber && field.Tag == ftype.TagUint32 {
			if timestamp, ok := values[0].Data.(uint32); ok && !values[0].Invalid {
				timeline.Observe(timestamp)
				record.Timestamp = timestamp
				record.HasTimestamp = true
			}
		}
	}

	for _, field := range layout.DeveloperFields {
		fieldValue, err := decodeDeveloperField(reader, table, field, order)
		if err != nil {
			return nil, errors.Wrap(err, "frecord.decodeData error")
		}
		record.DeveloperFields = append(record.DeveloperFields, *fieldValue)
	}

	if compressedTimeOffset != nil {
		record.Timestamp = timeline.Derive(*compressedTimeOffset)
		record.HasTimestamp = true
	}

	if layout.GlobalNumber == fdef.GlobalNumberFieldDescription {
		registerFieldDescription(table, record)
	}

	record.Size = reader.Offset() - start
	return &record, nil
}

func decodeDeveloperField(
	reader *lbytes.Reader,
	table *fdef.Table,
	field fdef.DeveloperFieldDefinition,
	order binary.ByteOrder,
) (*FieldValue, error) {
	tag, ok := table.ResolveDeveloperField(field.DeveloperDataIndex, field.Number)
	if !ok {
		return nil, ferror.UnresolvedDeveloperField{
			Offset:             reader.Offset(),
			DeveloperDataIndex: field.DeveloperDataIndex,
			FieldNumber:        field.Number,
		}
	}
	baseType, ok := ftype.Lookup(tag)
	if !ok {
		return nil, ferror.UnsupportedBaseType{
			Offset: reader.Offset(),
			Tag:    uint8(tag),
		}
	}
	if field.Size%baseType.Size != 0 {
		return nil, ferror.MalformedField{
			Offset: reader.Offset(),
			Reason: fmt.Sprintf(
				`developer field %d declares %d bytes for type "%s"; expected a multiple of %d`,
				field.Number, field.Size, baseType.Name, baseType.Size,
			),
		}
	}

	raw, err := readBytes(reader, field.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "frecord.decodeDeveloperField error: read field %d", field.Number)
	}
	values, err := ftype.Decode(tag, raw, order)
	if err != nil {
		err := errors.Wrapf(err, "frecord.decodeDeveloperField error: decode field %d", field.Number)
		return nil, err
	}

	fieldValue := FieldValue{
		Number: field.Number,
		Tag:    tag,
		Raw:    raw,
		Values: values,
	}
	return &fieldValue, nil
}

// registerFieldDescription feeds a decoded field description record into
// the table's developer registry. Records missing any of the three
// required fields are skipped; the gap surfaces later as an
// UnresolvedDeveloperField if a data record actually needs the mapping.
func registerFieldDescription(table *fdef.Table, record Record) {
	developerDataIndex, ok1 := uint8FieldValue(record, fdef.FieldNumberDeveloperDataIndex)
	fieldNumber, ok2 := uint8FieldValue(record, fdef.FieldNumberFieldDefinitionNumber)
	baseTypeID, ok3 := uint8FieldValue(record, fdef.FieldNumberBaseTypeID)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	table.RegisterDeveloperField(developerDataIndex, fieldNumber, ftype.Tag(baseTypeID))
}

func uint8FieldValue(record Record, number uint8) (uint8, bool) {
	for _, field := range record.Fields {
		if field.Number != number || len(field.Values) != 1 || field.Values[0].Invalid {
			continue
		}
		value, ok := field.Values[0].Data.(uint8)
		return value, ok
	}
	return 0, false
}
