package frecord

import (
	"testing"

	"fitcheck/fit/fdef"
	"fitcheck/fit/ferror"
	"fitcheck/fit/ftype"
	"fitcheck/fit/lbytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, bs []byte) []Record {
	t.Helper()
	reader := lbytes.NewBytesReader(bs)
	table := fdef.NewTable()
	timeline := Timeline{}
	records := make([]Record, 0)
	for reader.Remaining() > 0 {
		record, err := DecodeOne(reader, table, &timeline)
		require.NoError(t, err)
		records = append(records, *record)
	}
	return records
}

func TestDecodeOne_Definition(t *testing.T) {
	bs := []byte{
		0x40,       // definition record, local type 0
		0x00,       // reserved
		0x00,       // little endian
		0x14, 0x00, // global message number 20
		0x02,             // field count
		253, 0x04, 0x86, // timestamp, 4 bytes, uint32
		0x03, 0x01, 0x02, // field 3, 1 byte, uint8
	}
	reader := lbytes.NewBytesReader(bs)
	table := fdef.NewTable()
	timeline := Timeline{}

	record, err := DecodeOne(reader, table, &timeline)
	require.NoError(t, err)
	assert.Equal(t, KindDefinition, record.Kind)
	assert.Equal(t, uint8(0), record.LocalType)
	assert.Equal(t, 0, record.Offset)
	assert.Equal(t, len(bs), record.Size)
	require.NotNil(t, record.Layout)
	assert.Equal(t, uint16(20), record.Layout.GlobalNumber)
	assert.Len(t, record.Layout.Fields, 2)

	layout, ok := table.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, fdef.FieldDefinition{Number: 253, Size: 4, Tag: ftype.TagUint32}, layout.Fields[0])
}

func TestDecodeOne_Data(t *testing.T) {
	bs := []byte{
		0x40,
		0x00,
		0x00,
		0x14, 0x00,
		0x02,
		253, 0x04, 0x86,
		0x03, 0x01, 0x02,

		0x00,                   // data record, local type 0
		0x10, 0x00, 0x00, 0x00, // timestamp 16
		0x78, // field 3 = 120

		0x00,
		0x20, 0x00, 0x00, 0x00, // timestamp 32
		0xFF, // field 3 invalid
	}
	records := decodeAll(t, bs)
	require.Len(t, records, 3)

	first := records[1]
	assert.Equal(t, KindData, first.Kind)
	assert.Equal(t, 12, first.Offset)
	assert.Equal(t, 6, first.Size)
	require.Len(t, first.Fields, 2)
	assert.Equal(t, ftype.Value{Data: uint32(16), Invalid: false}, first.Fields[0].Values[0])
	assert.Equal(t, ftype.Value{Data: uint8(120), Invalid: false}, first.Fields[1].Values[0])
	assert.True(t, first.HasTimestamp)
	assert.Equal(t, uint32(16), first.Timestamp)

	second := records[2]
	assert.True(t, second.Fields[1].Values[0].Invalid)
	assert.Equal(t, uint32(32), second.Timestamp)
}

func TestDecodeOne_BigEndianData(t *testing.T) {
	bs := []byte{
		0x40,
		0x00,
		0x01,       // big endian
		0x00, 0x14, // global message number 20
		0x01,
		0x05, 0x02, 0x84, // field 5, 2 bytes, uint16

		0x00,
		0x12, 0x34,
	}
	records := decodeAll(t, bs)
	require.Len(t, records, 2)
	assert.Equal(t, ftype.Value{Data: uint16(0x1234), Invalid: false}, records[1].Fields[0].Values[0])
}

func TestDecodeOne_Redefinition(t *testing.T) {
	bs := []byte{
		0x40,
		0x00, 0x00,
		0x14, 0x00,
		0x01,
		0x03, 0x01, 0x02,

		0x00,
		0x78,

		0x40, // redefine local type 0 with a wider field
		0x00, 0x00,
		0x15, 0x00,
		0x01,
		0x04, 0x02, 0x84,

		0x00,
		0x34, 0x12,
	}
	records := decodeAll(t, bs)
	require.Len(t, records, 4)
	assert.Equal(t, ftype.Value{Data: uint8(120), Invalid: false}, records[1].Fields[0].Values[0])
	assert.Equal(t, ftype.Value{Data: uint16(0x1234), Invalid: false}, records[3].Fields[0].Values[0])
}

func TestDecodeOne_UnknownLocalType(t *testing.T) {
	reader := lbytes.NewBytesReader([]byte{0x05})
	_, err := DecodeOne(reader, fdef.NewTable(), &Timeline{})
	require.Error(t, err)
	assert.Equal(t, ferror.KindUnknownMessageDefinition, ferror.KindOf(err))
	assert.Equal(t, 0, ferror.OffsetOf(err))
}

func TestDecodeOne_Truncated(t *testing.T) {
	tests := map[string][]byte{
		"empty":                  {},
		"definition cut short":   {0x40, 0x00, 0x00, 0x14},
		"field triple cut short": {0x40, 0x00, 0x00, 0x14, 0x00, 0x02, 253, 0x04},
	}
	for name, bs := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeOne(lbytes.NewBytesReader(bs), fdef.NewTable(), &Timeline{})
			require.Error(t, err)
			assert.Equal(t, ferror.KindTruncatedFile, ferror.KindOf(err))
		})
	}
}

func TestDecodeOne_DataTruncated(t *testing.T) {
	bs := []byte{
		0x40,
		0x00, 0x00,
		0x14, 0x00,
		0x01,
		253, 0x04, 0x86,

		0x00,
		0x10, 0x00, // only 2 of 4 timestamp bytes
	}
	reader := lbytes.NewBytesReader(bs)
	table := fdef.NewTable()
	timeline := Timeline{}
	_, err := DecodeOne(reader, table, &timeline)
	require.NoError(t, err)
	_, err = DecodeOne(reader, table, &timeline)
	require.Error(t, err)
	assert.Equal(t, ferror.KindTruncatedFile, ferror.KindOf(err))
	assert.Equal(t, 10, ferror.OffsetOf(err))
}

func TestDecodeOne_UnsupportedBaseType(t *testing.T) {
	bs := []byte{
		0x40,
		0x00, 0x00,
		0x14, 0x00,
		0x01,
		0x03, 0x01, 0x1F, // tag outside the known set
	}
	_, err := DecodeOne(lbytes.NewBytesReader(bs), fdef.NewTable(), &Timeline{})
	require.Error(t, err)
	assert.Equal(t, ferror.KindUnsupportedBaseType, ferror.KindOf(err))
}

func TestDecodeOne_SizeNotMultipleOfWidth(t *testing.T) {
	bs := []byte{
		0x40,
		0x00, 0x00,
		0x14, 0x00,
		0x01,
		0x03, 0x03, 0x84, // 3 bytes for uint16
	}
	_, err := DecodeOne(lbytes.NewBytesReader(bs), fdef.NewTable(), &Timeline{})
	require.Error(t, err)
	assert.Equal(t, ferror.KindMalformedField, ferror.KindOf(err))
}

func TestDecodeOne_BadArchitecture(t *testing.T) {
	bs := []byte{0x40, 0x00, 0x02, 0x14, 0x00, 0x00}
	_, err := DecodeOne(lbytes.NewBytesReader(bs), fdef.NewTable(), &Timeline{})
	require.Error(t, err)
	assert.Equal(t, ferror.KindMalformedField, ferror.KindOf(err))
}

func TestDecodeOne_CompressedTimestamp(t *testing.T) {
	bs := []byte{
		// local type 0: full-timestamp records
		0x40,
		0x00, 0x00,
		0x14, 0x00,
		0x02,
		253, 0x04, 0x86,
		0x03, 0x01, 0x02,

		// local type 1: records without a timestamp field
		0x41,
		0x00, 0x00,
		0x14, 0x00,
		0x01,
		0x03, 0x01, 0x02,

		0x00, // full timestamp seeds the reference
		0x3C, 0x00, 0x00, 0x00, // 60; low 5 bits are 28
		0x64,

		// compressed, local type 1, offset 29 >= 28: same period -> 61
		0x80 | 0x20 | 0x1D,
		0x65,

		// compressed, offset 2 < 29: next period -> 64 + 2 = 66
		0x80 | 0x20 | 0x02,
		0x66,
	}
	records := decodeAll(t, bs)
	require.Len(t, records, 5)

	assert.Equal(t, uint32(60), records[2].Timestamp)

	compressed1 := records[3]
	assert.True(t, compressed1.HasTimestamp)
	assert.Equal(t, uint8(1), compressed1.LocalType)
	assert.Equal(t, uint32(61), compressed1.Timestamp)
	assert.Equal(t, 2, compressed1.Size)
	require.Len(t, compressed1.Fields, 1)

	compressed2 := records[4]
	assert.Equal(t, uint32(66), compressed2.Timestamp)
	assert.Greater(t, compressed2.Timestamp, compressed1.Timestamp)
}

func TestDecodeOne_DeveloperFields(t *testing.T) {
	bs := []byte{
		// definition for field description records (global 206)
		0x41,
		0x00, 0x00,
		0xCE, 0x00,
		0x03,
		0x00, 0x01, 0x02, // developer data index
		0x01, 0x01, 0x02, // field definition number
		0x02, 0x01, 0x02, // base type id

		// field description: index 0, field 5, uint16
		0x01,
		0x00,
		0x05,
		0x84,

		// definition with a developer field trailer
		0x60 | 0x02,
		0x00, 0x00,
		0x14, 0x00,
		0x01,
		253, 0x04, 0x86,
		0x01,             // developer field count
		0x05, 0x02, 0x00, // field 5, 2 bytes, developer data index 0

		// data record with the developer field
		0x02,
		0x10, 0x00, 0x00, 0x00,
		0x2A, 0x00, // developer value 42
	}
	records := decodeAll(t, bs)
	require.Len(t, records, 4)

	data := records[3]
	require.Len(t, data.DeveloperFields, 1)
	developerField := data.DeveloperFields[0]
	assert.Equal(t, uint8(5), developerField.Number)
	assert.Equal(t, ftype.TagUint16, developerField.Tag)
	assert.Equal(t, ftype.Value{Data: uint16(42), Invalid: false}, developerField.Values[0])
}

func TestDecodeOne_UnresolvedDeveloperField(t *testing.T) {
	bs := []byte{
		0x60 | 0x02,
		0x00, 0x00,
		0x14, 0x00,
		0x01,
		253, 0x04, 0x86,
		0x01,
		0x05, 0x02, 0x00,

		0x02,
		0x10, 0x00, 0x00, 0x00,
		0x2A, 0x00,
	}
	reader := lbytes.NewBytesReader(bs)
	table := fdef.NewTable()
	timeline := Timeline{}
	_, err := DecodeOne(reader, table, &timeline)
	require.NoError(t, err)
	_, err = DecodeOne(reader, table, &timeline)
	require.Error(t, err)
	assert.Equal(t, ferror.KindUnresolvedDeveloperField, ferror.KindOf(err))
}

func TestTimeline_Derive(t *testing.T) {
	timeline := Timeline{}
	timeline.Observe(1000) // low 5 bits: 1000 & 31 = 8

	assert.Equal(t, uint32(1012), timeline.Derive(20)) // 20 >= 8, same period
	assert.Equal(t, uint32(1013), timeline.Derive(21))
	// 3 < 21: one rollover period forward, never backward
	assert.Equal(t, uint32(1027), timeline.Derive(3))
	assert.True(t, timeline.Seeded())
	assert.Equal(t, uint32(1027), timeline.Reference())

	timeline.Reset()
	assert.False(t, timeline.Seeded())
	assert.Equal(t, uint32(0), timeline.Reference())
}
