package fit

import (
	"fitcheck/fit/frecord"
	"github.com/iancoleman/orderedmap"
	"github.com/samber/lo"
)

// ToOrderedMaps renders a decoded file as one ordered map per record, so
// that marshalling keeps the file's record and field order intact.
func ToOrderedMaps(file File) []*orderedmap.OrderedMap {
	return lo.Map(
		file.Records,
		func(record frecord.Record, _ int) *orderedmap.OrderedMap {
			return recordToOrderedMap(record)
		},
	)
}

func recordToOrderedMap(record frecord.Record) *orderedmap.OrderedMap {
	lhm := orderedmap.New()
	lhm.Set("kind", string(record.Kind))
	lhm.Set("local_type", record.LocalType)
	lhm.Set("offset", record.Offset)

	if record.Kind == frecord.KindDefinition && record.Layout != nil {
		lhm.Set("global_number", record.Layout.GlobalNumber)
		lhm.Set("architecture", record.Layout.Architecture)
		lhm.Set("fields", record.Layout.Fields)
		if len(record.Layout.DeveloperFields) > 0 {
			lhm.Set("developer_fields", record.Layout.DeveloperFields)
		}
		return lhm
	}

	lhm.Set("fields", fieldValuesToOrderedMaps(record.Fields))
	if len(record.DeveloperFields) > 0 {
		lhm.Set("developer_fields", fieldValuesToOrderedMaps(record.DeveloperFields))
	}
	if record.HasTimestamp {
		lhm.Set("timestamp", record.Timestamp)
	}
	return lhm
}

func fieldValuesToOrderedMaps(fields []frecord.FieldValue) []*orderedmap.OrderedMap {
	return lo.Map(
		fields,
		func(field frecord.FieldValue, _ int) *orderedmap.OrderedMap {
			lhm := orderedmap.New()
			lhm.Set("number", field.Number)
			lhm.Set("base_type", uint8(field.Tag))
			if len(field.Values) == 1 {
				lhm.Set("value", field.Values[0].Data)
				lhm.Set("invalid", field.Values[0].Invalid)
				return lhm
			}
			lhm.Set("values", field.Values)
			return lhm
		},
	)
}
