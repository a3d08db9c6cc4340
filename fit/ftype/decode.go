package ftype

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"fitcheck/ds"
	"github.com/samber/lo"
)

// Decode turns the raw bytes of one field into its decoded elements.
// Scalar fields yield a single Value; fields whose byte size is a larger
// multiple of the element width yield one Value per element. Strings are
// always a single Value regardless of declared size.
func Decode(tag Tag, raw []byte, order binary.ByteOrder) ([]Value, error) {
	baseType, ok := Lookup(tag)
	if !ok {
		err := fmt.Errorf(`ftype.Decode got unknown base type tag "0x%02X"`, uint8(tag))
		return nil, err
	}
	if len(raw) == 0 || len(raw)%baseType.Size != 0 {
		err := fmt.Errorf(
			`ftype.Decode got %d raw bytes for type "%s"; expected a positive multiple of %d`,
			len(raw), baseType.Name, baseType.Size,
		)
		return nil, err
	}

	if tag == TagString {
		str := strings.TrimRight(string(raw), "\x00")
		return []Value{{Data: str, Invalid: len(str) == 0}}, nil
	}

	chunks := ds.MakeChunks(raw, baseType.Size)
	values := lo.Map(
		chunks,
		func(chunk []byte, _ int) Value {
			return decodeElement(tag, chunk, order)
		},
	)
	return values, nil
}

func decodeElement(tag Tag, bs []byte, order binary.ByteOrder) Value {
	switch tag {
	case TagEnum, TagUint8, TagByte:
		return Value{Data: bs[0], Invalid: bs[0] == 0xFF}
	case TagSint8:
		return Value{Data: int8(bs[0]), Invalid: int8(bs[0]) == 0x7F}
	case TagUint8z:
		return Value{Data: bs[0], Invalid: bs[0] == 0x00}
	case TagSint16:
		v := int16(order.Uint16(bs))
		return Value{Data: v, Invalid: v == 0x7FFF}
	case TagUint16:
		v := order.Uint16(bs)
		return Value{Data: v, Invalid: v == 0xFFFF}
	case TagUint16z:
		v := order.Uint16(bs)
		return Value{Data: v, Invalid: v == 0}
	case TagSint32:
		v := int32(order.Uint32(bs))
		return Value{Data: v, Invalid: v == 0x7FFFFFFF}
	case TagUint32:
		v := order.Uint32(bs)
		return Value{Data: v, Invalid: v == 0xFFFFFFFF}
	case TagUint32z:
		v := order.Uint32(bs)
		return Value{Data: v, Invalid: v == 0}
	case TagFloat32:
		bits := order.Uint32(bs)
		return Value{Data: math.Float32frombits(bits), Invalid: bits == 0xFFFFFFFF}
	case TagFloat64:
		bits := order.Uint64(bs)
		return Value{Data: math.Float64frombits(bits), Invalid: bits == 0xFFFFFFFFFFFFFFFF}
	case TagSint64:
		v := int64(order.Uint64(bs))
		return Value{Data: v, Invalid: v == 0x7FFFFFFFFFFFFFFF}
	case TagUint64:
		v := order.Uint64(bs)
		return Value{Data: v, Invalid: v == 0xFFFFFFFFFFFFFFFF}
	case TagUint64z:
		v := order.Uint64(bs)
		return Value{Data: v, Invalid: v == 0}
	}
	// tags are validated by Decode before dispatching here
	panic(ds.ErrUnreachableCode{Caller: "ftype.decodeElement"})
}
