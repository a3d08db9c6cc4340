package ftype

type (
	Tag      uint8
	BaseType struct {
		Tag  Tag    `json:"tag"`
		Name string `json:"name"`
		// Size is the width of one element in bytes. A field whose declared
		// byte size is a larger multiple of Size decodes to an array.
		Size int `json:"size"`
	}
	// Value is one decoded element. Invalid is set when the element equals
	// the base type's reserved "not present" sentinel; it is data, not an
	// error, and the raw value is kept alongside.
	Value struct {
		Data    any  `json:"data"`
		Invalid bool `json:"invalid"`
	}
)

const (
	TagEnum    = Tag(0x00)
	TagSint8   = Tag(0x01)
	TagUint8   = Tag(0x02)
	TagSint16  = Tag(0x83)
	TagUint16  = Tag(0x84)
	TagSint32  = Tag(0x85)
	TagUint32  = Tag(0x86)
	TagString  = Tag(0x07)
	TagFloat32 = Tag(0x88)
	TagFloat64 = Tag(0x89)
	TagUint8z  = Tag(0x0A)
	TagUint16z = Tag(0x8B)
	TagUint32z = Tag(0x8C)
	TagByte    = Tag(0x0D)
	TagSint64  = Tag(0x8E)
	TagUint64  = Tag(0x8F)
	TagUint64z = Tag(0x90)
)

var baseTypes = map[Tag]BaseType{
	TagEnum:    {TagEnum, "enum", 1},
	TagSint8:   {TagSint8, "sint8", 1},
	TagUint8:   {TagUint8, "uint8", 1},
	TagSint16:  {TagSint16, "sint16", 2},
	TagUint16:  {TagUint16, "uint16", 2},
	TagSint32:  {TagSint32, "sint32", 4},
	TagUint32:  {TagUint32, "uint32", 4},
	TagString:  {TagString, "string", 1},
	TagFloat32: {TagFloat32, "float32", 4},
	TagFloat64: {TagFloat64, "float64", 8},
	TagUint8z:  {TagUint8z, "uint8z", 1},
	TagUint16z: {TagUint16z, "uint16z", 2},
	TagUint32z: {TagUint32z, "uint32z", 4},
	TagByte:    {TagByte, "byte", 1},
	TagSint64:  {TagSint64, "sint64", 8},
	TagUint64:  {TagUint64, "uint64", 8},
	TagUint64z: {TagUint64z, "uint64z", 8},
}

// Lookup returns the base type registered for tag,
// with ok set to false for tags outside the known set.
func Lookup(tag Tag) (BaseType, bool) {
	baseType, ok := baseTypes[tag]
	return baseType, ok
}
