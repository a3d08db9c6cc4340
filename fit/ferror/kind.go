package ferror

import (
	"errors"
)

type Kind string

const (
	KindNone                     = Kind("")
	KindInvalidHeader            = Kind("invalid_header")
	KindTruncatedFile            = Kind("truncated_file")
	KindUnknownMessageDefinition = Kind("unknown_message_definition")
	KindUnresolvedDeveloperField = Kind("unresolved_developer_field")
	KindMalformedField           = Kind("malformed_field")
	KindUnsupportedBaseType      = Kind("unsupported_base_type")
	KindChecksumMismatch         = Kind("checksum_mismatch")
	KindUnknown                  = Kind("unknown")
)

// KindOf classifies err by its underlying error kind,
// looking through any wrapping added on the way up.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	switch {
	case errors.As(err, &InvalidHeader{}):
		return KindInvalidHeader
	case errors.As(err, &TruncatedFile{}):
		return KindTruncatedFile
	case errors.As(err, &UnknownMessageDefinition{}):
		return KindUnknownMessageDefinition
	case errors.As(err, &UnresolvedDeveloperField{}):
		return KindUnresolvedDeveloperField
	case errors.As(err, &MalformedField{}):
		return KindMalformedField
	case errors.As(err, &UnsupportedBaseType{}):
		return KindUnsupportedBaseType
	case errors.As(err, &ChecksumMismatch{}):
		return KindChecksumMismatch
	}
	return KindUnknown
}

// OffsetOf returns the byte offset the underlying error kind was
// detected at, or -1 when err carries no offset.
func OffsetOf(err error) int {
	var (
		invalidHeader      InvalidHeader
		truncatedFile      TruncatedFile
		unknownDefinition  UnknownMessageDefinition
		unresolvedDevField UnresolvedDeveloperField
		malformedField     MalformedField
		unsupportedType    UnsupportedBaseType
		checksumMismatch   ChecksumMismatch
	)
	switch {
	case errors.As(err, &invalidHeader):
		return invalidHeader.Offset
	case errors.As(err, &truncatedFile):
		return truncatedFile.Offset
	case errors.As(err, &unknownDefinition):
		return unknownDefinition.Offset
	case errors.As(err, &unresolvedDevField):
		return unresolvedDevField.Offset
	case errors.As(err, &malformedField):
		return malformedField.Offset
	case errors.As(err, &unsupportedType):
		return unsupportedType.Offset
	case errors.As(err, &checksumMismatch):
		return checksumMismatch.Offset
	}
	return -1
}
