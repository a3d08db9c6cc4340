// Package fit stores the code to decode and verify FIT activity files.
package fit

import (
	"fitcheck/fit/fheader"
	"fitcheck/fit/frecord"
)

type (
	File struct {
		Header  fheader.Header   `json:"header"`
		Records []frecord.Record `json:"records"`
	}
)

// IsFITFile reports whether bs starts with a plausible FIT header,
// judged by the 4-byte signature alone.
func IsFITFile(bs []byte) bool {
	if len(bs) < fheader.SizeNoCRC {
		return false
	}
	return fheader.IsValidSignature(bs[fheader.SignatureOffset : fheader.SignatureOffset+4])
}
