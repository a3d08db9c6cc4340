// Package fdef holds the mutable per-verification-run mapping from local
// message types to the record layouts currently in force. A definition
// record replaces whatever layout its local type had before; no history
// is kept, matching the format's mid-stream redefinition semantics.
package fdef

import (
	"fitcheck/ds"
	"fitcheck/fit/ftype"
)

type Table struct {
	layouts map[uint8]Layout
	// developer field registry: developer data index -> field number -> base type
	developerFields map[uint8]map[uint8]ftype.Tag
}

func NewTable() *Table {
	return &Table{
		layouts:         map[uint8]Layout{},
		developerFields: map[uint8]map[uint8]ftype.Tag{},
	}
}

// Define installs layout as the active definition for localType,
// replacing any earlier one. The field slices are copied so that later
// mutation of the caller's layout cannot leak into the table.
func (r *Table) Define(localType uint8, layout Layout) {
	layout.Fields = ds.ShallowCopy(layout.Fields)
	layout.DeveloperFields = ds.ShallowCopy(layout.DeveloperFields)
	r.layouts[localType] = layout
}

func (r *Table) Lookup(localType uint8) (Layout, bool) {
	layout, ok := r.layouts[localType]
	return layout, ok
}

func (r *Table) RegisterDeveloperField(developerDataIndex uint8, fieldNumber uint8, tag ftype.Tag) {
	fields, ok := r.developerFields[developerDataIndex]
	if !ok {
		fields = map[uint8]ftype.Tag{}
		r.developerFields[developerDataIndex] = fields
	}
	fields[fieldNumber] = tag
}

func (r *Table) ResolveDeveloperField(developerDataIndex uint8, fieldNumber uint8) (ftype.Tag, bool) {
	fields, ok := r.developerFields[developerDataIndex]
	if !ok {
		return 0, false
	}
	tag, ok := fields[fieldNumber]
	return tag, ok
}
