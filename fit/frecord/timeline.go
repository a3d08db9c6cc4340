package frecord

// Timeline holds the running timestamp reference that
// compressed-timestamp records derive their absolute timestamps from.
// It belongs to one verification run and is seeded by every full
// timestamp seen in file order.
type Timeline struct {
	reference uint32
	seeded    bool
}

func (r *Timeline) Reset() {
	r.reference = 0
	r.seeded = false
}

func (r *Timeline) Seeded() bool {
	return r.seeded
}

func (r *Timeline) Reference() uint32 {
	return r.reference
}

// Observe resets the reference from a full absolute timestamp.
func (r *Timeline) Observe(timestamp uint32) {
	r.reference = timestamp
	r.seeded = true
}

// Derive turns a 5-bit compressed time offset into an absolute timestamp:
// the offset replaces the low bits of the reference, and one rollover
// period is added whenever the offset is numerically below them, so time
// never runs backward. The derived value becomes the new reference.
func (r *Timeline) Derive(offset uint8) uint32 {
	delta := uint32(offset & compressedOffsetMask)
	timestamp := (r.reference &^ uint32(compressedOffsetMask)) | delta
	if delta < r.reference&uint32(compressedOffsetMask) {
		timestamp += timestampRollover
	}
	r.reference = timestamp
	r.seeded = true
	return timestamp
}
