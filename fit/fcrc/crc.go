// Package fcrc implements the 16-bit checksum that seals a FIT file.
// The checksum combines each byte into a running accumulator through two
// 4-bit lookups in a fixed 16-entry table.
package fcrc

type Engine struct {
	value uint16
}

var crcTable = [16]uint16{
	0x0000, 0xCC01, 0xD801, 0x1400,
	0xF001, 0x3C00, 0x2800, 0xE401,
	0xA001, 0x6C00, 0x7800, 0xB401,
	0x5000, 0x9C01, 0x8801, 0x4400,
}

func NewEngine() *Engine {
	return &Engine{}
}

func (r *Engine) Reset() {
	r.value = 0
}

// Update folds one byte into the accumulator, low nibble first.
func (r *Engine) Update(b byte) {
	tmp := crcTable[r.value&0x0F]
	r.value = (r.value >> 4) & 0x0FFF
	r.value = r.value ^ tmp ^ crcTable[b&0x0F]

	tmp = crcTable[r.value&0x0F]
	r.value = (r.value >> 4) & 0x0FFF
	r.value = r.value ^ tmp ^ crcTable[(b>>4)&0x0F]
}

func (r *Engine) UpdateBytes(bs []byte) {
	for _, b := range bs {
		r.Update(b)
	}
}

func (r *Engine) Value() uint16 {
	return r.value
}

func Checksum(bs []byte) uint16 {
	engine := NewEngine()
	engine.UpdateBytes(bs)
	return engine.Value()
}
