package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

// Offset returns the number of bytes consumed from the start of the buffer.
func (b *Reader) Offset() int {
	return int(b.Size()) - b.Len()
}

// Remaining returns the number of unread bytes left in the buffer.
func (b *Reader) Remaining() int {
	return b.Len()
}

func (b *Reader) ReadUint8() (uint8, error) {
	bs := make([]byte, 1)
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadUint16(order binary.ByteOrder) (uint16, error) {
	bs := make([]byte, 2)
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return 0, err
	}
	return order.Uint16(bs), nil
}

func (b *Reader) ReadUint32(order binary.ByteOrder) (uint32, error) {
	bs := make([]byte, 4)
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return 0, err
	}
	return order.Uint32(bs), nil
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// add return early to avoid EOF error
	// when reader's pointer reach end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (b *Reader) ReadString(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(bs), "\x00"), nil
}
