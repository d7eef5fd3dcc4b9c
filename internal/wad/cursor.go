package wad

import (
	"bytes"
	"encoding/binary"
)

// nameSize is the fixed width of every lump and texture name on disk,
// right-padded with NULs.
const nameSize = 8

// cursor is a bounds-checked little-endian reader over a byte slice. Every
// read advances the position by the primitive's width; a read past the end
// fails with TruncatedDataError and leaves the position unchanged.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) require(n int) error {
	if c.pos+n > len(c.data) {
		return &TruncatedDataError{Offset: c.pos, Len: n}
	}
	return nil
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

// seek moves the read position to an absolute offset. Seeking beyond the end
// is legal; the next read reports the truncation.
func (c *cursor) seek(offset int) {
	c.pos = offset
}

func (c *cursor) readUint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) readInt16() (int16, error) {
	v, err := c.readUint16()
	return int16(v), err
}

func (c *cursor) readUint16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) readInt32() (int32, error) {
	v, err := c.readUint32()
	return int32(v), err
}

func (c *cursor) readUint32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// readName reads an 8-byte NUL-padded lump name. Bytes after the first NUL
// are dropped; non-ASCII bytes before it are preserved as-is.
func (c *cursor) readName() (string, error) {
	b, err := c.readBytes(nameSize)
	if err != nil {
		return "", err
	}
	return trimName(b), nil
}

// trimName cuts a fixed-width name field at the first NUL.
func trimName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
