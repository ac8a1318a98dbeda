package interop

import (
	"encoding/binary"
	"math"
)

// ByteBuffer implements BufferLibrary over a byte slice obtained from the
// receiver. View reports the bytes, whether they may be written, and
// whether the receiver has buffer elements at all. The slice is accessed
// in place without synchronization.
type ByteBuffer struct {
	View func(r any) (data []byte, writable bool, ok bool)
}

func (b ByteBuffer) HasBufferElements(r any) bool {
	_, _, ok := b.View(r)
	return ok
}

func (b ByteBuffer) IsBufferWritable(r any) (bool, error) {
	_, w, ok := b.View(r)
	if !ok {
		return false, Unsupported()
	}
	return w, nil
}

func (b ByteBuffer) GetBufferSize(r any) (int64, error) {
	data, _, ok := b.View(r)
	if !ok {
		return 0, Unsupported()
	}
	return int64(len(data)), nil
}

// span returns the width bytes at offset, validating writability before
// bounds.
func (b ByteBuffer) span(r any, offset, width int64, write bool) ([]byte, error) {
	data, w, ok := b.View(r)
	if !ok {
		return nil, Unsupported()
	}
	if write && !w {
		return nil, Unsupported()
	}
	if offset < 0 || offset > int64(len(data))-width {
		return nil, InvalidBufferOffset(offset, width)
	}
	return data[offset : offset+width], nil
}

func (b ByteBuffer) ReadBufferByte(r any, offset int64) (int8, error) {
	s, err := b.span(r, offset, 1, false)
	if err != nil {
		return 0, err
	}
	return int8(s[0]), nil
}

func (b ByteBuffer) WriteBufferByte(r any, offset int64, value int8) error {
	s, err := b.span(r, offset, 1, true)
	if err != nil {
		return err
	}
	s[0] = byte(value)
	return nil
}

func (b ByteBuffer) ReadBufferShort(r any, order binary.ByteOrder, offset int64) (int16, error) {
	s, err := b.span(r, offset, 2, false)
	if err != nil {
		return 0, err
	}
	return int16(order.Uint16(s)), nil
}

func (b ByteBuffer) WriteBufferShort(r any, order binary.ByteOrder, offset int64, value int16) error {
	s, err := b.span(r, offset, 2, true)
	if err != nil {
		return err
	}
	order.PutUint16(s, uint16(value))
	return nil
}

func (b ByteBuffer) ReadBufferInt(r any, order binary.ByteOrder, offset int64) (int32, error) {
	s, err := b.span(r, offset, 4, false)
	if err != nil {
		return 0, err
	}
	return int32(order.Uint32(s)), nil
}

func (b ByteBuffer) WriteBufferInt(r any, order binary.ByteOrder, offset int64, value int32) error {
	s, err := b.span(r, offset, 4, true)
	if err != nil {
		return err
	}
	order.PutUint32(s, uint32(value))
	return nil
}

func (b ByteBuffer) ReadBufferLong(r any, order binary.ByteOrder, offset int64) (int64, error) {
	s, err := b.span(r, offset, 8, false)
	if err != nil {
		return 0, err
	}
	return int64(order.Uint64(s)), nil
}

func (b ByteBuffer) WriteBufferLong(r any, order binary.ByteOrder, offset int64, value int64) error {
	s, err := b.span(r, offset, 8, true)
	if err != nil {
		return err
	}
	order.PutUint64(s, uint64(value))
	return nil
}

func (b ByteBuffer) ReadBufferFloat(r any, order binary.ByteOrder, offset int64) (float32, error) {
	s, err := b.span(r, offset, 4, false)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(order.Uint32(s)), nil
}

func (b ByteBuffer) WriteBufferFloat(r any, order binary.ByteOrder, offset int64, value float32) error {
	s, err := b.span(r, offset, 4, true)
	if err != nil {
		return err
	}
	order.PutUint32(s, math.Float32bits(value))
	return nil
}

func (b ByteBuffer) ReadBufferDouble(r any, order binary.ByteOrder, offset int64) (float64, error) {
	s, err := b.span(r, offset, 8, false)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(order.Uint64(s)), nil
}

func (b ByteBuffer) WriteBufferDouble(r any, order binary.ByteOrder, offset int64, value float64) error {
	s, err := b.span(r, offset, 8, true)
	if err != nil {
		return err
	}
	order.PutUint64(s, math.Float64bits(value))
	return nil
}
