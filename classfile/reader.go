package classfile

import (
	"encoding/binary"
	"math"
)

// reader is a big-endian cursor over an in-memory class file. Reads past
// the end record a sticky *UnexpectedEOFError and return zero values, so
// callers can issue a group of reads and check err once.
type reader struct {
	data []byte
	pos  int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) offset() int {
	return r.pos
}

func (r *reader) seek(pos int) {
	if r.err != nil {
		return
	}
	if pos < 0 || pos > len(r.data) {
		r.err = &UnexpectedEOFError{Offset: pos}
		return
	}
	r.pos = pos
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.remaining() < n {
		r.err = &UnexpectedEOFError{Offset: r.pos}
		return false
	}
	return true
}

func (r *reader) readU1() uint8 {
	if !r.need(1) {
		return 0
	}
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *reader) readU2() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) readU4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) readI4() int32 {
	return int32(r.readU4())
}

func (r *reader) readI8() int64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return int64(v)
}

func (r *reader) readF4() float32 {
	return math.Float32frombits(r.readU4())
}

func (r *reader) readF8() float64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return math.Float64frombits(v)
}

func (r *reader) readBytes(n int) []byte {
	if n < 0 || !r.need(n) {
		if r.err == nil {
			r.err = &UnexpectedEOFError{Offset: r.pos}
		}
		return nil
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:])
	r.pos += n
	return buf
}
