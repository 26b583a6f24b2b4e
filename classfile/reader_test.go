package classfile

import (
	"errors"
	"testing"
)

func TestReaderPrimitives(t *testing.T) {
	r := newReader([]byte{
		0x12,
		0x34, 0x56,
		0x00, 0x00, 0x00, 0x2A,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
		0x3F, 0x80, 0x00, 0x00,
	})

	if got := r.readU1(); got != 0x12 {
		t.Errorf("readU1() = 0x%02X", got)
	}
	if got := r.readU2(); got != 0x3456 {
		t.Errorf("readU2() = 0x%04X", got)
	}
	if got := r.readU4(); got != 42 {
		t.Errorf("readU4() = %d", got)
	}
	if got := r.readI8(); got != -2 {
		t.Errorf("readI8() = %d", got)
	}
	if got := r.readF4(); got != 1.0 {
		t.Errorf("readF4() = %v", got)
	}
	if r.err != nil {
		t.Fatalf("reader error: %v", r.err)
	}
	if r.remaining() != 0 {
		t.Errorf("remaining() = %d", r.remaining())
	}
}

func TestReaderStickyError(t *testing.T) {
	r := newReader([]byte{0x01})

	r.readU4()
	var eof *UnexpectedEOFError
	if !errors.As(r.err, &eof) {
		t.Fatalf("expected UnexpectedEOFError, got %v", r.err)
	}
	if eof.Offset != 0 {
		t.Errorf("Offset = %d, want 0", eof.Offset)
	}

	// Subsequent reads keep the first error and return zero values.
	if got := r.readU1(); got != 0 {
		t.Errorf("readU1() after error = %d, want 0", got)
	}
	if !errors.As(r.err, &eof) || eof.Offset != 0 {
		t.Error("sticky error was replaced")
	}
}

func TestReaderSeek(t *testing.T) {
	r := newReader([]byte{0x00, 0x01, 0x02, 0x03})

	r.readU2()
	if r.offset() != 2 {
		t.Errorf("offset() = %d, want 2", r.offset())
	}

	r.seek(1)
	if got := r.readU1(); got != 0x01 {
		t.Errorf("readU1() after seek = 0x%02X, want 0x01", got)
	}

	r.seek(5)
	var eof *UnexpectedEOFError
	if !errors.As(r.err, &eof) {
		t.Errorf("seek past end: expected UnexpectedEOFError, got %v", r.err)
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03})

	buf := r.readBytes(2)
	if r.err != nil || len(buf) != 2 || buf[0] != 0x01 || buf[1] != 0x02 {
		t.Errorf("readBytes(2) = % X, err %v", buf, r.err)
	}

	r.readBytes(2)
	var eof *UnexpectedEOFError
	if !errors.As(r.err, &eof) {
		t.Fatalf("expected UnexpectedEOFError, got %v", r.err)
	}
	if eof.Offset != 2 {
		t.Errorf("Offset = %d, want 2", eof.Offset)
	}
}
