package classfile

import (
	"errors"
	"reflect"
	"testing"
)

func TestStackMapFrameDecoding(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  StackMapFrame
	}{
		{
			name:  "same frame",
			input: []byte{0x05},
			want:  SameFrame{Tag: 5},
		},
		{
			name:  "same locals one stack item",
			input: []byte{0x43, 0x01},
			want:  SameLocals1StackItemFrame{Tag: 0x43, Stack: IntegerVariable{}},
		},
		{
			name:  "same locals one stack item extended",
			input: []byte{0xF7, 0x00, 0x10, 0x07, 0x00, 0x42},
			want:  SameLocals1StackItemFrameExtended{Delta: 16, Stack: ObjectVariable{CPoolIndex: 0x42}},
		},
		{
			name:  "chop three",
			input: []byte{0xF8, 0x00, 0x07},
			want:  ChopFrame{Tag: 248, Delta: 7},
		},
		{
			name:  "same frame extended",
			input: []byte{0xFB, 0x00, 0x09},
			want:  SameFrameExtended{Delta: 9},
		},
		{
			name:  "append two",
			input: []byte{0xFD, 0x00, 0x03, 0x04, 0x06},
			want: AppendFrame{Tag: 253, Delta: 3, Locals: []VerificationType{
				LongVariable{}, UninitializedThisVariable{},
			}},
		},
		{
			name: "full frame",
			input: []byte{
				0xFF, 0x00, 0x08,
				0x00, 0x02, 0x01, 0x04,
				0x00, 0x01, 0x05,
			},
			want: FullFrame{
				Delta:  8,
				Locals: []VerificationType{IntegerVariable{}, LongVariable{}},
				Stack:  []VerificationType{NullVariable{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(tt.input)
			frame, err := readStackMapFrame(r)
			if err != nil {
				t.Fatalf("readStackMapFrame() error: %v", err)
			}
			if !reflect.DeepEqual(frame, tt.want) {
				t.Errorf("frame = %#v, want %#v", frame, tt.want)
			}
			if r.remaining() != 0 {
				t.Errorf("%d bytes left over", r.remaining())
			}
		})
	}
}

func TestAppendFrameLeavesFollowingBytes(t *testing.T) {
	// An append frame with one Object local; the trailing 0x01 belongs to
	// the next frame and must not be consumed.
	r := newReader([]byte{0xFC, 0x00, 0x05, 0x07, 0x00, 0x42, 0x01})

	frame, err := readStackMapFrame(r)
	if err != nil {
		t.Fatalf("readStackMapFrame() error: %v", err)
	}

	appendFrame, ok := frame.(AppendFrame)
	if !ok {
		t.Fatalf("frame = %#v, want AppendFrame", frame)
	}
	if appendFrame.OffsetDelta() != 5 {
		t.Errorf("OffsetDelta() = %d, want 5", appendFrame.OffsetDelta())
	}
	if len(appendFrame.Locals) != 1 {
		t.Fatalf("len(Locals) = %d, want 1", len(appendFrame.Locals))
	}
	if object, ok := appendFrame.Locals[0].(ObjectVariable); !ok || object.CPoolIndex != 0x42 {
		t.Errorf("Locals[0] = %#v, want Object(0x42)", appendFrame.Locals[0])
	}
	if r.remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", r.remaining())
	}

	next, err := readVerificationType(r)
	if err != nil {
		t.Fatalf("readVerificationType() error: %v", err)
	}
	if _, ok := next.(IntegerVariable); !ok {
		t.Errorf("next = %#v, want Integer", next)
	}
}

func TestReservedFrameTagsRejected(t *testing.T) {
	for _, tag := range []uint8{128, 200, 246} {
		r := newReader([]byte{tag})
		_, err := readStackMapFrame(r)
		var unknown *UnknownStackMapFrameTagError
		if !errors.As(err, &unknown) {
			t.Errorf("tag %d: expected UnknownStackMapFrameTagError, got %v", tag, err)
			continue
		}
		if unknown.Tag != tag {
			t.Errorf("Tag = %d, want %d", unknown.Tag, tag)
		}
	}
}

func TestUnknownVerificationType(t *testing.T) {
	r := newReader([]byte{0x43, 0x09})
	_, err := readStackMapFrame(r)
	var unknown *UnknownVerificationTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownVerificationTypeError, got %v", err)
	}
	if unknown.Tag != 9 {
		t.Errorf("Tag = %d, want 9", unknown.Tag)
	}
}

// TestFrameTagRangeMapping checks the whole tag space against the frame
// family each range must decode to.
func TestFrameTagRangeMapping(t *testing.T) {
	payloadFor := func(tag int) []byte {
		switch {
		case tag <= 63:
			return nil
		case tag <= 127:
			return []byte{0x00} // one Top stack item
		case tag == 247:
			return []byte{0x00, 0x00, 0x00}
		case tag >= 248 && tag <= 251:
			return []byte{0x00, 0x00}
		case tag >= 252 && tag <= 254:
			payload := []byte{0x00, 0x00}
			for i := 0; i < tag-251; i++ {
				payload = append(payload, 0x00)
			}
			return payload
		case tag == 255:
			return []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
		default:
			return nil
		}
	}

	for tag := 0; tag <= 255; tag++ {
		input := append([]byte{uint8(tag)}, payloadFor(tag)...)
		frame, err := readStackMapFrame(newReader(input))

		if tag >= 128 && tag <= 246 {
			var unknown *UnknownStackMapFrameTagError
			if !errors.As(err, &unknown) {
				t.Errorf("tag %d: expected UnknownStackMapFrameTagError, got %v", tag, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("tag %d: unexpected error: %v", tag, err)
			continue
		}

		var ok bool
		switch {
		case tag <= 63:
			_, ok = frame.(SameFrame)
		case tag <= 127:
			_, ok = frame.(SameLocals1StackItemFrame)
		case tag == 247:
			_, ok = frame.(SameLocals1StackItemFrameExtended)
		case tag <= 250:
			_, ok = frame.(ChopFrame)
		case tag == 251:
			_, ok = frame.(SameFrameExtended)
		case tag <= 254:
			_, ok = frame.(AppendFrame)
		default:
			_, ok = frame.(FullFrame)
		}
		if !ok {
			t.Errorf("tag %d decoded to %T", tag, frame)
		}
		if frame.FrameTag() != uint8(tag) {
			t.Errorf("tag %d: FrameTag() = %d", tag, frame.FrameTag())
		}
	}
}

func TestStackMapTableAttribute(t *testing.T) {
	// Two frames: same(0), append k=1 with an Integer local.
	r := newReader([]byte{0x00, 0x02, 0x00, 0xFC, 0x00, 0x04, 0x01})
	smt, err := parseStackMapTableAttribute(r)
	if err != nil {
		t.Fatalf("parseStackMapTableAttribute() error: %v", err)
	}
	if len(smt.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, want 2", len(smt.Frames))
	}
	if _, ok := smt.Frames[0].(SameFrame); !ok {
		t.Errorf("Frames[0] = %T, want SameFrame", smt.Frames[0])
	}
	if _, ok := smt.Frames[1].(AppendFrame); !ok {
		t.Errorf("Frames[1] = %T, want AppendFrame", smt.Frames[1])
	}
}

func TestChopFrameChopped(t *testing.T) {
	for tag, want := range map[uint8]int{248: 3, 249: 2, 250: 1} {
		frame := ChopFrame{Tag: tag}
		if got := frame.Chopped(); got != want {
			t.Errorf("ChopFrame{%d}.Chopped() = %d, want %d", tag, got, want)
		}
	}
}
