package classfile

// StackMapFrame is the union over the six frame families. The family is
// implied by the frame tag byte: 0..63 same, 64..127 same_locals_1_stack,
// 247 its extended form, 248..250 chop, 251 same_extended, 252..254
// append, 255 full. Tags 128..246 are reserved and rejected.
type StackMapFrame interface {
	FrameTag() uint8
	OffsetDelta() uint16
}

type SameFrame struct {
	Tag uint8
}

func (f SameFrame) FrameTag() uint8     { return f.Tag }
func (f SameFrame) OffsetDelta() uint16 { return uint16(f.Tag) }

type SameLocals1StackItemFrame struct {
	Tag   uint8
	Stack VerificationType
}

func (f SameLocals1StackItemFrame) FrameTag() uint8     { return f.Tag }
func (f SameLocals1StackItemFrame) OffsetDelta() uint16 { return uint16(f.Tag) - 64 }

type SameLocals1StackItemFrameExtended struct {
	Delta uint16
	Stack VerificationType
}

func (f SameLocals1StackItemFrameExtended) FrameTag() uint8     { return 247 }
func (f SameLocals1StackItemFrameExtended) OffsetDelta() uint16 { return f.Delta }

type ChopFrame struct {
	Tag   uint8
	Delta uint16
}

func (f ChopFrame) FrameTag() uint8     { return f.Tag }
func (f ChopFrame) OffsetDelta() uint16 { return f.Delta }

// Chopped is how many of the last locals disappear, 1..3.
func (f ChopFrame) Chopped() int { return 251 - int(f.Tag) }

type SameFrameExtended struct {
	Delta uint16
}

func (f SameFrameExtended) FrameTag() uint8     { return 251 }
func (f SameFrameExtended) OffsetDelta() uint16 { return f.Delta }

type AppendFrame struct {
	Tag    uint8
	Delta  uint16
	Locals []VerificationType
}

func (f AppendFrame) FrameTag() uint8     { return f.Tag }
func (f AppendFrame) OffsetDelta() uint16 { return f.Delta }

type FullFrame struct {
	Delta  uint16
	Locals []VerificationType
	Stack  []VerificationType
}

func (f FullFrame) FrameTag() uint8     { return 255 }
func (f FullFrame) OffsetDelta() uint16 { return f.Delta }

// VerificationType is the type of one local or operand stack slot.
type VerificationType interface {
	VerificationTag() uint8
}

type TopVariable struct{}
type IntegerVariable struct{}
type FloatVariable struct{}
type DoubleVariable struct{}
type LongVariable struct{}
type NullVariable struct{}
type UninitializedThisVariable struct{}

type ObjectVariable struct {
	CPoolIndex uint16
}

type UninitializedVariable struct {
	Offset uint16
}

func (TopVariable) VerificationTag() uint8               { return 0 }
func (IntegerVariable) VerificationTag() uint8           { return 1 }
func (FloatVariable) VerificationTag() uint8             { return 2 }
func (DoubleVariable) VerificationTag() uint8            { return 3 }
func (LongVariable) VerificationTag() uint8              { return 4 }
func (NullVariable) VerificationTag() uint8              { return 5 }
func (UninitializedThisVariable) VerificationTag() uint8 { return 6 }
func (ObjectVariable) VerificationTag() uint8            { return 7 }
func (UninitializedVariable) VerificationTag() uint8     { return 8 }

func readStackMapFrame(r *reader) (StackMapFrame, error) {
	tag := r.readU1()
	if r.err != nil {
		return nil, r.err
	}

	switch {
	case tag <= 63:
		return SameFrame{Tag: tag}, nil
	case tag <= 127:
		stack, err := readVerificationType(r)
		if err != nil {
			return nil, err
		}
		return SameLocals1StackItemFrame{Tag: tag, Stack: stack}, nil
	case tag == 247:
		delta := r.readU2()
		stack, err := readVerificationType(r)
		if err != nil {
			return nil, err
		}
		return SameLocals1StackItemFrameExtended{Delta: delta, Stack: stack}, r.err
	case tag >= 248 && tag <= 250:
		frame := ChopFrame{Tag: tag, Delta: r.readU2()}
		return frame, r.err
	case tag == 251:
		frame := SameFrameExtended{Delta: r.readU2()}
		return frame, r.err
	case tag >= 252 && tag <= 254:
		frame := AppendFrame{Tag: tag, Delta: r.readU2()}
		count := int(tag) - 251
		frame.Locals = make([]VerificationType, 0, count)
		for i := 0; i < count; i++ {
			local, err := readVerificationType(r)
			if err != nil {
				return nil, err
			}
			frame.Locals = append(frame.Locals, local)
		}
		return frame, r.err
	case tag == 255:
		frame := FullFrame{Delta: r.readU2()}
		localsCount := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		frame.Locals = make([]VerificationType, 0, localsCount)
		for i := uint16(0); i < localsCount; i++ {
			local, err := readVerificationType(r)
			if err != nil {
				return nil, err
			}
			frame.Locals = append(frame.Locals, local)
		}
		stackCount := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		frame.Stack = make([]VerificationType, 0, stackCount)
		for i := uint16(0); i < stackCount; i++ {
			item, err := readVerificationType(r)
			if err != nil {
				return nil, err
			}
			frame.Stack = append(frame.Stack, item)
		}
		return frame, r.err
	default:
		return nil, &UnknownStackMapFrameTagError{Tag: tag}
	}
}

func readVerificationType(r *reader) (VerificationType, error) {
	tag := r.readU1()
	if r.err != nil {
		return nil, r.err
	}

	switch tag {
	case 0:
		return TopVariable{}, nil
	case 1:
		return IntegerVariable{}, nil
	case 2:
		return FloatVariable{}, nil
	case 3:
		return DoubleVariable{}, nil
	case 4:
		return LongVariable{}, nil
	case 5:
		return NullVariable{}, nil
	case 6:
		return UninitializedThisVariable{}, nil
	case 7:
		v := ObjectVariable{CPoolIndex: r.readU2()}
		return v, r.err
	case 8:
		v := UninitializedVariable{Offset: r.readU2()}
		return v, r.err
	default:
		return nil, &UnknownVerificationTypeError{Tag: tag}
	}
}
