package classfile

import "fmt"

type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// ElementValue is the tagged union from the annotation wire format. Value
// holds, depending on Tag: a uint16 constant pool index (primitive tags and
// 's'/'c'), an EnumConstValue ('e'), a nested Annotation ('@'), or an
// ArrayValue ('[').
type ElementValue struct {
	Tag   byte
	Value interface{}
}

type EnumConstValue struct {
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

type ArrayValue struct {
	Values []ElementValue
}

// TypeAnnotation extends Annotation with the target it annotates and the
// path from the target's outermost type to the annotated part.
type TypeAnnotation struct {
	TargetType        uint8
	TargetInfo        TargetInfo
	TargetPath        []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}

// TargetInfo is the union over the target_info shapes, selected by the
// target_type byte.
type TargetInfo interface {
	targetInfo()
}

// TypeParameterTarget: target types 0x00, 0x01.
type TypeParameterTarget struct {
	TypeParameterIndex uint8
}

// SupertypeTarget: target type 0x10.
type SupertypeTarget struct {
	SupertypeIndex uint16
}

// TypeParameterBoundTarget: target types 0x11, 0x12.
type TypeParameterBoundTarget struct {
	TypeParameterIndex uint8
	BoundIndex         uint8
}

// EmptyTarget: target types 0x13..0x15.
type EmptyTarget struct{}

// FormalParameterTarget: target type 0x16.
type FormalParameterTarget struct {
	FormalParameterIndex uint8
}

// ThrowsTarget: target type 0x17.
type ThrowsTarget struct {
	ThrowsTypeIndex uint16
}

// LocalVarTarget: target types 0x40, 0x41.
type LocalVarTarget struct {
	Table []LocalVarTargetEntry
}

type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// CatchTarget: target type 0x42.
type CatchTarget struct {
	ExceptionTableIndex uint16
}

// OffsetTarget: target types 0x43..0x46.
type OffsetTarget struct {
	Offset uint16
}

// TypeArgumentTarget: target types 0x47..0x4B.
type TypeArgumentTarget struct {
	Offset            uint16
	TypeArgumentIndex uint8
}

func (TypeParameterTarget) targetInfo()      {}
func (SupertypeTarget) targetInfo()          {}
func (TypeParameterBoundTarget) targetInfo() {}
func (EmptyTarget) targetInfo()              {}
func (FormalParameterTarget) targetInfo()    {}
func (ThrowsTarget) targetInfo()             {}
func (LocalVarTarget) targetInfo()           {}
func (CatchTarget) targetInfo()              {}
func (OffsetTarget) targetInfo()             {}
func (TypeArgumentTarget) targetInfo()       {}

func readAnnotation(r *reader) (Annotation, error) {
	ann := Annotation{TypeIndex: r.readU2()}
	numPairs := r.readU2()
	if r.err != nil {
		return ann, r.err
	}
	ann.ElementValuePairs = make([]ElementValuePair, 0, numPairs)
	for i := uint16(0); i < numPairs; i++ {
		pair := ElementValuePair{ElementNameIndex: r.readU2()}
		value, err := readElementValue(r)
		if err != nil {
			return ann, err
		}
		pair.Value = value
		ann.ElementValuePairs = append(ann.ElementValuePairs, pair)
	}
	return ann, nil
}

func readElementValue(r *reader) (ElementValue, error) {
	tag := r.readU1()
	if r.err != nil {
		return ElementValue{}, r.err
	}
	ev := ElementValue{Tag: tag}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		ev.Value = r.readU2()
	case 'e':
		ev.Value = EnumConstValue{
			TypeNameIndex:  r.readU2(),
			ConstNameIndex: r.readU2(),
		}
	case '@':
		nested, err := readAnnotation(r)
		if err != nil {
			return ev, err
		}
		ev.Value = nested
	case '[':
		numValues := r.readU2()
		if r.err != nil {
			return ev, r.err
		}
		values := make([]ElementValue, 0, numValues)
		for i := uint16(0); i < numValues; i++ {
			value, err := readElementValue(r)
			if err != nil {
				return ev, err
			}
			values = append(values, value)
		}
		ev.Value = ArrayValue{Values: values}
	default:
		return ev, fmt.Errorf("unknown element value tag %q", tag)
	}
	return ev, r.err
}

func readTypeAnnotation(r *reader) (TypeAnnotation, error) {
	ta := TypeAnnotation{TargetType: r.readU1()}
	if r.err != nil {
		return ta, r.err
	}

	target, err := readTargetInfo(r, ta.TargetType)
	if err != nil {
		return ta, err
	}
	ta.TargetInfo = target

	pathLength := r.readU1()
	if r.err != nil {
		return ta, r.err
	}
	ta.TargetPath = make([]TypePathEntry, 0, pathLength)
	for i := uint8(0); i < pathLength; i++ {
		ta.TargetPath = append(ta.TargetPath, TypePathEntry{
			TypePathKind:      r.readU1(),
			TypeArgumentIndex: r.readU1(),
		})
	}

	ta.TypeIndex = r.readU2()
	numPairs := r.readU2()
	if r.err != nil {
		return ta, r.err
	}
	ta.ElementValuePairs = make([]ElementValuePair, 0, numPairs)
	for i := uint16(0); i < numPairs; i++ {
		pair := ElementValuePair{ElementNameIndex: r.readU2()}
		value, err := readElementValue(r)
		if err != nil {
			return ta, err
		}
		pair.Value = value
		ta.ElementValuePairs = append(ta.ElementValuePairs, pair)
	}
	return ta, r.err
}

func readTargetInfo(r *reader, targetType uint8) (TargetInfo, error) {
	switch targetType {
	case 0x00, 0x01:
		return TypeParameterTarget{TypeParameterIndex: r.readU1()}, r.err
	case 0x10:
		return SupertypeTarget{SupertypeIndex: r.readU2()}, r.err
	case 0x11, 0x12:
		return TypeParameterBoundTarget{
			TypeParameterIndex: r.readU1(),
			BoundIndex:         r.readU1(),
		}, r.err
	case 0x13, 0x14, 0x15:
		return EmptyTarget{}, nil
	case 0x16:
		return FormalParameterTarget{FormalParameterIndex: r.readU1()}, r.err
	case 0x17:
		return ThrowsTarget{ThrowsTypeIndex: r.readU2()}, r.err
	case 0x40, 0x41:
		tableLength := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		target := LocalVarTarget{Table: make([]LocalVarTargetEntry, 0, tableLength)}
		for i := uint16(0); i < tableLength; i++ {
			target.Table = append(target.Table, LocalVarTargetEntry{
				StartPC: r.readU2(),
				Length:  r.readU2(),
				Index:   r.readU2(),
			})
		}
		return target, r.err
	case 0x42:
		return CatchTarget{ExceptionTableIndex: r.readU2()}, r.err
	case 0x43, 0x44, 0x45, 0x46:
		return OffsetTarget{Offset: r.readU2()}, r.err
	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		return TypeArgumentTarget{
			Offset:            r.readU2(),
			TypeArgumentIndex: r.readU1(),
		}, r.err
	default:
		return nil, fmt.Errorf("unknown type annotation target type 0x%02X", targetType)
	}
}
