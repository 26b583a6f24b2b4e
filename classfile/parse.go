package classfile

import (
	"fmt"
	"io"
	"os"
)

// ParseFile reads and parses a class file from disk with default options.
func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	return ParseBytes(data, ParsingOptions{})
}

// Parse reads a whole class file from rd and parses it with default
// options.
func Parse(rd io.Reader) (*ClassFile, error) {
	return ParseWithOptions(rd, ParsingOptions{})
}

// ParseWithOptions reads a whole class file from rd and parses it.
func ParseWithOptions(rd io.Reader, opt ParsingOptions) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return ParseBytes(data, opt)
}

// ParseBytes decodes a class file held in memory. Any error is fatal for
// the parse; a partially decoded class is never returned.
func ParseBytes(data []byte, opt ParsingOptions) (*ClassFile, error) {
	r := newReader(data)

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, &BadMagicError{Value: magic}
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.err)
	}

	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = pool

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}
	cf.Interfaces = make([]uint16, 0, interfacesCount)
	for i := uint16(0); i < interfacesCount; i++ {
		cf.Interfaces = append(cf.Interfaces, r.readU2())
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read interfaces: %w", r.err)
	}

	if opt.Strict && (cf.MajorVersion < MinSupportedMajor || cf.MajorVersion > MaxSupportedMajor) {
		return nil, &UnsupportedClassVersionError{Major: cf.MajorVersion}
	}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read fields count: %w", r.err)
	}
	cf.Fields = make([]FieldInfo, 0, fieldsCount)
	for i := uint16(0); i < fieldsCount; i++ {
		field, err := readFieldInfo(r, pool, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
		cf.Fields = append(cf.Fields, *field)
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", r.err)
	}
	cf.Methods = make([]MethodInfo, 0, methodsCount)
	for i := uint16(0); i < methodsCount; i++ {
		method, err := readMethodInfo(r, pool, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods = append(cf.Methods, *method)
	}

	attrs, err := readAttributeList(r, pool, ContextClass, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}
	cf.Attributes = attrs

	if r.remaining() != 0 {
		return nil, &TrailingInputError{Kind: "class", Remaining: r.remaining()}
	}

	return cf, nil
}

// readConstantPool decodes the pool. The declared count is one more than
// the number of slots; a Long or Double entry fills its slot plus a
// phantom slot, stored as nil.
func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.err)
	}
	if count == 0 {
		return nil, &InvalidConstantIndexError{Index: 0}
	}

	pool := make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		pool[i-1] = entry
		if wide {
			i++
			if i >= count {
				// The phantom slot would land past the declared end.
				return nil, fmt.Errorf("failed to read constant pool entry %d: %w",
					i-1, &InvalidConstantIndexError{Index: i})
			}
			pool[i-1] = nil
		}
	}
	return pool, nil
}

// readConstantPoolEntry decodes one entry. The second return value is true
// for Long and Double, which occupy two slots.
func readConstantPoolEntry(r *reader) (ConstantPoolEntry, bool, error) {
	tagOffset := r.offset()
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, false, r.err
	}

	var entry ConstantPoolEntry
	wide := false

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		if r.err != nil {
			return nil, false, r.err
		}
		entry = &ConstantUtf8Info{Raw: r.readBytes(int(length))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: r.readI4()}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: r.readF4()}
	case ConstantLong:
		entry = &ConstantLongInfo{Value: r.readI8()}
		wide = true
	case ConstantDouble:
		entry = &ConstantDoubleInfo{Value: r.readF8()}
		wide = true
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref:
		entry = &ConstantFieldrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
	case ConstantMethodref:
		entry = &ConstantMethodrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
	case ConstantInterfaceMethodref:
		entry = &ConstantInterfaceMethodrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
	case ConstantMethodHandle:
		entry = &ConstantMethodHandleInfo{
			ReferenceKind:  MethodHandleKind(r.readU1()),
			ReferenceIndex: r.readU2(),
		}
	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantDynamic:
		entry = &ConstantDynamicInfo{
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}
	case ConstantInvokeDynamic:
		entry = &ConstantInvokeDynamicInfo{
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}
	case ConstantModule:
		entry = &ConstantModuleInfo{NameIndex: r.readU2()}
	case ConstantPackage:
		entry = &ConstantPackageInfo{NameIndex: r.readU2()}
	default:
		return nil, false, &UnknownConstantTagError{Tag: uint8(tag), Offset: tagOffset}
	}

	if r.err != nil {
		return nil, false, r.err
	}
	return entry, wide, nil
}

func readFieldInfo(r *reader, cp ConstantPool, opt ParsingOptions) (*FieldInfo, error) {
	field := &FieldInfo{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return nil, r.err
	}
	attrs, err := readAttributeList(r, cp, ContextField, opt)
	if err != nil {
		return nil, err
	}
	field.Attributes = attrs
	return field, nil
}

func readMethodInfo(r *reader, cp ConstantPool, opt ParsingOptions) (*MethodInfo, error) {
	method := &MethodInfo{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return nil, r.err
	}
	attrs, err := readAttributeList(r, cp, ContextMethod, opt)
	if err != nil {
		return nil, err
	}
	method.Attributes = attrs
	return method, nil
}
