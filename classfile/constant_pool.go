package classfile

// ConstantPoolEntry is one slot of the constant pool, discriminated by Tag.
type ConstantPoolEntry interface {
	Tag() ConstantTag
}

// ConstantUtf8Info retains the raw Modified-UTF-8 bytes from the class
// file. Decoding to a Go string is deferred to Value so consumers that
// only compare bytes never pay for it.
type ConstantUtf8Info struct {
	Raw []byte
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

func (c *ConstantUtf8Info) Value() string { return DecodeModifiedUTF8(c.Raw) }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

// ConstantPool holds the decoded pool. Slot i (1-based, as the class file
// addresses it) lives at cp[i-1]; the phantom slot following a Long or
// Double entry is a nil element.
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at the given 1-based index. Index zero, indices
// past the pool, and phantom slots fail with *InvalidConstantIndexError.
func (cp ConstantPool) Entry(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp) {
		return nil, &InvalidConstantIndexError{Index: index}
	}
	entry := cp[index-1]
	if entry == nil {
		return nil, &InvalidConstantIndexError{Index: index}
	}
	return entry, nil
}

// Utf8 resolves index to a Utf8 entry and decodes it.
func (cp ConstantPool) Utf8(index uint16) (string, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return "", err
	}
	utf8, ok := entry.(*ConstantUtf8Info)
	if !ok {
		return "", &WrongConstantKindError{Expected: ConstantUtf8, Got: entry.Tag(), Index: index}
	}
	return utf8.Value(), nil
}

// Utf8Bytes resolves index to a Utf8 entry and returns the raw
// Modified-UTF-8 bytes without decoding.
func (cp ConstantPool) Utf8Bytes(index uint16) ([]byte, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return nil, err
	}
	utf8, ok := entry.(*ConstantUtf8Info)
	if !ok {
		return nil, &WrongConstantKindError{Expected: ConstantUtf8, Got: entry.Tag(), Index: index}
	}
	return utf8.Raw, nil
}

// ClassName resolves index to a Class entry and returns its name.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return "", err
	}
	class, ok := entry.(*ConstantClassInfo)
	if !ok {
		return "", &WrongConstantKindError{Expected: ConstantClass, Got: entry.Tag(), Index: index}
	}
	return cp.Utf8(class.NameIndex)
}

// NameAndType resolves index to a NameAndType entry.
func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return "", "", err
	}
	nat, ok := entry.(*ConstantNameAndTypeInfo)
	if !ok {
		return "", "", &WrongConstantKindError{Expected: ConstantNameAndType, Got: entry.Tag(), Index: index}
	}
	if name, err = cp.Utf8(nat.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.Utf8(nat.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// The Get* accessors below are lenient: an unresolvable or mismatched
// index yields a zero value instead of an error. They exist for tree
// navigation, where a dangling reference is the consumer's problem.

func (cp ConstantPool) GetUtf8(index uint16) string {
	s, _ := cp.Utf8(index)
	return s
}

func (cp ConstantPool) GetClassName(index uint16) string {
	s, _ := cp.ClassName(index)
	return s
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	name, descriptor, _ = cp.NameAndType(index)
	return
}

func (cp ConstantPool) GetString(index uint16) string {
	if entry, err := cp.Entry(index); err == nil {
		if str, ok := entry.(*ConstantStringInfo); ok {
			return cp.GetUtf8(str.StringIndex)
		}
	}
	return ""
}

func (cp ConstantPool) GetModuleName(index uint16) string {
	if entry, err := cp.Entry(index); err == nil {
		if mod, ok := entry.(*ConstantModuleInfo); ok {
			return cp.GetUtf8(mod.NameIndex)
		}
	}
	return ""
}

func (cp ConstantPool) GetPackageName(index uint16) string {
	if entry, err := cp.Entry(index); err == nil {
		if pkg, ok := entry.(*ConstantPackageInfo); ok {
			return cp.GetUtf8(pkg.NameIndex)
		}
	}
	return ""
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	if entry, err := cp.Entry(index); err == nil {
		if i, ok := entry.(*ConstantIntegerInfo); ok {
			return i.Value, true
		}
	}
	return 0, false
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	if entry, err := cp.Entry(index); err == nil {
		if l, ok := entry.(*ConstantLongInfo); ok {
			return l.Value, true
		}
	}
	return 0, false
}

func (cp ConstantPool) GetFloat(index uint16) (float32, bool) {
	if entry, err := cp.Entry(index); err == nil {
		if f, ok := entry.(*ConstantFloatInfo); ok {
			return f.Value, true
		}
	}
	return 0, false
}

func (cp ConstantPool) GetDouble(index uint16) (float64, bool) {
	if entry, err := cp.Entry(index); err == nil {
		if d, ok := entry.(*ConstantDoubleInfo); ok {
			return d.Value, true
		}
	}
	return 0, false
}

func (cp ConstantPool) GetFieldref(index uint16) (className, name, descriptor string) {
	if entry, err := cp.Entry(index); err == nil {
		if ref, ok := entry.(*ConstantFieldrefInfo); ok {
			className = cp.GetClassName(ref.ClassIndex)
			name, descriptor = cp.GetNameAndType(ref.NameAndTypeIndex)
		}
	}
	return
}

func (cp ConstantPool) GetMethodref(index uint16) (className, name, descriptor string) {
	if entry, err := cp.Entry(index); err == nil {
		if ref, ok := entry.(*ConstantMethodrefInfo); ok {
			className = cp.GetClassName(ref.ClassIndex)
			name, descriptor = cp.GetNameAndType(ref.NameAndTypeIndex)
		}
	}
	return
}

func (cp ConstantPool) GetInterfaceMethodref(index uint16) (className, name, descriptor string) {
	if entry, err := cp.Entry(index); err == nil {
		if ref, ok := entry.(*ConstantInterfaceMethodrefInfo); ok {
			className = cp.GetClassName(ref.ClassIndex)
			name, descriptor = cp.GetNameAndType(ref.NameAndTypeIndex)
		}
	}
	return
}

func (cp ConstantPool) GetMethodHandle(index uint16) *ConstantMethodHandleInfo {
	if entry, err := cp.Entry(index); err == nil {
		if mh, ok := entry.(*ConstantMethodHandleInfo); ok {
			return mh
		}
	}
	return nil
}

func (cp ConstantPool) GetMethodType(index uint16) string {
	if entry, err := cp.Entry(index); err == nil {
		if mt, ok := entry.(*ConstantMethodTypeInfo); ok {
			return cp.GetUtf8(mt.DescriptorIndex)
		}
	}
	return ""
}

func (cp ConstantPool) GetDynamic(index uint16) *ConstantDynamicInfo {
	if entry, err := cp.Entry(index); err == nil {
		if d, ok := entry.(*ConstantDynamicInfo); ok {
			return d
		}
	}
	return nil
}

func (cp ConstantPool) GetInvokeDynamic(index uint16) *ConstantInvokeDynamicInfo {
	if entry, err := cp.Entry(index); err == nil {
		if d, ok := entry.(*ConstantInvokeDynamicInfo); ok {
			return d
		}
	}
	return nil
}

// DecodeModifiedUTF8 decodes the JVM's Modified-UTF-8: NUL is two bytes
// (C0 80) and supplementary characters are a surrogate pair of two
// three-byte sequences. Malformed input degrades byte-wise rather than
// failing; validation is the consumer's call.
func DecodeModifiedUTF8(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	i := 0
	for i < len(raw) {
		b := raw[i]
		switch {
		case b&0x80 == 0:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0:
			if i+1 >= len(raw) {
				runes = append(runes, rune(b))
				i++
				continue
			}
			runes = append(runes, rune(b&0x1F)<<6|rune(raw[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0:
			if i+2 >= len(raw) {
				runes = append(runes, rune(b))
				i++
				continue
			}
			r := rune(b&0x0F)<<12 | rune(raw[i+1]&0x3F)<<6 | rune(raw[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(raw) && raw[i+3]&0xF0 == 0xE0 {
				low := rune(raw[i+3]&0x0F)<<12 | rune(raw[i+4]&0x3F)<<6 | rune(raw[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+(r-0xD800)<<10+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
