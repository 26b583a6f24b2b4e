package classfile

import (
	"errors"
	"testing"
)

// testPool builds a small pool by hand:
//
//	1: Utf8 "java/lang/String"
//	2: Class -> 1
//	3: Utf8 "length"
//	4: Utf8 "()I"
//	5: NameAndType -> 3, 4
//	6: Methodref -> 2, 5
//	7: Long 1234 (slot 8 is the phantom)
//	9: Utf8 "hello"
//	10: String -> 9
func testPool() ConstantPool {
	return ConstantPool{
		&ConstantUtf8Info{Raw: []byte("java/lang/String")},
		&ConstantClassInfo{NameIndex: 1},
		&ConstantUtf8Info{Raw: []byte("length")},
		&ConstantUtf8Info{Raw: []byte("()I")},
		&ConstantNameAndTypeInfo{NameIndex: 3, DescriptorIndex: 4},
		&ConstantMethodrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		&ConstantLongInfo{Value: 1234},
		nil,
		&ConstantUtf8Info{Raw: []byte("hello")},
		&ConstantStringInfo{StringIndex: 9},
	}
}

func TestConstantPoolEntry(t *testing.T) {
	cp := testPool()

	t.Run("valid index", func(t *testing.T) {
		entry, err := cp.Entry(2)
		if err != nil {
			t.Fatalf("Entry(2) error: %v", err)
		}
		if entry.Tag() != ConstantClass {
			t.Errorf("Tag() = %d, want %d", entry.Tag(), ConstantClass)
		}
	})

	t.Run("index zero", func(t *testing.T) {
		_, err := cp.Entry(0)
		var invalid *InvalidConstantIndexError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidConstantIndexError, got %v", err)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := cp.Entry(11)
		var invalid *InvalidConstantIndexError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidConstantIndexError, got %v", err)
		}
		if invalid.Index != 11 {
			t.Errorf("Index = %d, want 11", invalid.Index)
		}
	})

	t.Run("phantom slot", func(t *testing.T) {
		_, err := cp.Entry(8)
		var invalid *InvalidConstantIndexError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidConstantIndexError, got %v", err)
		}
	})
}

func TestConstantPoolUtf8(t *testing.T) {
	cp := testPool()

	value, err := cp.Utf8(1)
	if err != nil {
		t.Fatalf("Utf8(1) error: %v", err)
	}
	if value != "java/lang/String" {
		t.Errorf("Utf8(1) = %q, want %q", value, "java/lang/String")
	}

	_, err = cp.Utf8(2)
	var wrongKind *WrongConstantKindError
	if !errors.As(err, &wrongKind) {
		t.Fatalf("expected WrongConstantKindError, got %v", err)
	}
	if wrongKind.Expected != ConstantUtf8 || wrongKind.Got != ConstantClass || wrongKind.Index != 2 {
		t.Errorf("WrongConstantKindError = %+v", wrongKind)
	}

	raw, err := cp.Utf8Bytes(9)
	if err != nil {
		t.Fatalf("Utf8Bytes(9) error: %v", err)
	}
	if string(raw) != "hello" {
		t.Errorf("Utf8Bytes(9) = %q, want %q", raw, "hello")
	}
}

func TestConstantPoolResolvers(t *testing.T) {
	cp := testPool()

	if name, err := cp.ClassName(2); err != nil || name != "java/lang/String" {
		t.Errorf("ClassName(2) = %q, %v", name, err)
	}

	name, descriptor, err := cp.NameAndType(5)
	if err != nil {
		t.Fatalf("NameAndType(5) error: %v", err)
	}
	if name != "length" || descriptor != "()I" {
		t.Errorf("NameAndType(5) = %q, %q", name, descriptor)
	}

	className, methodName, methodDescriptor := cp.GetMethodref(6)
	if className != "java/lang/String" || methodName != "length" || methodDescriptor != "()I" {
		t.Errorf("GetMethodref(6) = %q, %q, %q", className, methodName, methodDescriptor)
	}

	if s := cp.GetString(10); s != "hello" {
		t.Errorf("GetString(10) = %q, want %q", s, "hello")
	}
	if value, ok := cp.GetLong(7); !ok || value != 1234 {
		t.Errorf("GetLong(7) = %d, %v", value, ok)
	}
}

func TestConstantPoolLenientAccessors(t *testing.T) {
	cp := testPool()

	if s := cp.GetUtf8(0); s != "" {
		t.Errorf("GetUtf8(0) = %q, want empty", s)
	}
	if s := cp.GetUtf8(65535); s != "" {
		t.Errorf("GetUtf8(65535) = %q, want empty", s)
	}
	if s := cp.GetClassName(8); s != "" {
		t.Errorf("GetClassName(phantom) = %q, want empty", s)
	}
	if name, descriptor := cp.GetNameAndType(0); name != "" || descriptor != "" {
		t.Error("GetNameAndType(0) should return empty strings")
	}
	if _, ok := cp.GetLong(8); ok {
		t.Error("GetLong on phantom slot should fail")
	}
	if mh := cp.GetMethodHandle(1); mh != nil {
		t.Error("GetMethodHandle on Utf8 should return nil")
	}
}

func TestConstantPoolTagMethods(t *testing.T) {
	tests := []struct {
		entry ConstantPoolEntry
		tag   ConstantTag
	}{
		{&ConstantUtf8Info{Raw: []byte("test")}, ConstantUtf8},
		{&ConstantIntegerInfo{Value: 42}, ConstantInteger},
		{&ConstantFloatInfo{Value: 3.14}, ConstantFloat},
		{&ConstantLongInfo{Value: 12345}, ConstantLong},
		{&ConstantDoubleInfo{Value: 2.718}, ConstantDouble},
		{&ConstantClassInfo{NameIndex: 1}, ConstantClass},
		{&ConstantStringInfo{StringIndex: 1}, ConstantString},
		{&ConstantFieldrefInfo{ClassIndex: 1, NameAndTypeIndex: 2}, ConstantFieldref},
		{&ConstantMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 2}, ConstantMethodref},
		{&ConstantInterfaceMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 2}, ConstantInterfaceMethodref},
		{&ConstantNameAndTypeInfo{NameIndex: 1, DescriptorIndex: 2}, ConstantNameAndType},
		{&ConstantMethodHandleInfo{ReferenceKind: RefInvokeVirtual, ReferenceIndex: 1}, ConstantMethodHandle},
		{&ConstantMethodTypeInfo{DescriptorIndex: 1}, ConstantMethodType},
		{&ConstantDynamicInfo{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 1}, ConstantDynamic},
		{&ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 1}, ConstantInvokeDynamic},
		{&ConstantModuleInfo{NameIndex: 1}, ConstantModule},
		{&ConstantPackageInfo{NameIndex: 1}, ConstantPackage},
	}

	for _, tt := range tests {
		if got := tt.entry.Tag(); got != tt.tag {
			t.Errorf("Tag() = %d, want %d for %T", got, tt.tag, tt.entry)
		}
	}
}

func TestExpandFlags(t *testing.T) {
	flags := AccessFlags(0x0021) // public super

	if got := flags.ClassFlagNames(); len(got) != 2 || got[0] != "public" || got[1] != "super" {
		t.Errorf("ClassFlagNames() = %v, want [public super]", got)
	}

	// 0x0020 has no field meaning; it must survive as an opaque token.
	if got := flags.FieldFlagNames(); len(got) != 2 || got[0] != "public" || got[1] != "0x0020" {
		t.Errorf("FieldFlagNames() = %v, want [public 0x0020]", got)
	}

	if got := AccessFlags(0x0021).MethodFlagNames(); len(got) != 2 || got[0] != "public" || got[1] != "synchronized" {
		t.Errorf("MethodFlagNames() = %v, want [public synchronized]", got)
	}
}
