package classfile

import "github.com/dhamidi/jclass/signature"

// AttributeContext records where an attribute was found. Dispatch is by
// name only; the context is surfaced as metadata so consumers can reject
// misplaced attributes if they care.
type AttributeContext uint8

const (
	ContextClass AttributeContext = iota
	ContextField
	ContextMethod
	ContextCode
	ContextRecordComponent
)

func (c AttributeContext) String() string {
	switch c {
	case ContextClass:
		return "class"
	case ContextField:
		return "field"
	case ContextMethod:
		return "method"
	case ContextCode:
		return "code"
	case ContextRecordComponent:
		return "record component"
	default:
		return "unknown"
	}
}

// AttributeInfo is the generic attribute envelope: the resolved name, the
// raw body, and (when attribute parsing is on) the typed variant in Parsed.
type AttributeInfo struct {
	NameIndex uint16
	Name      string
	Context   AttributeContext
	Info      []byte
	Parsed    interface{}
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type StackMapTableAttribute struct {
	Frames []StackMapFrame
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type SyntheticAttribute struct{}

type DeprecatedAttribute struct{}

// SignatureAttribute keeps the pool reference to the raw signature string.
// Parsed is populated only when ParseSignatures is on.
type SignatureAttribute struct {
	SignatureIndex uint16
	Parsed         signature.Signature
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

// SourceDebugExtensionAttribute retains the raw Modified-UTF-8 payload;
// DecodeModifiedUTF8 turns it into a string when a consumer wants one.
type SourceDebugExtensionAttribute struct {
	DebugExtension []byte
}

type LineNumberTableAttribute struct {
	LineNumberTable []LineNumberEntry
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type LocalVariableTypeTableAttribute struct {
	LocalVariableTypeTable []LocalVariableTypeEntry
}

type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

type RuntimeVisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

type RuntimeInvisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

type RuntimeVisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

type RuntimeVisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

type RuntimeInvisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

type AnnotationDefaultAttribute struct {
	DefaultValue ElementValue
}

type BootstrapMethodsAttribute struct {
	BootstrapMethods []BootstrapMethod
}

type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

type ModuleAttribute struct {
	ModuleNameIndex    uint16
	ModuleFlags        AccessFlags
	ModuleVersionIndex uint16
	Requires           []ModuleRequires
	Exports            []ModuleExports
	Opens              []ModuleOpens
	Uses               []uint16
	Provides           []ModuleProvides
}

type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        AccessFlags
	RequiresVersionIndex uint16
}

type ModuleExports struct {
	ExportsIndex   uint16
	ExportsFlags   AccessFlags
	ExportsToIndex []uint16
}

type ModuleOpens struct {
	OpensIndex   uint16
	OpensFlags   AccessFlags
	OpensToIndex []uint16
}

type ModuleProvides struct {
	ProvidesIndex     uint16
	ProvidesWithIndex []uint16
}

type ModulePackagesAttribute struct {
	PackageIndex []uint16
}

type ModuleMainClassAttribute struct {
	MainClassIndex uint16
}

type NestHostAttribute struct {
	HostClassIndex uint16
}

type NestMembersAttribute struct {
	Classes []uint16
}

type RecordAttribute struct {
	Components []RecordComponentInfo
}

type RecordComponentInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

type PermittedSubclassesAttribute struct {
	Classes []uint16
}

// CustomAttribute holds an attribute whose name is not in the registry.
type CustomAttribute struct {
	Name  string
	Bytes []byte
}

func (a *AttributeInfo) AsConstantValue() *ConstantValueAttribute {
	v, _ := a.Parsed.(*ConstantValueAttribute)
	return v
}

func (a *AttributeInfo) AsCode() *CodeAttribute {
	v, _ := a.Parsed.(*CodeAttribute)
	return v
}

func (a *AttributeInfo) AsStackMapTable() *StackMapTableAttribute {
	v, _ := a.Parsed.(*StackMapTableAttribute)
	return v
}

func (a *AttributeInfo) AsExceptions() *ExceptionsAttribute {
	v, _ := a.Parsed.(*ExceptionsAttribute)
	return v
}

func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	v, _ := a.Parsed.(*InnerClassesAttribute)
	return v
}

func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	v, _ := a.Parsed.(*EnclosingMethodAttribute)
	return v
}

func (a *AttributeInfo) AsSynthetic() *SyntheticAttribute {
	v, _ := a.Parsed.(*SyntheticAttribute)
	return v
}

func (a *AttributeInfo) AsDeprecated() *DeprecatedAttribute {
	v, _ := a.Parsed.(*DeprecatedAttribute)
	return v
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	v, _ := a.Parsed.(*SignatureAttribute)
	return v
}

func (a *AttributeInfo) AsSourceFile() *SourceFileAttribute {
	v, _ := a.Parsed.(*SourceFileAttribute)
	return v
}

func (a *AttributeInfo) AsSourceDebugExtension() *SourceDebugExtensionAttribute {
	v, _ := a.Parsed.(*SourceDebugExtensionAttribute)
	return v
}

func (a *AttributeInfo) AsLineNumberTable() *LineNumberTableAttribute {
	v, _ := a.Parsed.(*LineNumberTableAttribute)
	return v
}

func (a *AttributeInfo) AsLocalVariableTable() *LocalVariableTableAttribute {
	v, _ := a.Parsed.(*LocalVariableTableAttribute)
	return v
}

func (a *AttributeInfo) AsLocalVariableTypeTable() *LocalVariableTypeTableAttribute {
	v, _ := a.Parsed.(*LocalVariableTypeTableAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeVisibleAnnotations() *RuntimeVisibleAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeVisibleAnnotationsAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeInvisibleAnnotations() *RuntimeInvisibleAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeInvisibleAnnotationsAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeVisibleParameterAnnotations() *RuntimeVisibleParameterAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeVisibleParameterAnnotationsAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeInvisibleParameterAnnotations() *RuntimeInvisibleParameterAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeInvisibleParameterAnnotationsAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeVisibleTypeAnnotations() *RuntimeVisibleTypeAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeVisibleTypeAnnotationsAttribute)
	return v
}

func (a *AttributeInfo) AsRuntimeInvisibleTypeAnnotations() *RuntimeInvisibleTypeAnnotationsAttribute {
	v, _ := a.Parsed.(*RuntimeInvisibleTypeAnnotationsAttribute)
	return v
}

func (a *AttributeInfo) AsAnnotationDefault() *AnnotationDefaultAttribute {
	v, _ := a.Parsed.(*AnnotationDefaultAttribute)
	return v
}

func (a *AttributeInfo) AsBootstrapMethods() *BootstrapMethodsAttribute {
	v, _ := a.Parsed.(*BootstrapMethodsAttribute)
	return v
}

func (a *AttributeInfo) AsMethodParameters() *MethodParametersAttribute {
	v, _ := a.Parsed.(*MethodParametersAttribute)
	return v
}

func (a *AttributeInfo) AsModule() *ModuleAttribute {
	v, _ := a.Parsed.(*ModuleAttribute)
	return v
}

func (a *AttributeInfo) AsModulePackages() *ModulePackagesAttribute {
	v, _ := a.Parsed.(*ModulePackagesAttribute)
	return v
}

func (a *AttributeInfo) AsModuleMainClass() *ModuleMainClassAttribute {
	v, _ := a.Parsed.(*ModuleMainClassAttribute)
	return v
}

func (a *AttributeInfo) AsNestHost() *NestHostAttribute {
	v, _ := a.Parsed.(*NestHostAttribute)
	return v
}

func (a *AttributeInfo) AsNestMembers() *NestMembersAttribute {
	v, _ := a.Parsed.(*NestMembersAttribute)
	return v
}

func (a *AttributeInfo) AsRecord() *RecordAttribute {
	v, _ := a.Parsed.(*RecordAttribute)
	return v
}

func (a *AttributeInfo) AsPermittedSubclasses() *PermittedSubclassesAttribute {
	v, _ := a.Parsed.(*PermittedSubclassesAttribute)
	return v
}

func (a *AttributeInfo) AsCustom() *CustomAttribute {
	v, _ := a.Parsed.(*CustomAttribute)
	return v
}
