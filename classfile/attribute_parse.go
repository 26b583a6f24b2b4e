package classfile

import (
	"fmt"

	"github.com/dhamidi/jclass/signature"
)

// readAttribute decodes one attribute at the reader's position. A nil
// attribute with a nil error means the attribute was dropped
// (SkipUnknownAttributes). Dispatch is by name only; ctx is recorded as
// metadata on the envelope.
func readAttribute(r *reader, cp ConstantPool, ctx AttributeContext, opt ParsingOptions) (*AttributeInfo, error) {
	nameIndex := r.readU2()
	length := r.readU4()
	if r.err != nil {
		return nil, r.err
	}

	name, err := cp.Utf8(nameIndex)
	if err != nil {
		return nil, fmt.Errorf("resolve attribute name: %w", err)
	}

	info := r.readBytes(int(length))
	if r.err != nil {
		return nil, r.err
	}

	attr := &AttributeInfo{
		NameIndex: nameIndex,
		Name:      name,
		Context:   ctx,
		Info:      info,
	}

	known := isKnownAttribute(name)
	if !known && opt.SkipUnknownAttributes {
		return nil, nil
	}
	if !opt.ParseAttributes {
		return attr, nil
	}
	if !known {
		attr.Parsed = &CustomAttribute{Name: name, Bytes: info}
		return attr, nil
	}

	sub := newReader(info)
	parsed, err := parseAttributeBody(sub, cp, name, ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", name, err)
	}
	if sub.err != nil {
		return nil, fmt.Errorf("attribute %s: %w", name, sub.err)
	}
	if consumed := sub.offset(); consumed != len(info) {
		return nil, &AttributeLengthMismatchError{
			Name:     name,
			Declared: length,
			Consumed: uint32(consumed),
		}
	}

	attr.Parsed = parsed
	return attr, nil
}

// readAttributeList reads a u16 count followed by that many attributes.
func readAttributeList(r *reader, cp ConstantPool, ctx AttributeContext, opt ParsingOptions) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	attrs := make([]AttributeInfo, 0, count)
	for i := uint16(0); i < count; i++ {
		attr, err := readAttribute(r, cp, ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		if attr != nil {
			attrs = append(attrs, *attr)
		}
	}
	return attrs, nil
}

var knownAttributes = map[string]bool{
	"ConstantValue":                        true,
	"Code":                                 true,
	"StackMapTable":                        true,
	"Exceptions":                           true,
	"InnerClasses":                         true,
	"EnclosingMethod":                      true,
	"Synthetic":                            true,
	"Signature":                            true,
	"SourceFile":                           true,
	"SourceDebugExtension":                 true,
	"LineNumberTable":                      true,
	"LocalVariableTable":                   true,
	"LocalVariableTypeTable":               true,
	"Deprecated":                           true,
	"RuntimeVisibleAnnotations":            true,
	"RuntimeInvisibleAnnotations":          true,
	"RuntimeVisibleParameterAnnotations":   true,
	"RuntimeInvisibleParameterAnnotations": true,
	"RuntimeVisibleTypeAnnotations":        true,
	"RuntimeInvisibleTypeAnnotations":      true,
	"AnnotationDefault":                    true,
	"BootstrapMethods":                     true,
	"MethodParameters":                     true,
	"Module":                               true,
	"ModulePackages":                       true,
	"ModuleMainClass":                      true,
	"NestHost":                             true,
	"NestMembers":                          true,
	"Record":                               true,
	"PermittedSubclasses":                  true,
}

func isKnownAttribute(name string) bool {
	return knownAttributes[name]
}

func parseAttributeBody(r *reader, cp ConstantPool, name string, ctx AttributeContext, opt ParsingOptions) (interface{}, error) {
	switch name {
	case "ConstantValue":
		return &ConstantValueAttribute{ConstantValueIndex: r.readU2()}, nil
	case "Code":
		return parseCodeAttribute(r, cp, opt)
	case "StackMapTable":
		return parseStackMapTableAttribute(r)
	case "Exceptions":
		return &ExceptionsAttribute{ExceptionIndexTable: readU2Table(r)}, nil
	case "InnerClasses":
		return parseInnerClassesAttribute(r)
	case "EnclosingMethod":
		return &EnclosingMethodAttribute{
			ClassIndex:  r.readU2(),
			MethodIndex: r.readU2(),
		}, nil
	case "Synthetic":
		return &SyntheticAttribute{}, nil
	case "Deprecated":
		return &DeprecatedAttribute{}, nil
	case "Signature":
		return parseSignatureAttribute(r, cp, ctx, opt)
	case "SourceFile":
		return &SourceFileAttribute{SourceFileIndex: r.readU2()}, nil
	case "SourceDebugExtension":
		return &SourceDebugExtensionAttribute{DebugExtension: r.readBytes(r.remaining())}, nil
	case "LineNumberTable":
		return parseLineNumberTableAttribute(r)
	case "LocalVariableTable":
		return parseLocalVariableTableAttribute(r)
	case "LocalVariableTypeTable":
		return parseLocalVariableTypeTableAttribute(r)
	case "RuntimeVisibleAnnotations":
		annotations, err := readAnnotationList(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeVisibleAnnotationsAttribute{Annotations: annotations}, nil
	case "RuntimeInvisibleAnnotations":
		annotations, err := readAnnotationList(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeInvisibleAnnotationsAttribute{Annotations: annotations}, nil
	case "RuntimeVisibleParameterAnnotations":
		parameters, err := readParameterAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeVisibleParameterAnnotationsAttribute{ParameterAnnotations: parameters}, nil
	case "RuntimeInvisibleParameterAnnotations":
		parameters, err := readParameterAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeInvisibleParameterAnnotationsAttribute{ParameterAnnotations: parameters}, nil
	case "RuntimeVisibleTypeAnnotations":
		annotations, err := readTypeAnnotationList(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeVisibleTypeAnnotationsAttribute{Annotations: annotations}, nil
	case "RuntimeInvisibleTypeAnnotations":
		annotations, err := readTypeAnnotationList(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeInvisibleTypeAnnotationsAttribute{Annotations: annotations}, nil
	case "AnnotationDefault":
		value, err := readElementValue(r)
		if err != nil {
			return nil, err
		}
		return &AnnotationDefaultAttribute{DefaultValue: value}, nil
	case "BootstrapMethods":
		return parseBootstrapMethodsAttribute(r)
	case "MethodParameters":
		return parseMethodParametersAttribute(r)
	case "Module":
		return parseModuleAttribute(r)
	case "ModulePackages":
		return &ModulePackagesAttribute{PackageIndex: readU2Table(r)}, nil
	case "ModuleMainClass":
		return &ModuleMainClassAttribute{MainClassIndex: r.readU2()}, nil
	case "NestHost":
		return &NestHostAttribute{HostClassIndex: r.readU2()}, nil
	case "NestMembers":
		return &NestMembersAttribute{Classes: readU2Table(r)}, nil
	case "Record":
		return parseRecordAttribute(r, cp, opt)
	case "PermittedSubclasses":
		return &PermittedSubclassesAttribute{Classes: readU2Table(r)}, nil
	default:
		return nil, fmt.Errorf("no decoder registered for attribute %s", name)
	}
}

func readU2Table(r *reader) []uint16 {
	count := r.readU2()
	if r.err != nil {
		return nil
	}
	table := make([]uint16, 0, count)
	for i := uint16(0); i < count; i++ {
		table = append(table, r.readU2())
	}
	return table
}

func parseCodeAttribute(r *reader, cp ConstantPool, opt ParsingOptions) (*CodeAttribute, error) {
	code := &CodeAttribute{
		MaxStack:  r.readU2(),
		MaxLocals: r.readU2(),
	}
	codeLength := r.readU4()
	if r.err != nil {
		return nil, r.err
	}
	code.Code = r.readBytes(int(codeLength))

	exceptionTableLength := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	code.ExceptionTable = make([]ExceptionTableEntry, 0, exceptionTableLength)
	for i := uint16(0); i < exceptionTableLength; i++ {
		code.ExceptionTable = append(code.ExceptionTable, ExceptionTableEntry{
			StartPC:   r.readU2(),
			EndPC:     r.readU2(),
			HandlerPC: r.readU2(),
			CatchType: r.readU2(),
		})
	}
	if r.err != nil {
		return nil, r.err
	}

	attrs, err := readAttributeList(r, cp, ContextCode, opt)
	if err != nil {
		return nil, err
	}
	code.Attributes = attrs
	return code, nil
}

func parseStackMapTableAttribute(r *reader) (*StackMapTableAttribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	smt := &StackMapTableAttribute{Frames: make([]StackMapFrame, 0, count)}
	for i := uint16(0); i < count; i++ {
		frame, err := readStackMapFrame(r)
		if err != nil {
			return nil, err
		}
		smt.Frames = append(smt.Frames, frame)
	}
	return smt, nil
}

func parseInnerClassesAttribute(r *reader) (*InnerClassesAttribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	ic := &InnerClassesAttribute{Classes: make([]InnerClassEntry, 0, count)}
	for i := uint16(0); i < count; i++ {
		ic.Classes = append(ic.Classes, InnerClassEntry{
			InnerClassInfoIndex:   r.readU2(),
			OuterClassInfoIndex:   r.readU2(),
			InnerNameIndex:        r.readU2(),
			InnerClassAccessFlags: AccessFlags(r.readU2()),
		})
	}
	return ic, r.err
}

func parseSignatureAttribute(r *reader, cp ConstantPool, ctx AttributeContext, opt ParsingOptions) (*SignatureAttribute, error) {
	attr := &SignatureAttribute{SignatureIndex: r.readU2()}
	if r.err != nil || !opt.ParseSignatures {
		return attr, r.err
	}

	raw, err := cp.Utf8(attr.SignatureIndex)
	if err != nil {
		return nil, err
	}

	var parsed signature.Signature
	switch ctx {
	case ContextClass:
		parsed, err = signature.ParseClassSignature(raw)
	case ContextMethod:
		parsed, err = signature.ParseMethodSignature(raw)
	default:
		parsed, err = signature.ParseFieldSignature(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse signature %q: %w", raw, err)
	}
	attr.Parsed = parsed
	return attr, nil
}

func parseLineNumberTableAttribute(r *reader) (*LineNumberTableAttribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	lnt := &LineNumberTableAttribute{LineNumberTable: make([]LineNumberEntry, 0, count)}
	for i := uint16(0); i < count; i++ {
		lnt.LineNumberTable = append(lnt.LineNumberTable, LineNumberEntry{
			StartPC:    r.readU2(),
			LineNumber: r.readU2(),
		})
	}
	return lnt, r.err
}

func parseLocalVariableTableAttribute(r *reader) (*LocalVariableTableAttribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	lvt := &LocalVariableTableAttribute{LocalVariableTable: make([]LocalVariableEntry, 0, count)}
	for i := uint16(0); i < count; i++ {
		lvt.LocalVariableTable = append(lvt.LocalVariableTable, LocalVariableEntry{
			StartPC:         r.readU2(),
			Length:          r.readU2(),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Index:           r.readU2(),
		})
	}
	return lvt, r.err
}

func parseLocalVariableTypeTableAttribute(r *reader) (*LocalVariableTypeTableAttribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	lvtt := &LocalVariableTypeTableAttribute{LocalVariableTypeTable: make([]LocalVariableTypeEntry, 0, count)}
	for i := uint16(0); i < count; i++ {
		lvtt.LocalVariableTypeTable = append(lvtt.LocalVariableTypeTable, LocalVariableTypeEntry{
			StartPC:        r.readU2(),
			Length:         r.readU2(),
			NameIndex:      r.readU2(),
			SignatureIndex: r.readU2(),
			Index:          r.readU2(),
		})
	}
	return lvtt, r.err
}

func readAnnotationList(r *reader) ([]Annotation, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	annotations := make([]Annotation, 0, count)
	for i := uint16(0); i < count; i++ {
		ann, err := readAnnotation(r)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, ann)
	}
	return annotations, nil
}

func readParameterAnnotations(r *reader) ([][]Annotation, error) {
	numParameters := r.readU1()
	if r.err != nil {
		return nil, r.err
	}
	parameters := make([][]Annotation, 0, numParameters)
	for i := uint8(0); i < numParameters; i++ {
		annotations, err := readAnnotationList(r)
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, annotations)
	}
	return parameters, nil
}

func readTypeAnnotationList(r *reader) ([]TypeAnnotation, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	annotations := make([]TypeAnnotation, 0, count)
	for i := uint16(0); i < count; i++ {
		ann, err := readTypeAnnotation(r)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, ann)
	}
	return annotations, nil
}

func parseBootstrapMethodsAttribute(r *reader) (*BootstrapMethodsAttribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	bm := &BootstrapMethodsAttribute{BootstrapMethods: make([]BootstrapMethod, 0, count)}
	for i := uint16(0); i < count; i++ {
		method := BootstrapMethod{BootstrapMethodRef: r.readU2()}
		method.BootstrapArguments = readU2Table(r)
		if r.err != nil {
			return nil, r.err
		}
		bm.BootstrapMethods = append(bm.BootstrapMethods, method)
	}
	return bm, nil
}

func parseMethodParametersAttribute(r *reader) (*MethodParametersAttribute, error) {
	count := r.readU1()
	if r.err != nil {
		return nil, r.err
	}
	mp := &MethodParametersAttribute{Parameters: make([]MethodParameter, 0, count)}
	for i := uint8(0); i < count; i++ {
		mp.Parameters = append(mp.Parameters, MethodParameter{
			NameIndex:   r.readU2(),
			AccessFlags: AccessFlags(r.readU2()),
		})
	}
	return mp, r.err
}

func parseModuleAttribute(r *reader) (*ModuleAttribute, error) {
	m := &ModuleAttribute{
		ModuleNameIndex:    r.readU2(),
		ModuleFlags:        AccessFlags(r.readU2()),
		ModuleVersionIndex: r.readU2(),
	}

	requiresCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	m.Requires = make([]ModuleRequires, 0, requiresCount)
	for i := uint16(0); i < requiresCount; i++ {
		m.Requires = append(m.Requires, ModuleRequires{
			RequiresIndex:        r.readU2(),
			RequiresFlags:        AccessFlags(r.readU2()),
			RequiresVersionIndex: r.readU2(),
		})
	}

	exportsCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	m.Exports = make([]ModuleExports, 0, exportsCount)
	for i := uint16(0); i < exportsCount; i++ {
		export := ModuleExports{
			ExportsIndex: r.readU2(),
			ExportsFlags: AccessFlags(r.readU2()),
		}
		export.ExportsToIndex = readU2Table(r)
		m.Exports = append(m.Exports, export)
	}

	opensCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	m.Opens = make([]ModuleOpens, 0, opensCount)
	for i := uint16(0); i < opensCount; i++ {
		opens := ModuleOpens{
			OpensIndex: r.readU2(),
			OpensFlags: AccessFlags(r.readU2()),
		}
		opens.OpensToIndex = readU2Table(r)
		m.Opens = append(m.Opens, opens)
	}

	m.Uses = readU2Table(r)

	providesCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	m.Provides = make([]ModuleProvides, 0, providesCount)
	for i := uint16(0); i < providesCount; i++ {
		provides := ModuleProvides{ProvidesIndex: r.readU2()}
		provides.ProvidesWithIndex = readU2Table(r)
		m.Provides = append(m.Provides, provides)
	}

	return m, r.err
}

func parseRecordAttribute(r *reader, cp ConstantPool, opt ParsingOptions) (*RecordAttribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	rec := &RecordAttribute{Components: make([]RecordComponentInfo, 0, count)}
	for i := uint16(0); i < count; i++ {
		component := RecordComponentInfo{
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
		attrs, err := readAttributeList(r, cp, ContextRecordComponent, opt)
		if err != nil {
			return nil, fmt.Errorf("record component %d: %w", i, err)
		}
		component.Attributes = attrs
		rec.Components = append(rec.Components, component)
	}
	return rec, nil
}
