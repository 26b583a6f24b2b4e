package format

import (
	"fmt"

	"github.com/dhamidi/jclass/classfile"
)

// classDocument is the shared dump model behind the JSON and CBOR
// encoders: resolved names, expanded flags, and attribute names, not raw
// pool indices.
type classDocument struct {
	Name         string           `json:"name" cbor:"name"`
	SuperClass   string           `json:"superClass,omitempty" cbor:"superClass,omitempty"`
	Interfaces   []string         `json:"interfaces,omitempty" cbor:"interfaces,omitempty"`
	Version      versionDocument  `json:"version" cbor:"version"`
	Flags        []string         `json:"flags" cbor:"flags"`
	ConstantPool int              `json:"constantPoolSize" cbor:"constantPoolSize"`
	Fields       []memberDocument `json:"fields,omitempty" cbor:"fields,omitempty"`
	Methods      []memberDocument `json:"methods,omitempty" cbor:"methods,omitempty"`
	Attributes   []string         `json:"attributes,omitempty" cbor:"attributes,omitempty"`
}

type versionDocument struct {
	Major uint16 `json:"major" cbor:"major"`
	Minor uint16 `json:"minor" cbor:"minor"`
	Java  string `json:"java" cbor:"java"`
}

type memberDocument struct {
	Name       string   `json:"name" cbor:"name"`
	Descriptor string   `json:"descriptor" cbor:"descriptor"`
	Flags      []string `json:"flags,omitempty" cbor:"flags,omitempty"`
	Attributes []string `json:"attributes,omitempty" cbor:"attributes,omitempty"`
}

func buildClassDocument(cf *classfile.ClassFile) *classDocument {
	doc := &classDocument{
		Name:       cf.ClassName(),
		SuperClass: cf.SuperClassName(),
		Interfaces: cf.InterfaceNames(),
		Version: versionDocument{
			Major: cf.MajorVersion,
			Minor: cf.MinorVersion,
			Java:  cf.JavaVersion(),
		},
		Flags:        cf.AccessFlags.ClassFlagNames(),
		ConstantPool: len(cf.ConstantPool) + 1,
		Attributes:   attributeNames(cf.Attributes),
	}

	for i := range cf.Fields {
		field := &cf.Fields[i]
		doc.Fields = append(doc.Fields, memberDocument{
			Name:       field.Name(cf.ConstantPool),
			Descriptor: field.Descriptor(cf.ConstantPool),
			Flags:      field.AccessFlags.FieldFlagNames(),
			Attributes: attributeNames(field.Attributes),
		})
	}
	for i := range cf.Methods {
		method := &cf.Methods[i]
		doc.Methods = append(doc.Methods, memberDocument{
			Name:       method.Name(cf.ConstantPool),
			Descriptor: method.Descriptor(cf.ConstantPool),
			Flags:      method.AccessFlags.MethodFlagNames(),
			Attributes: attributeNames(method.Attributes),
		})
	}
	return doc
}

func attributeNames(attrs []classfile.AttributeInfo) []string {
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, len(attrs))
	for i := range attrs {
		names[i] = attrs[i].Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("#%d", attrs[i].NameIndex)
		}
	}
	return names
}
