package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/dhamidi/jclass/classfile"
)

func testClass() *classfile.ClassFile {
	return &classfile.ClassFile{
		MinorVersion: 0,
		MajorVersion: 61,
		ConstantPool: classfile.ConstantPool{
			&classfile.ConstantUtf8Info{Raw: []byte("com/example/Greeter")}, // 1
			&classfile.ConstantClassInfo{NameIndex: 1},                      // 2
			&classfile.ConstantUtf8Info{Raw: []byte("java/lang/Object")},    // 3
			&classfile.ConstantClassInfo{NameIndex: 3},                      // 4
			&classfile.ConstantUtf8Info{Raw: []byte("greeting")},            // 5
			&classfile.ConstantUtf8Info{Raw: []byte("Ljava/lang/String;")},  // 6
			&classfile.ConstantUtf8Info{Raw: []byte("greet")},               // 7
			&classfile.ConstantUtf8Info{Raw: []byte("()V")},                 // 8
		},
		AccessFlags: 0x0021,
		ThisClass:   2,
		SuperClass:  4,
		Fields: []classfile.FieldInfo{
			{AccessFlags: 0x0002, NameIndex: 5, DescriptorIndex: 6},
		},
		Methods: []classfile.MethodInfo{
			{AccessFlags: 0x0001, NameIndex: 7, DescriptorIndex: 8},
		},
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(testClass()); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc["name"] != "com/example/Greeter" {
		t.Errorf("name = %v", doc["name"])
	}
	if doc["superClass"] != "java/lang/Object" {
		t.Errorf("superClass = %v", doc["superClass"])
	}
	if !strings.Contains(buf.String(), `"greeting"`) {
		t.Error("expected field name in output")
	}
	if !strings.Contains(buf.String(), `"Java 17"`) {
		t.Error("expected Java version in output")
	}

	fields, ok := doc["fields"].([]interface{})
	if !ok || len(fields) != 1 {
		t.Fatalf("fields = %v", doc["fields"])
	}
	field := fields[0].(map[string]interface{})
	if field["descriptor"] != "Ljava/lang/String;" {
		t.Errorf("field descriptor = %v", field["descriptor"])
	}
}

func TestCBOREncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCBOREncoder(&buf).Encode(testClass()); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var doc map[string]interface{}
	if err := cbor.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid CBOR: %v", err)
	}
	if doc["name"] != "com/example/Greeter" {
		t.Errorf("name = %v", doc["name"])
	}

	methods, ok := doc["methods"].([]interface{})
	if !ok || len(methods) != 1 {
		t.Fatalf("methods = %v", doc["methods"])
	}
}
