package format

import (
	"encoding"

	"github.com/dhamidi/jclass/classfile"
)

// Encoder turns a decoded class file into an output document.
type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}
