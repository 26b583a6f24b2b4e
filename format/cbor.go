package format

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/dhamidi/jclass/classfile"
)

// CBOREncoder emits the same document as JSONEncoder in CBOR, for piping
// class dumps into tools that want a compact binary form.
type CBOREncoder struct {
	w  io.Writer
	cf *classfile.ClassFile
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	data, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

func (e *CBOREncoder) MarshalText() ([]byte, error) {
	return cbor.Marshal(buildClassDocument(e.cf))
}
