package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jclass/classfile"
)

type JSONEncoder struct {
	w  io.Writer
	cf *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildClassDocument(e.cf), "", "  ")
}
