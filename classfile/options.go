package classfile

// ParsingOptions controls how much work the parser does beyond the
// structural skeleton. The zero value is the default: attribute bodies are
// retained as opaque bytes, signatures stay raw strings, unknown
// attributes are kept, and any major version is accepted.
type ParsingOptions struct {
	// ParseAttributes decodes attribute bodies into their typed variants.
	// When false every attribute is kept as its raw Info bytes only.
	ParseAttributes bool

	// ParseSignatures additionally runs the signature grammar over the
	// string payload of Signature attributes. Only meaningful together
	// with ParseAttributes.
	ParseSignatures bool

	// SkipUnknownAttributes drops attributes whose name is not in the
	// registry instead of retaining them as Custom.
	SkipUnknownAttributes bool

	// Strict rejects class files whose major version lies outside the
	// supported 45..64 range.
	Strict bool
}
