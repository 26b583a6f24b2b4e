// Package signature decodes the generic type signatures embedded in class
// files as Modified-UTF-8 strings: class, method, and field signatures per
// the grammar in JVMS §4.7.9.1. Parsing is a separate pass from class file
// parsing so consumers that do not care about generics never pay for it.
package signature

import "strings"

// Signature is implemented by the three top-level signature kinds. String
// re-emits the exact text the signature was parsed from.
type Signature interface {
	String() string
	signatureNode()
}

type ClassSignature struct {
	TypeParameters []FormalTypeParameter
	SuperClass     *ClassType
	Interfaces     []*ClassType
}

func (s *ClassSignature) signatureNode() {}

func (s *ClassSignature) String() string {
	var sb strings.Builder
	writeTypeParameters(&sb, s.TypeParameters)
	sb.WriteString(s.SuperClass.String())
	for _, iface := range s.Interfaces {
		sb.WriteString(iface.String())
	}
	return sb.String()
}

type MethodSignature struct {
	TypeParameters []FormalTypeParameter
	Parameters     []Type
	ReturnType     Type
	Throws         []ThrowsType
}

func (s *MethodSignature) signatureNode() {}

func (s *MethodSignature) String() string {
	var sb strings.Builder
	writeTypeParameters(&sb, s.TypeParameters)
	sb.WriteByte('(')
	for _, p := range s.Parameters {
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	sb.WriteString(s.ReturnType.String())
	for _, t := range s.Throws {
		sb.WriteByte('^')
		sb.WriteString(t.String())
	}
	return sb.String()
}

type FieldSignature struct {
	Type ReferenceType
}

func (s *FieldSignature) signatureNode() {}

func (s *FieldSignature) String() string {
	return s.Type.String()
}

// FormalTypeParameter is one entry of a <...> type parameter list. A nil
// ClassBound means the parameter had only interface bounds (the class
// bound position was empty, as in "T::Ljava/lang/Comparable;").
type FormalTypeParameter struct {
	Name            string
	ClassBound      ReferenceType
	InterfaceBounds []ReferenceType
}

func (p FormalTypeParameter) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteByte(':')
	if p.ClassBound != nil {
		sb.WriteString(p.ClassBound.String())
	}
	for _, b := range p.InterfaceBounds {
		sb.WriteByte(':')
		sb.WriteString(b.String())
	}
	return sb.String()
}

func writeTypeParameters(sb *strings.Builder, params []FormalTypeParameter) {
	if len(params) == 0 {
		return
	}
	sb.WriteByte('<')
	for _, p := range params {
		sb.WriteString(p.String())
	}
	sb.WriteByte('>')
}

// Type is either a BaseType or a ReferenceType.
type Type interface {
	String() string
	isType()
}

// BaseType is a primitive type descriptor character, or Void in a method
// return position.
type BaseType byte

const (
	Byte    BaseType = 'B'
	Char    BaseType = 'C'
	Double  BaseType = 'D'
	Float   BaseType = 'F'
	Int     BaseType = 'I'
	Long    BaseType = 'J'
	Short   BaseType = 'S'
	Boolean BaseType = 'Z'
	Void    BaseType = 'V'
)

func (b BaseType) isType() {}

func (b BaseType) String() string { return string(byte(b)) }

// ReferenceType is a class type, a type variable, or an array type.
type ReferenceType interface {
	Type
	isReferenceType()
}

// ThrowsType is what may follow '^' in a method signature: a class type or
// a type variable.
type ThrowsType interface {
	String() string
	isThrowsType()
}

// ClassType is a possibly parameterized class reference, including any
// nested inner class chain: "Ljava/util/Map<TK;TV;>.Entry<TK;TV;>;".
type ClassType struct {
	Package       string // slash-separated, "" for the default package
	Name          string
	TypeArguments []TypeArgument
	Inner         []InnerClassType
}

type InnerClassType struct {
	Name          string
	TypeArguments []TypeArgument
}

func (c *ClassType) isType()          {}
func (c *ClassType) isReferenceType() {}
func (c *ClassType) isThrowsType()    {}

func (c *ClassType) String() string {
	var sb strings.Builder
	sb.WriteByte('L')
	if c.Package != "" {
		sb.WriteString(c.Package)
		sb.WriteByte('/')
	}
	sb.WriteString(c.Name)
	writeTypeArguments(&sb, c.TypeArguments)
	for _, inner := range c.Inner {
		sb.WriteByte('.')
		sb.WriteString(inner.Name)
		writeTypeArguments(&sb, inner.TypeArguments)
	}
	sb.WriteByte(';')
	return sb.String()
}

type TypeVariable struct {
	Name string
}

func (v *TypeVariable) isType()          {}
func (v *TypeVariable) isReferenceType() {}
func (v *TypeVariable) isThrowsType()    {}

func (v *TypeVariable) String() string { return "T" + v.Name + ";" }

type ArrayType struct {
	Component Type
}

func (a *ArrayType) isType()          {}
func (a *ArrayType) isReferenceType() {}

func (a *ArrayType) String() string { return "[" + a.Component.String() }

// TypeArgument is one entry of a <...> type argument list: the unbounded
// wildcard '*', a '+'/'-' bounded wildcard, or a concrete reference type.
type TypeArgument interface {
	String() string
	isTypeArgument()
}

type WildcardArgument struct{}

func (WildcardArgument) isTypeArgument() {}

func (WildcardArgument) String() string { return "*" }

type WildcardBound byte

const (
	BoundExtends WildcardBound = '+'
	BoundSuper   WildcardBound = '-'
)

type BoundedArgument struct {
	Bound WildcardBound
	Type  ReferenceType
}

func (a BoundedArgument) isTypeArgument() {}

func (a BoundedArgument) String() string { return string(byte(a.Bound)) + a.Type.String() }

type ConcreteArgument struct {
	Type ReferenceType
}

func (a ConcreteArgument) isTypeArgument() {}

func (a ConcreteArgument) String() string { return a.Type.String() }

func writeTypeArguments(sb *strings.Builder, args []TypeArgument) {
	if len(args) == 0 {
		return
	}
	sb.WriteByte('<')
	for _, a := range args {
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
}
