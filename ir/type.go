package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ArrayType
	TableType
	ObjectType
	PropertyType
	DocumentType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:     "Null",
		NumberType:   "Number",
		StringType:   "String",
		BoolType:     "Bool",
		ArrayType:    "Array",
		TableType:    "Table",
		ObjectType:   "Object",
		PropertyType: "Property",
		DocumentType: "Document",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":     NullType,
		"Number":   NumberType,
		"String":   StringType,
		"Bool":     BoolType,
		"Array":    ArrayType,
		"Table":    TableType,
		"Object":   ObjectType,
		"Property": PropertyType,
		"Document": DocumentType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		ArrayType,
		TableType,
		ObjectType,
		PropertyType,
		DocumentType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, TableType, ObjectType, PropertyType, DocumentType:
		return false
	default:
		return true
	}
}
