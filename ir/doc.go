// Package ir provides the syntax tree for TOON documents.
//
// # Overview
//
// A parsed TOON document is a tree of Node values. The tree is
// semantic: it records keys, values, declared sizes and schemas along
// with the source span of each node, but not the exact original
// formatting (the token stream keeps that).
//
// The IR works as a recursive tagged union, where values are placed in
// fields depending on the node type.
//
// # Node Types
//
//   - DocumentType: the root, an ordered list of top level properties
//   - PropertyType: one key/value pair; duplicate keys are retained
//   - ObjectType: a nested block of properties
//   - ArrayType: inline or expanded array with a declared size
//   - TableType: schema plus delimiter separated rows
//   - StringType, NumberType, BoolType, NullType: scalars
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	s := ir.FromString("hello", `"hello"`)
//	n := ir.FromNumber(42, true, "42")
//	b := ir.FromBool(true)
//	doc := ir.NewDocument()
//	doc.Append(ir.NewProperty("answer", 0, n))
//
// Nodes attached to a parse result are frozen; consumers must treat
// them as read only.
package ir
