// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package value defines the runtime values of the Quill language.
//
// Values are always handled through pointers and shared freely between
// bindings, lists and call arguments. Nothing mutates a value after it is
// created.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probechain/quill/lang/ast"
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindUnit Kind = iota
	KindInteger
	KindString
	KindList
	KindStatementBlock
	KindExpressionBlock
	KindBuiltin
)

var kindNames = [...]string{
	KindUnit:            "unit",
	KindInteger:         "integer",
	KindString:          "string",
	KindList:            "list",
	KindStatementBlock:  "statement block",
	KindExpressionBlock: "expression block",
	KindBuiltin:         "builtin",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a runtime value. String returns its display form, the text print
// writes for it.
type Value interface {
	Kind() Kind
	String() string
}

// Integer is a 64-bit signed integer.
type Integer struct {
	V int64
}

// String is a text value.
type String struct {
	V string
}

// List is an ordered sequence of shared values.
type List struct {
	Elems []Value
}

// StatementBlock is an unexecuted block of statements kept as data.
type StatementBlock struct {
	Stmts []ast.Node
}

// ExpressionBlock is an unexecuted single-expression block kept as data.
type ExpressionBlock struct {
	Expr ast.Node
}

// Func is the signature of a native function. It receives the evaluated
// arguments in call order.
type Func func(args []Value) (Value, error)

// Builtin is a named native function.
type Builtin struct {
	Name string
	Fn   Func
}

type unit struct{}

// Unit is the single "no value" value.
var Unit Value = unit{}

func NewInteger(n int64) *Integer              { return &Integer{V: n} }
func NewString(s string) *String               { return &String{V: s} }
func NewList(elems ...Value) *List             { return &List{Elems: elems} }
func NewBuiltin(name string, fn Func) *Builtin { return &Builtin{Name: name, Fn: fn} }

func (unit) Kind() Kind             { return KindUnit }
func (*Integer) Kind() Kind         { return KindInteger }
func (*String) Kind() Kind          { return KindString }
func (*List) Kind() Kind            { return KindList }
func (*StatementBlock) Kind() Kind  { return KindStatementBlock }
func (*ExpressionBlock) Kind() Kind { return KindExpressionBlock }
func (*Builtin) Kind() Kind         { return KindBuiltin }

func (unit) String() string       { return "()" }
func (v *Integer) String() string { return strconv.FormatInt(v.V, 10) }
func (v *String) String() string  { return v.V }
func (v *Builtin) String() string { return "<builtin " + v.Name + ">" }

// String renders the list with string elements quoted: [1 "a" [2]].
func (v *List) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		if s, ok := e.(*String); ok {
			parts[i] = strconv.Quote(s.V)
		} else {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v *StatementBlock) String() string {
	return (&ast.StatementBlock{Statements: v.Stmts}).String()
}

func (v *ExpressionBlock) String() string {
	return (&ast.ExpressionBlock{Expr: v.Expr}).String()
}

// Call invokes the builtin with the given arguments.
func (v *Builtin) Call(args []Value) (Value, error) {
	return v.Fn(args)
}
