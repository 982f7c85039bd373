// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the Quill language.
//
// Design overview:
//
//   - Every node implements Node. Quill has no separate statement and
//     expression hierarchies: a function call or method lookup may appear in
//     either position, so a single interface covers both.
//   - String renders a node in canonical source form. Lookup nodes use it as
//     the name they resolve to at run time.
//   - Trees are immutable once built; passes that change the shape (such as
//     StripComments) build new nodes.
package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// Node is the base interface that every AST node must implement.
type Node interface {
	// String returns the node in canonical source form.
	String() string

	astNode()
}

// ---------------------------------------------------------------------------
// Literals and comments
// ---------------------------------------------------------------------------

// StringLiteral is a double-quoted string: "hello".
type StringLiteral struct {
	Value string
}

func (n *StringLiteral) astNode()       {}
func (n *StringLiteral) String() string { return `"` + n.Value + `"` }

// IntegerLiteral is a 64-bit signed integer literal: 42, -5.
type IntegerLiteral struct {
	Value int64
}

func (n *IntegerLiteral) astNode()       {}
func (n *IntegerLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

// Comment is a '#' line comment kept by the parser. Comments are never
// evaluated.
type Comment struct {
	Text string
}

func (n *Comment) astNode()       {}
func (n *Comment) String() string { return "#" + n.Text }

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// VariableLookup is a bare identifier reference.
type VariableLookup struct {
	Ident string
}

func (n *VariableLookup) astNode()       {}
func (n *VariableLookup) String() string { return n.Ident }

// AttributeLookup is a single static field access: expr.attr.
type AttributeLookup struct {
	Expr Node
	Attr string
}

func (n *AttributeLookup) astNode()       {}
func (n *AttributeLookup) String() string { return n.Expr.String() + "." + n.Attr }

// MethodLookup is a single method dispatch: expr::meth.
type MethodLookup struct {
	Expr   Node
	Method string
}

func (n *MethodLookup) astNode()       {}
func (n *MethodLookup) String() string { return n.Expr.String() + "::" + n.Method }

// ---------------------------------------------------------------------------
// Compound expressions
// ---------------------------------------------------------------------------

// FunctionCall applies Func to positional Args. Its String form is the
// parenthesised expression form; Format renders the statement form.
type FunctionCall struct {
	Func Node
	Args []Node
}

func (n *FunctionCall) astNode()       {}
func (n *FunctionCall) String() string { return "(" + n.call() + ")" }

func (n *FunctionCall) call() string {
	parts := make([]string, 0, len(n.Args)+1)
	parts = append(parts, n.Func.String())
	for _, a := range n.Args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

// List is an ordered sequence of expressions: [a b c].
type List struct {
	Elements []Node
}

func (n *List) astNode() {}
func (n *List) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// StatementBlock is a brace-delimited sequence of statements. An empty
// block `{}` is a StatementBlock with no statements.
type StatementBlock struct {
	Statements []Node
}

func (n *StatementBlock) astNode() {}
func (n *StatementBlock) String() string {
	if len(n.Statements) == 0 {
		return "{}"
	}
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range n.Statements {
		out.WriteString(statementString(s))
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionBlock is a block holding a single bare expression: { expr }.
type ExpressionBlock struct {
	Expr Node
}

func (n *ExpressionBlock) astNode()       {}
func (n *ExpressionBlock) String() string { return "{ " + n.Expr.String() + " }" }

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// VariableCreation declares a new binding: var ident = value;
type VariableCreation struct {
	Ident string
	Value Node
}

func (n *VariableCreation) astNode() {}
func (n *VariableCreation) String() string {
	return "var " + n.Ident + " = " + n.Value.String() + ";"
}

// Assignment rebinds an existing place: target = value;
type Assignment struct {
	Target Node
	Value  Node
}

func (n *Assignment) astNode() {}
func (n *Assignment) String() string {
	return n.Target.String() + " = " + n.Value.String() + ";"
}

// ---------------------------------------------------------------------------
// Program helpers
// ---------------------------------------------------------------------------

// statementString renders a node in statement position, adding the
// terminator the grammar requires there.
func statementString(n Node) string {
	switch n := n.(type) {
	case *FunctionCall:
		if len(n.Args) == 0 {
			return n.String() + ";"
		}
		return n.call() + ";"
	case *MethodLookup:
		return n.String() + ";"
	case *Comment:
		return n.String() + "\n"
	}
	return n.String()
}

// Format renders a statement list in canonical source form, one statement
// per line.
func Format(stmts []Node) string {
	var out bytes.Buffer
	for _, s := range stmts {
		out.WriteString(strings.TrimSuffix(statementString(s), "\n"))
		out.WriteByte('\n')
	}
	return out.String()
}
