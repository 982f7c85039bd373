// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import "fmt"

// Inspect traverses the tree rooted at n in depth-first order. If f returns
// false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *StringLiteral, *IntegerLiteral, *Comment, *VariableLookup:
		// leaves
	case *AttributeLookup:
		Inspect(n.Expr, f)
	case *MethodLookup:
		Inspect(n.Expr, f)
	case *FunctionCall:
		Inspect(n.Func, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *List:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *StatementBlock:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *ExpressionBlock:
		Inspect(n.Expr, f)
	case *VariableCreation:
		Inspect(n.Value, f)
	case *Assignment:
		Inspect(n.Target, f)
		Inspect(n.Value, f)
	default:
		panic(fmt.Sprintf("unhandled case in ast.Inspect: %T", n))
	}
}

// StripComments returns stmts with every Comment removed, including those
// nested in statement blocks. Nodes without comments are shared, not copied.
func StripComments(stmts []Node) []Node {
	out := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		if _, ok := s.(*Comment); ok {
			continue
		}
		out = append(out, stripNode(s))
	}
	return out
}

func stripNode(n Node) Node {
	if !hasComments(n) {
		return n
	}
	switch n := n.(type) {
	case *AttributeLookup:
		return &AttributeLookup{Expr: stripNode(n.Expr), Attr: n.Attr}
	case *MethodLookup:
		return &MethodLookup{Expr: stripNode(n.Expr), Method: n.Method}
	case *FunctionCall:
		return &FunctionCall{Func: stripNode(n.Func), Args: stripAll(n.Args)}
	case *List:
		return &List{Elements: stripAll(n.Elements)}
	case *StatementBlock:
		return &StatementBlock{Statements: StripComments(n.Statements)}
	case *ExpressionBlock:
		return &ExpressionBlock{Expr: stripNode(n.Expr)}
	case *VariableCreation:
		return &VariableCreation{Ident: n.Ident, Value: stripNode(n.Value)}
	case *Assignment:
		return &Assignment{Target: stripNode(n.Target), Value: stripNode(n.Value)}
	default:
		panic(fmt.Sprintf("unhandled case in ast.stripNode: %T", n))
	}
}

func stripAll(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = stripNode(n)
	}
	return out
}

// hasComments reports whether any Comment appears in the tree rooted at n.
func hasComments(n Node) bool {
	found := false
	Inspect(n, func(n Node) bool {
		if _, ok := n.(*Comment); ok {
			found = true
		}
		return !found
	})
	return found
}
