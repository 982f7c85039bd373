// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package eval implements the tree-walking evaluator for the Quill language.
//
// Design overview:
//
//   - Evaluation is a plain recursive walk over the AST against a scope
//     chain. The evaluator holds no other state.
//   - Every function call runs inside its own frame; the frame is popped on
//     every exit path, including errors and panics.
//   - Lookup nodes are resolved as named bindings keyed by their canonical
//     source form, so a.b and list::len are ordinary entries in the chain.
//   - Block literals evaluate to block values; they are never executed here.
//   - Runtime failures are returned as *Error values wrapping one of the
//     package sentinels. A Comment node reaching the evaluator panics, since
//     callers must strip comments first.
package eval

import (
	"errors"
	"fmt"

	"github.com/probechain/quill/lang/ast"
	"github.com/probechain/quill/lang/scope"
	"github.com/probechain/quill/lang/value"
	"github.com/probechain/quill/log"
)

var (
	ErrUndefined   = errors.New("undefined variable")
	ErrNotCallable = errors.New("value is not callable")
	ErrRedeclared  = errors.New("variable already declared in this scope")
	ErrBadTarget   = errors.New("invalid assignment target")
)

// Error is an evaluation failure together with the node that caused it.
type Error struct {
	Err  error  // a package sentinel, or the error returned by a builtin
	Node string // canonical source form of the failing node
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Node)
}

func (e *Error) Unwrap() error { return e.Err }

// Evaluator walks statements against a scope chain.
type Evaluator struct {
	chain *scope.Chain
	log   log.Logger
}

// New returns an evaluator over the given chain. The chain is typically
// seeded by builtin.Prelude.
func New(chain *scope.Chain) *Evaluator {
	return &Evaluator{
		chain: chain,
		log:   log.New("pkg", "eval"),
	}
}

// Chain returns the scope chain the evaluator works on.
func (e *Evaluator) Chain() *scope.Chain { return e.chain }

// Run evaluates stmts in order and stops at the first failure.
func (e *Evaluator) Run(stmts []ast.Node) error {
	_, err := e.RunLast(stmts)
	return err
}

// RunLast evaluates stmts in order and returns the value of the last one, or
// Unit when stmts is empty.
func (e *Evaluator) RunLast(stmts []ast.Node) (value.Value, error) {
	last := value.Unit
	for _, stmt := range stmts {
		v, err := e.Eval(stmt)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// Eval evaluates a single node.
func (e *Evaluator) Eval(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return value.NewString(n.Value), nil

	case *ast.IntegerLiteral:
		return value.NewInteger(n.Value), nil

	case *ast.List:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.Eval(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems...), nil

	case *ast.VariableLookup, *ast.AttributeLookup, *ast.MethodLookup:
		return e.lookup(n)

	case *ast.FunctionCall:
		return e.evalCall(n)

	case *ast.StatementBlock:
		return &value.StatementBlock{Stmts: n.Statements}, nil

	case *ast.ExpressionBlock:
		return &value.ExpressionBlock{Expr: n.Expr}, nil

	case *ast.VariableCreation:
		v, err := e.Eval(n.Value)
		if err != nil {
			return nil, err
		}
		if e.chain.Define(n.Ident, v) {
			return nil, &Error{Err: ErrRedeclared, Node: n.Ident}
		}
		e.log.Trace("Defined variable", "name", n.Ident, "kind", v.Kind())
		return value.Unit, nil

	case *ast.Assignment:
		v, err := e.Eval(n.Value)
		if err != nil {
			return nil, err
		}
		target, ok := n.Target.(*ast.VariableLookup)
		if !ok {
			return nil, &Error{Err: ErrBadTarget, Node: n.Target.String()}
		}
		if _, ok := e.chain.Lookup(target.Ident); !ok {
			return nil, &Error{Err: ErrUndefined, Node: target.Ident}
		}
		e.chain.Assign(target.Ident, v)
		return value.Unit, nil

	case *ast.Comment:
		panic("eval: comment reached the evaluator")

	default:
		panic(fmt.Sprintf("eval: unhandled node type %T", node))
	}
}

func (e *Evaluator) lookup(n ast.Node) (value.Value, error) {
	name := n.String()
	v, ok := e.chain.Lookup(name)
	if !ok {
		return nil, &Error{Err: ErrUndefined, Node: name}
	}
	return v, nil
}

func (e *Evaluator) evalCall(n *ast.FunctionCall) (value.Value, error) {
	callee, err := e.Eval(n.Func)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	fn, ok := callee.(*value.Builtin)
	if !ok {
		return nil, &Error{Err: ErrNotCallable, Node: n.Func.String() + " (" + callee.Kind().String() + ")"}
	}
	e.log.Trace("Calling builtin", "name", fn.Name, "args", len(args), "depth", e.chain.Depth()+1)
	result, err := e.invoke(fn, args)
	if err != nil {
		return nil, &Error{Err: err, Node: n.String()}
	}
	if result == nil {
		result = value.Unit
	}
	return result, nil
}

// invoke runs fn inside a fresh frame.
func (e *Evaluator) invoke(fn *value.Builtin, args []value.Value) (value.Value, error) {
	e.chain.Push()
	defer e.chain.Pop()
	return fn.Call(args)
}
