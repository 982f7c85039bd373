// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/probechain/quill/lang/ast"
)

func TestDisplay(t *testing.T) {
	nested := NewList(NewInteger(2), NewString("x y"))
	tests := []struct {
		v    Value
		want string
	}{
		{Unit, "()"},
		{NewInteger(-42), "-42"},
		{NewString("raw text"), "raw text"},
		{NewList(), "[]"},
		{NewList(NewInteger(1), NewString("a"), nested, Unit), `[1 "a" [2 "x y"] ()]`},
		{&StatementBlock{}, "{}"},
		{&StatementBlock{Stmts: []ast.Node{
			&ast.VariableCreation{Ident: "x", Value: &ast.IntegerLiteral{Value: 1}},
		}}, "{ var x = 1; }"},
		{&ExpressionBlock{Expr: &ast.StringLiteral{Value: "s"}}, `{ "s" }`},
		{NewBuiltin("print", nil), "<builtin print>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String(), "display of %s", tt.v.Kind())
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindUnit, Unit.Kind())
	assert.Equal(t, KindInteger, NewInteger(0).Kind())
	assert.Equal(t, KindString, NewString("").Kind())
	assert.Equal(t, KindList, NewList().Kind())
	assert.Equal(t, KindStatementBlock, (&StatementBlock{}).Kind())
	assert.Equal(t, KindExpressionBlock, (&ExpressionBlock{}).Kind())
	assert.Equal(t, KindBuiltin, NewBuiltin("f", nil).Kind())

	assert.Equal(t, "expression block", KindExpressionBlock.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestUnitIsSingleton(t *testing.T) {
	var v Value = unit{}
	assert.True(t, v == Unit)
}

func TestBuiltinCall(t *testing.T) {
	errBoom := errors.New("boom")
	count := NewBuiltin("count", func(args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, errBoom
		}
		return NewInteger(int64(len(args))), nil
	})
	got, err := count.Call([]Value{Unit, Unit})
	assert.NoError(t, err)
	assert.Equal(t, NewInteger(2), got)

	_, err = count.Call(nil)
	assert.ErrorIs(t, err, errBoom)
}

func TestSharedElements(t *testing.T) {
	s := NewString("shared")
	a := NewList(s)
	b := NewList(s, a)
	assert.Same(t, a.Elems[0], b.Elems[0])
	assert.Same(t, a, b.Elems[1])
}
