// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package interp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/quill/lang/ast"
	"github.com/probechain/quill/lang/check"
	"github.com/probechain/quill/lang/eval"
	"github.com/probechain/quill/lang/lexer"
	"github.com/probechain/quill/lang/parser"
	"github.com/probechain/quill/lang/value"
)

func newInterp(t *testing.T, cfg Config) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	in, err := New(cfg, &out)
	require.NoError(t, err)
	return in, &out
}

func TestRunProgram(t *testing.T) {
	in, out := newInterp(t, DefaultConfig)
	src := `
# Greets the world.
var who = "world";
print "hello, " who; # trailing
var items = [1 "two" { 3 }];
print items;
`
	require.NoError(t, in.Run("hello.ql", src))
	assert.Equal(t, "hello, world\n[1 \"two\" { 3 }]\n", out.String())
}

func TestEvalKeepsScope(t *testing.T) {
	in, out := newInterp(t, DefaultConfig)

	v, err := in.Eval("var x = 5;")
	require.NoError(t, err)
	assert.Equal(t, value.Unit, v)

	_, err = in.Eval("x;")
	require.Error(t, err, "a bare variable is not a statement")
	assert.ErrorIs(t, err, parser.ErrParse)

	v, err = in.Eval("(print x);")
	require.NoError(t, err)
	assert.Equal(t, value.Unit, v)
	assert.Equal(t, "5\n", out.String())

	got, ok := in.Scope().Lookup("x")
	require.True(t, ok)
	assert.Equal(t, value.NewInteger(5), got)
}

func TestEvalEmpty(t *testing.T) {
	in, _ := newInterp(t, DefaultConfig)
	v, err := in.Eval("  # nothing here\n")
	require.NoError(t, err)
	assert.Equal(t, value.Unit, v)
}

func TestCheckStopsRun(t *testing.T) {
	in, out := newInterp(t, DefaultConfig)
	err := in.Run("dup.ql", `print "side effect"; var x = 1; var x = 2;`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheck)

	var checkErr *CheckError
	require.True(t, errors.As(err, &checkErr))
	require.Len(t, checkErr.Issues, 1)
	assert.Equal(t, check.DuplicateDeclaration, checkErr.Issues[0].Code)
	assert.Empty(t, out.String(), "nothing runs when the check fails")
}

func TestRuntimeFailureWithoutCheck(t *testing.T) {
	cfg := DefaultConfig
	cfg.Check = false
	in, out := newInterp(t, cfg)
	err := in.Run("dup.ql", `print "side effect"; var x = 1; var x = 2; print "never";`)
	assert.ErrorIs(t, err, eval.ErrRedeclared)
	assert.Equal(t, "side effect\n", out.String())
}

func TestRedeclarationAcrossCalls(t *testing.T) {
	in, _ := newInterp(t, DefaultConfig)
	require.NoError(t, in.Run("a", "var x = 1;"))
	err := in.Run("b", "var x = 2;")
	assert.ErrorIs(t, err, eval.ErrRedeclared)
}

func TestErrorKinds(t *testing.T) {
	in, _ := newInterp(t, DefaultConfig)
	assert.ErrorIs(t, in.Run("lex", "print 01;"), lexer.ErrTokenize)
	assert.ErrorIs(t, in.Run("parse", "print 1"), parser.ErrParse)
	assert.ErrorIs(t, in.Run("eval", "print missing;"), eval.ErrUndefined)
	assert.ErrorIs(t, in.Run("call", `"s" 1;`), eval.ErrNotCallable)
}

func TestParseKeepsComments(t *testing.T) {
	cfg := DefaultConfig
	cfg.KeepComments = true
	in, out := newInterp(t, cfg)
	src := "# note\nprint 1;"

	prog, err := in.Parse(src)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	assert.IsType(t, &ast.Comment{}, prog[0])

	// Evaluation never sees the comment.
	require.NoError(t, in.Run("c", src))
	assert.Equal(t, "1\n", out.String())
}

func TestCheckMethod(t *testing.T) {
	in, _ := newInterp(t, DefaultConfig)
	issues, err := in.Check("var a = 1; a.b = 1;")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, check.InvalidAssignTarget, issues[0].Code)

	_, err = in.Check("var")
	assert.ErrorIs(t, err, parser.ErrParse)
}

func TestCacheIsUsed(t *testing.T) {
	in, out := newInterp(t, DefaultConfig)
	for i := 0; i < 3; i++ {
		require.NoError(t, in.Run("loop", `print "x";`))
	}
	hits, misses := in.cache.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, "x\nx\nx\n", out.String())
}
