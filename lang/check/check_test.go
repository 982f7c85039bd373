// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/quill/lang/check"
	"github.com/probechain/quill/lang/parser"
)

func checkSource(t *testing.T, src string) []*check.Issue {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	return check.Program(prog)
}

func TestCleanProgram(t *testing.T) {
	issues := checkSource(t, `
		var x = 1;
		var y = [x { var x = 2; }];
		x = y;
		print x y;
	`)
	assert.Empty(t, issues)
}

func TestDuplicateDeclaration(t *testing.T) {
	issues := checkSource(t, "var x = 1; var y = 2; var x = 3;")
	require.Len(t, issues, 1)
	assert.Equal(t, check.DuplicateDeclaration, issues[0].Code)
	assert.Equal(t, "x", issues[0].Name)
	assert.Equal(t, `check [duplicate-declaration] for "x": "x" is already declared in this block`, issues[0].Error())
}

func TestDuplicateInsideBlock(t *testing.T) {
	issues := checkSource(t, `
		var a = 1;
		var b = { var a = 1; var c = 2; var c = 3; };
		print { var d = 1; var d = 2; };
	`)
	require.Len(t, issues, 2)
	assert.Equal(t, "c", issues[0].Name)
	assert.Equal(t, "d", issues[1].Name)
}

func TestNestedBlockInDeclaredValue(t *testing.T) {
	// The block nested in x's value is checked before x itself.
	issues := checkSource(t, "var x = 1; var x = { var i = 1; var i = 2; };")
	require.Len(t, issues, 2)
	assert.Equal(t, "i", issues[0].Name)
	assert.Equal(t, "x", issues[1].Name)
}

func TestInvalidAssignTarget(t *testing.T) {
	issues := checkSource(t, "var a = 1; a.b = 2; list::len = 3; a = 4;")
	require.Len(t, issues, 2)
	assert.Equal(t, check.InvalidAssignTarget, issues[0].Code)
	assert.Equal(t, "a.b", issues[0].Name)
	assert.Equal(t, "list::len", issues[1].Name)
}

func TestIssueCodeString(t *testing.T) {
	assert.Equal(t, "invalid-assign-target", check.InvalidAssignTarget.String())
	assert.Equal(t, "issue(7)", check.IssueCode(7).String())
}
