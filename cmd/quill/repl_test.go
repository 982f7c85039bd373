// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/quill/lang/interp"
)

// scriptedPrompter replays lines and records the prompts it was shown.
type scriptedPrompter struct {
	lines   []string
	prompts []string
	err     error
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.lines) == 0 {
		if p.err != nil {
			return "", p.err
		}
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func TestReadStatement(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"var b = {", `  print "hi";`, "};", "print 1;"}}

	src, ok := readStatement(p, "> ", ". ")
	require.True(t, ok)
	assert.Equal(t, "var b = {\n  print \"hi\";\n};", src)
	assert.Equal(t, []string{"> ", ". ", ". "}, p.prompts)

	src, ok = readStatement(p, "> ", ". ")
	require.True(t, ok)
	assert.Equal(t, "print 1;", src)

	_, ok = readStatement(p, "> ", ". ")
	assert.False(t, ok, "end of input ends the session")
}

func TestReadStatementAborted(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"print ["}, err: liner.ErrPromptAborted}
	src, ok := readStatement(p, "> ", ". ")
	assert.True(t, ok)
	assert.Empty(t, src)
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"print 1;", false},
		{"print 1", false},
		{"var x = [1", true},
		{"print (f { 1 }", true},
		{`print "abc`, true},
		{"print ]", false},
		{"print 01 [", false},
		{":ast [", false},
		{"# comment only", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, incomplete(tt.src), "incomplete(%q)", tt.src)
	}
}

func TestSessionCommands(t *testing.T) {
	in, err := interp.New(interp.DefaultConfig, io.Discard)
	require.NoError(t, err)
	_, err = in.Eval("var answer = 42;")
	require.NoError(t, err)

	var out bytes.Buffer
	assert.True(t, sessionCommand(in, ":quit", &out))
	assert.True(t, sessionCommand(in, ":EXIT", &out))

	out.Reset()
	assert.False(t, sessionCommand(in, ":help", &out))
	assert.Contains(t, out.String(), ":env")

	out.Reset()
	assert.False(t, sessionCommand(in, ":env", &out))
	assert.Contains(t, out.String(), "answer")
	assert.Contains(t, out.String(), "42")
	assert.Contains(t, out.String(), "print")

	out.Reset()
	assert.False(t, sessionCommand(in, ":ast print 1;", &out))
	assert.Contains(t, out.String(), "FunctionCall")

	out.Reset()
	assert.False(t, sessionCommand(in, ":ast print 1", &out))
	assert.Contains(t, out.String(), "parse error")

	out.Reset()
	assert.False(t, sessionCommand(in, ":bogus", &out))
	assert.Contains(t, out.String(), "unknown command :bogus")
}

func TestHistoryPath(t *testing.T) {
	assert.Equal(t, "", historyPath(""))
	assert.Equal(t, "/tmp/hist", historyPath("/tmp/hist"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quill_history"), historyPath("~/.quill_history"))
}
