// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(records *[]*Record) Handler {
	return FuncHandler(func(r *Record) error {
		*records = append(*records, r)
		return nil
	})
}

func TestLvlFilter(t *testing.T) {
	var records []*Record
	l := &logger{nil, new(swapHandler)}
	l.SetHandler(LvlFilterHandler(LvlInfo, capture(&records)))

	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	require.Len(t, records, 3)
	assert.Equal(t, "info", records[0].Msg)
	assert.Equal(t, LvlError, records[2].Lvl)
}

func TestChildContext(t *testing.T) {
	var records []*Record
	parent := &logger{nil, new(swapHandler)}
	parent.SetHandler(capture(&records))

	child := parent.New("pkg", "eval")
	child.Info("call", "name", "print")
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"pkg", "eval", "name", "print"}, records[0].Ctx)

	// Children follow handler changes on their parent.
	var later []*Record
	parent.SetHandler(capture(&later))
	child.Info("again")
	assert.Len(t, records, 1)
	assert.Len(t, later, 1)
}

func TestOddContextIsNormalized(t *testing.T) {
	var records []*Record
	l := &logger{nil, new(swapHandler)}
	l.SetHandler(capture(&records))
	l.Info("odd", "key")
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"key", nil, errorKey, "Normalized odd number of arguments by adding nil"}, records[0].Ctx)
}

func testRecord() *Record {
	return &Record{
		Time: time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC),
		Lvl:  LvlInfo,
		Msg:  "Parsed program",
		Ctx:  []interface{}{"name", "hello world.ql", "statements", 3, "err", errors.New("bad=1")},
	}
}

func TestLogfmtFormat(t *testing.T) {
	got := string(LogfmtFormat().Format(testRecord()))
	want := `t=2024-01-02T03:04:05+0000 lvl=info msg="Parsed program" name="hello world.ql" statements=3 err="bad=1"` + "\n"
	assert.Equal(t, want, got)
}

func TestTerminalFormat(t *testing.T) {
	got := string(TerminalFormat(false).Format(testRecord()))
	want := "INFO [01-02|03:04:05.006] Parsed program" + strings.Repeat(" ", 27) +
		`name="hello world.ql" statements=3 err="bad=1"` + "\n"
	assert.Equal(t, want, got)

	r := testRecord()
	r.Ctx = nil
	assert.Equal(t, "INFO [01-02|03:04:05.006] Parsed program \n", string(TerminalFormat(false).Format(r)))
}

func TestTerminalFormatColor(t *testing.T) {
	r := testRecord()
	r.Lvl = LvlError
	got := string(TerminalFormat(true).Format(r))
	assert.True(t, strings.HasPrefix(got, "\x1b[31mERROR\x1b[0m["), "got %q", got)
}

func TestStreamHandlerAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := &logger{nil, new(swapHandler)}
	l.SetHandler(CallerFileHandler(StreamHandler(&buf, LogfmtFormat())))
	l.Warn("hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "lvl=warn msg=hello k=v caller=log_test.go:")
}

func TestMultiHandler(t *testing.T) {
	var a, b []*Record
	l := &logger{nil, new(swapHandler)}
	l.SetHandler(MultiHandler(capture(&a), LvlFilterHandler(LvlError, capture(&b))))
	l.Info("x")
	l.Error("y")
	assert.Len(t, a, 2)
	assert.Len(t, b, 1)
}

func TestRootDiscardsByDefault(t *testing.T) {
	assert.NoError(t, Root().GetHandler().Log(testRecord()))
	Info("not shown", "k", 1)
}

func TestLvlFromString(t *testing.T) {
	for in, want := range map[string]Lvl{
		"trace": LvlTrace, "DEBUG": LvlDebug, "info": LvlInfo,
		"warn": LvlWarn, "error": LvlError, "crit": LvlCrit, "eror": LvlError,
	} {
		got, err := LvlFromString(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := LvlFromString("loud")
	assert.Error(t, err)
}
