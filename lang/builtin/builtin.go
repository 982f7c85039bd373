// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package builtin provides the native functions every Quill program starts
// with.
package builtin

import (
	"bytes"
	"io"

	"github.com/probechain/quill/lang/scope"
	"github.com/probechain/quill/lang/value"
)

// Prelude returns a new scope chain whose global frame holds the builtins.
// Output of print goes to w.
func Prelude(w io.Writer) *scope.Chain {
	c := scope.New()
	c.Define("print", Print(w))
	return c
}

// Print returns the print builtin. It writes the display form of every
// argument with no separator, then a newline, and returns Unit.
func Print(w io.Writer) *value.Builtin {
	return value.NewBuiltin("print", func(args []value.Value) (value.Value, error) {
		var buf bytes.Buffer
		for _, a := range args {
			buf.WriteString(a.String())
		}
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return nil, err
		}
		return value.Unit, nil
	})
}
