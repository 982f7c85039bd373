// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package log

import "os"

var root = &logger{[]interface{}{}, new(swapHandler)}

func init() {
	root.SetHandler(DiscardHandler())
}

// New returns a new logger with the given context. It shares the root
// handler, so it follows later SetHandler calls on Root.
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

// Root returns the root logger.
func Root() Logger {
	return root
}

// The following functions bypass the exported logger methods (logger.Debug,
// etc.) to keep the call depth the same for all paths to logger.write so
// runtime.Caller(2) always refers to the call site in client code.

func Trace(msg string, ctx ...interface{}) { root.write(msg, LvlTrace, ctx, skipLevel) }
func Debug(msg string, ctx ...interface{}) { root.write(msg, LvlDebug, ctx, skipLevel) }
func Info(msg string, ctx ...interface{})  { root.write(msg, LvlInfo, ctx, skipLevel) }
func Warn(msg string, ctx ...interface{})  { root.write(msg, LvlWarn, ctx, skipLevel) }
func Error(msg string, ctx ...interface{}) { root.write(msg, LvlError, ctx, skipLevel) }

// Crit logs at the highest level and terminates the process.
func Crit(msg string, ctx ...interface{}) {
	root.write(msg, LvlCrit, ctx, skipLevel)
	os.Exit(1)
}
