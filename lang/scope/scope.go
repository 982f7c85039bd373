// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package scope implements the chain of name-to-value frames that the
// evaluator resolves identifiers against.
package scope

import (
	"github.com/edwingeng/deque"

	"github.com/probechain/quill/lang/value"
)

// Frame maps identifiers to the values bound in one scope.
type Frame map[string]value.Value

// Chain is a stack of frames. The innermost frame is at the back of the
// deque. A chain always holds at least one frame, the global frame.
type Chain struct {
	frames deque.Deque
}

// New returns a chain holding a single empty global frame.
func New() *Chain {
	c := &Chain{frames: deque.NewDeque()}
	c.frames.PushBack(make(Frame))
	return c
}

func (c *Chain) top() Frame {
	return c.frames.Back().(Frame)
}

// Push enters a new innermost frame.
func (c *Chain) Push() {
	c.frames.PushBack(make(Frame))
}

// Pop leaves the innermost frame. Popping the global frame is a programming
// error and panics.
func (c *Chain) Pop() {
	if c.frames.Len() == 1 {
		panic("scope: pop of the global frame")
	}
	c.frames.PopBack()
}

// Depth returns the number of frames, including the global frame.
func (c *Chain) Depth() int {
	return c.frames.Len()
}

// Lookup resolves name from the innermost frame outwards.
func (c *Chain) Lookup(name string) (value.Value, bool) {
	for i := c.frames.Len() - 1; i >= 0; i-- {
		if v, ok := c.frames.Peek(i).(Frame)[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name in the innermost frame and reports whether the name was
// already bound there. An existing binding is left untouched.
func (c *Chain) Define(name string, v value.Value) bool {
	top := c.top()
	if _, ok := top[name]; ok {
		return true
	}
	top[name] = v
	return false
}

// Assign binds name in the innermost frame, replacing any binding the frame
// already holds. Callers check that the name exists somewhere in the chain.
func (c *Chain) Assign(name string, v value.Value) {
	c.top()[name] = v
}

// Snapshot returns copies of the frames, outermost first.
func (c *Chain) Snapshot() []Frame {
	out := make([]Frame, 0, c.frames.Len())
	for i := 0; i < c.frames.Len(); i++ {
		f := c.frames.Peek(i).(Frame)
		cp := make(Frame, len(f))
		for k, v := range f {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}
