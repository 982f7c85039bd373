// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"strconv"

	"github.com/probechain/quill/lang/token"
)

// cursor is a position in an immutable token slice. It is passed by value:
// every production receives its own copy, so a failed attempt leaves the
// caller's cursor exactly where it was.
type cursor struct {
	toks []token.Token
	pos  int
}

// skip returns the cursor moved past any comment tokens. Comments are only
// meaningful in statement position; everywhere else they are ignored.
func (c cursor) skip() cursor {
	for c.pos < len(c.toks) && c.toks[c.pos].Type == token.COMMENT {
		c.pos++
	}
	return c
}

// peek returns the next significant token, or false at end of input.
func (c cursor) peek() (token.Token, bool) {
	c = c.skip()
	if c.pos >= len(c.toks) {
		return token.Token{}, false
	}
	return c.toks[c.pos], true
}

// is reports whether the next significant token has the given type.
func (c cursor) is(typ token.Type) bool {
	tok, ok := c.peek()
	return ok && tok.Type == typ
}

// next returns the next significant token and the cursor past it.
func (c cursor) next() (token.Token, cursor, bool) {
	c = c.skip()
	if c.pos >= len(c.toks) {
		return token.Token{}, c, false
	}
	tok := c.toks[c.pos]
	c.pos++
	return tok, c, true
}

// comment returns the comment token directly under the cursor, if any.
func (c cursor) comment() (token.Token, cursor, bool) {
	if c.pos < len(c.toks) && c.toks[c.pos].Type == token.COMMENT {
		tok := c.toks[c.pos]
		c.pos++
		return tok, c, true
	}
	return token.Token{}, c, false
}

// done reports whether no tokens at all remain.
func (c cursor) done() bool { return c.pos >= len(c.toks) }

// found describes the next significant token for error messages.
func (c cursor) found() string {
	tok, ok := c.peek()
	if !ok {
		return "end of input"
	}
	return strconv.Quote(tok.String())
}
