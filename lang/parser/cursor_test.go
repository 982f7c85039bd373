// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"testing"

	"github.com/probechain/quill/lang/ast"
	"github.com/probechain/quill/lang/lexer"
	"github.com/probechain/quill/lang/token"
)

func newTestParser(t *testing.T, src string) (*parser, cursor) {
	t.Helper()
	toks, err := lexer.Tokenize(src, lexer.KeepComments())
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	p := &parser{}
	p.reset()
	return p, cursor{toks: toks}
}

func TestCursorCopiesAreIndependent(t *testing.T) {
	_, c := newTestParser(t, "a b c")
	_, c1, _ := c.next()
	_, c2, _ := c1.next()
	if c.pos != 0 || c1.pos != 1 || c2.pos != 2 {
		t.Fatalf("positions = %d %d %d, want 0 1 2", c.pos, c1.pos, c2.pos)
	}
	tok, _ := c.peek()
	if tok != token.Ident("a") {
		t.Errorf("original cursor moved: peek = %v", tok)
	}
}

func TestCursorSkipsComments(t *testing.T) {
	_, c := newTestParser(t, "# one\n# two\nx")
	if _, _, ok := c.comment(); !ok {
		t.Fatal("expected a comment under the cursor")
	}
	tok, next, ok := c.next()
	if !ok || tok != token.Ident("x") || !next.done() {
		t.Errorf("next = %v (ok=%v, done=%v), want x at end", tok, ok, next.done())
	}
	if got := next.found(); got != "end of input" {
		t.Errorf("found = %q", got)
	}
}

func TestAttributeLookupRestoresCursor(t *testing.T) {
	p, c := newTestParser(t, "x . 5")
	if _, _, ok := p.lookup(c); ok {
		t.Fatal("lookup should fail when the dot is not followed by an identifier")
	}
	n, next, ok := p.expression(c)
	if !ok {
		t.Fatal("expression failed")
	}
	if lookup, isVar := n.(*ast.VariableLookup); !isVar || lookup.Ident != "x" {
		t.Errorf("expression = %#v, want VariableLookup x", n)
	}
	if next.pos != 1 {
		t.Errorf("cursor after expression at %d, want 1", next.pos)
	}
	if !next.is(token.DOT) {
		t.Errorf("expected the dot to remain, found %s", next.found())
	}
}

func TestParenCallFailureRestoresCursor(t *testing.T) {
	p, c := newTestParser(t, "( f a")
	if _, next, ok := p.parenCall(c); ok || next.pos != 0 {
		t.Errorf("parenCall = ok %v at %d, want failure at 0", ok, next.pos)
	}
	if p.err == nil || p.err.Found != "end of input" {
		t.Errorf("recorded error = %v", p.err)
	}
}

func TestExpressionMemo(t *testing.T) {
	p, c := newTestParser(t, "{ 5 }")
	first, _, ok := p.expression(c)
	if !ok {
		t.Fatal("expression failed")
	}
	again, _, _ := p.expression(c)
	if first != again {
		t.Error("second parse at the same offset was not served from the memo")
	}
}
