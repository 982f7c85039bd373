// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a backtracking recursive-descent parser for the
// Quill language.
//
// Design overview:
//
//   - Every production takes a cursor by value and returns the cursor past
//     what it consumed. A failed alternative simply drops its copy, so the
//     next alternative starts from the exact same position.
//   - Alternatives are tried in a fixed order; the first match wins.
//   - Expression and block results are memoized per token offset, which keeps
//     deeply nested blocks linear instead of exponential.
//   - The failure that got furthest into the input is the one reported.
//   - Comment tokens (present only with KeepComments) become statements in
//     statement position and are skipped everywhere else.
//
// Grammar, in order of attempted alternatives:
//
//	statement  = comment | var_decl | assignment | method_lookup ";" | call ";"
//	           | "(" call ")" ";" .
//	var_decl   = "var" IDENT "=" expression ";" .
//	assignment = expression "=" expression ";" .
//	call       = expression [ "`" expression "`" ] { expression } .
//	expression = lookup | IDENT | STRING | INT | list | block | "(" call ")" .
//	lookup     = base ( "." | "::" ) IDENT { ( "." | "::" ) IDENT } .
//	base       = IDENT | "(" expression ")" | block .
//	list       = "[" { expression } "]" .
//	block      = "{" ( statement { statement } | [ expression ] ) "}" .
package parser

import (
	"errors"
	"fmt"

	"github.com/probechain/quill/lang/ast"
	"github.com/probechain/quill/lang/lexer"
	"github.com/probechain/quill/lang/token"
)

// ErrParse is the sentinel wrapped by every parse failure.
var ErrParse = errors.New("parse error")

// Error describes a parse failure and the token where it was detected.
type Error struct {
	Msg   string
	Found string // quoted token text, or "end of input"
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s, found %s", ErrParse, e.Msg, e.Found)
}

func (e *Error) Unwrap() error { return ErrParse }

// Option configures a parse run.
type Option func(*config)

type config struct {
	keepComments bool
}

// KeepComments makes Parse return comments as ast.Comment statements.
func KeepComments() Option {
	return func(c *config) { c.keepComments = true }
}

// Parse tokenizes and parses a complete program. Tokenizing failures are
// returned unchanged and wrap lexer.ErrTokenize.
func Parse(src string, opts ...Option) ([]ast.Node, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	var lexOpts []lexer.Option
	if cfg.keepComments {
		lexOpts = append(lexOpts, lexer.KeepComments())
	}
	toks, err := lexer.Tokenize(src, lexOpts...)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already tokenized program.
func ParseTokens(toks []token.Token) ([]ast.Node, error) {
	p := &parser{}
	return p.program(cursor{toks: toks})
}

// result is a memoized production outcome.
type result struct {
	node ast.Node
	next cursor
	ok   bool
}

// parser holds the state for a single parse run.
type parser struct {
	exprs  map[int]result
	blocks map[int]result

	err    *Error // furthest failure seen in the current statement
	errPos int
}

// reset clears per-statement state before a top-level statement.
func (p *parser) reset() {
	p.exprs = make(map[int]result)
	p.blocks = make(map[int]result)
	p.err = nil
	p.errPos = 0
}

// fail records a failure at c unless an earlier-recorded one got further.
func (p *parser) fail(c cursor, format string, args ...interface{}) {
	c = c.skip()
	if p.err != nil && c.pos < p.errPos {
		return
	}
	p.err = &Error{Msg: fmt.Sprintf(format, args...), Found: c.found()}
	p.errPos = c.pos
}

// expect consumes a token of the given type.
func (p *parser) expect(c cursor, typ token.Type, context string) (cursor, bool) {
	tok, next, ok := c.next()
	if !ok || tok.Type != typ {
		p.fail(c, "expected %q %s", typ.String(), context)
		return c, false
	}
	return next, true
}

// ---------------------------------------------------------------------------
// Program and statements
// ---------------------------------------------------------------------------

func (p *parser) program(c cursor) ([]ast.Node, error) {
	var stmts []ast.Node
	for !c.done() {
		p.reset()
		stmt, next, ok := p.statement(c)
		if !ok {
			if p.err == nil {
				return nil, &Error{Msg: "invalid statement", Found: c.found()}
			}
			return nil, p.err
		}
		stmts = append(stmts, stmt)
		c = next
	}
	return stmts, nil
}

func (p *parser) statement(c cursor) (ast.Node, cursor, bool) {
	if tok, next, ok := c.comment(); ok {
		return &ast.Comment{Text: tok.Literal}, next, true
	}
	if n, next, ok := p.variableCreation(c); ok {
		return n, next, true
	}
	if n, next, ok := p.assignment(c); ok {
		return n, next, true
	}
	if n, next, ok := p.lookup(c); ok {
		if m, isMethod := n.(*ast.MethodLookup); isMethod {
			if end, ok := p.expect(next, token.SEMICOLON, "after method lookup"); ok {
				return m, end, true
			}
		}
	}
	if n, next, ok := p.functionCall(c, false); ok {
		if end, ok := p.expect(next, token.SEMICOLON, "after function call"); ok {
			return n, end, true
		}
	}
	// (f); calls f once with no arguments.
	if c.is(token.LPAREN) {
		if n, next, ok := p.parenCall(c); ok {
			if end, ok := p.expect(next, token.SEMICOLON, "after function call"); ok {
				return n, end, true
			}
		}
	}
	return nil, c, false
}

func (p *parser) variableCreation(c cursor) (ast.Node, cursor, bool) {
	tok, after, ok := c.next()
	if !ok || tok.Type != token.VAR {
		return nil, c, false
	}
	name, next, ok := after.next()
	if !ok || name.Type != token.IDENT {
		p.fail(after, "expected identifier after \"var\"")
		return nil, c, false
	}
	next, ok = p.expect(next, token.ASSIGN, "in variable declaration")
	if !ok {
		return nil, c, false
	}
	value, next, ok := p.expression(next)
	if !ok {
		return nil, c, false
	}
	next, ok = p.expect(next, token.SEMICOLON, "after variable declaration")
	if !ok {
		return nil, c, false
	}
	return &ast.VariableCreation{Ident: name.Literal, Value: value}, next, true
}

func (p *parser) assignment(c cursor) (ast.Node, cursor, bool) {
	target, next, ok := p.expression(c)
	if !ok || !next.is(token.ASSIGN) {
		return nil, c, false
	}
	_, next, _ = next.next()
	value, next, ok := p.expression(next)
	if !ok {
		return nil, c, false
	}
	next, ok = p.expect(next, token.SEMICOLON, "after assignment")
	if !ok {
		return nil, c, false
	}
	return &ast.Assignment{Target: target, Value: value}, next, true
}

// functionCall parses a callee followed by its arguments. Arguments are taken
// greedily until an expression fails to parse. A backtick pair directly after
// the first expression marks the infix form: a `f` b c is f a b c.
func (p *parser) functionCall(c cursor, allowEmpty bool) (ast.Node, cursor, bool) {
	callee, cur, ok := p.expression(c)
	if !ok {
		return nil, c, false
	}
	items := []ast.Node{callee}
	infix := false
	for {
		if cur.is(token.BACKTICK) {
			if infix {
				p.fail(cur, "only one backtick-delimited callee is allowed per call")
				return nil, c, false
			}
			if len(items) != 1 {
				p.fail(cur, "backtick-delimited callee must follow the first argument")
				return nil, c, false
			}
			_, open, _ := cur.next()
			fn, after, ok := p.expression(open)
			if !ok {
				return nil, c, false
			}
			closed, ok := p.expect(after, token.BACKTICK, "to close infix callee")
			if !ok {
				return nil, c, false
			}
			items = []ast.Node{fn, items[0]}
			infix = true
			cur = closed
			continue
		}
		arg, next, ok := p.expression(cur)
		if !ok {
			break
		}
		items = append(items, arg)
		cur = next
	}
	if len(items) == 1 {
		if !allowEmpty {
			p.fail(cur, "function call needs at least one argument")
			return nil, c, false
		}
		return &ast.FunctionCall{Func: items[0]}, cur, true
	}
	return &ast.FunctionCall{Func: items[0], Args: items[1:]}, cur, true
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (p *parser) expression(c cursor) (ast.Node, cursor, bool) {
	key := c.skip().pos
	if r, ok := p.exprs[key]; ok {
		return r.node, r.next, r.ok
	}
	n, next, ok := p.parseExpression(c)
	if !ok {
		next = c
	}
	p.exprs[key] = result{node: n, next: next, ok: ok}
	return n, next, ok
}

func (p *parser) parseExpression(c cursor) (ast.Node, cursor, bool) {
	if n, next, ok := p.lookup(c); ok {
		return n, next, true
	}
	tok, next, ok := c.next()
	if !ok {
		p.fail(c, "expected expression")
		return nil, c, false
	}
	switch tok.Type {
	case token.IDENT:
		return &ast.VariableLookup{Ident: tok.Literal}, next, true
	case token.STRING:
		return &ast.StringLiteral{Value: tok.Literal}, next, true
	case token.INT:
		return &ast.IntegerLiteral{Value: tok.Int}, next, true
	case token.LBRACKET:
		return p.list(c)
	case token.LBRACE:
		return p.block(c)
	case token.LPAREN:
		return p.parenCall(c)
	}
	p.fail(c, "expected expression")
	return nil, c, false
}

// lookup parses a chain of attribute and method lookups. Each segment wraps
// the node built so far, so a.b::c is MethodLookup(AttributeLookup(a, b), c).
// At least one segment is required.
func (p *parser) lookup(c cursor) (ast.Node, cursor, bool) {
	node, next, isBlock, ok := p.lookupBase(c)
	if !ok {
		return nil, c, false
	}
	layers := 0
	for {
		sep, after, ok := next.next()
		if !ok || (sep.Type != token.DOT && sep.Type != token.COLONCOLON) {
			break
		}
		if isBlock && layers == 0 && sep.Type == token.DOT {
			p.fail(next, "a block has no attributes")
			break
		}
		name, end, ok := after.next()
		if !ok || name.Type != token.IDENT {
			p.fail(after, "expected identifier after %q", sep.Type.String())
			break
		}
		if sep.Type == token.DOT {
			node = &ast.AttributeLookup{Expr: node, Attr: name.Literal}
		} else {
			node = &ast.MethodLookup{Expr: node, Method: name.Literal}
		}
		next = end
		layers++
	}
	if layers == 0 {
		return nil, c, false
	}
	return node, next, true
}

// lookupBase parses the receiver of a lookup chain. isBlock reports a block
// receiver, which only accepts a method segment first.
func (p *parser) lookupBase(c cursor) (ast.Node, cursor, bool, bool) {
	tok, next, ok := c.next()
	if !ok {
		return nil, c, false, false
	}
	switch tok.Type {
	case token.IDENT:
		return &ast.VariableLookup{Ident: tok.Literal}, next, false, true
	case token.LPAREN:
		inner, after, ok := p.expression(next)
		if !ok {
			return nil, c, false, false
		}
		end, ok := p.expect(after, token.RPAREN, "to close parenthesised expression")
		if !ok {
			return nil, c, false, false
		}
		return inner, end, false, true
	case token.LBRACE:
		b, end, ok := p.block(c)
		if !ok {
			return nil, c, false, false
		}
		return b, end, true, true
	}
	return nil, c, false, false
}

func (p *parser) list(c cursor) (ast.Node, cursor, bool) {
	_, cur, _ := c.next() // '['
	var elems []ast.Node
	for {
		e, next, ok := p.expression(cur)
		if !ok {
			break
		}
		elems = append(elems, e)
		cur = next
	}
	end, ok := p.expect(cur, token.RBRACKET, "to close list")
	if !ok {
		return nil, c, false
	}
	return &ast.List{Elements: elems}, end, true
}

// parenCall parses "(" call ")". On failure the cursor before "(" is
// returned, so the caller can try its next alternative from there.
func (p *parser) parenCall(c cursor) (ast.Node, cursor, bool) {
	_, inner, _ := c.next() // '('
	call, next, ok := p.functionCall(inner, true)
	if !ok {
		return nil, c, false
	}
	end, ok := p.expect(next, token.RPAREN, "to close function call")
	if !ok {
		return nil, c, false
	}
	return call, end, true
}

func (p *parser) block(c cursor) (ast.Node, cursor, bool) {
	key := c.skip().pos
	if r, ok := p.blocks[key]; ok {
		return r.node, r.next, r.ok
	}
	n, next, ok := p.parseBlock(c)
	if !ok {
		next = c
	}
	p.blocks[key] = result{node: n, next: next, ok: ok}
	return n, next, ok
}

// parseBlock parses "{ ... }". Statements take priority: a block holding at
// least one statement is a StatementBlock even if a bare expression could
// follow. Only when no statement parses is a single expression tried.
func (p *parser) parseBlock(c cursor) (ast.Node, cursor, bool) {
	body, ok := p.expect(c, token.LBRACE, "to open block")
	if !ok {
		return nil, c, false
	}
	var stmts []ast.Node
	significant := 0
	cur := body
	for {
		s, next, ok := p.statement(cur)
		if !ok {
			break
		}
		if _, isComment := s.(*ast.Comment); !isComment {
			significant++
		}
		stmts = append(stmts, s)
		cur = next
	}
	if significant > 0 || cur.is(token.RBRACE) {
		end, ok := p.expect(cur, token.RBRACE, "to close block")
		if !ok {
			return nil, c, false
		}
		return &ast.StatementBlock{Statements: stmts}, end, true
	}
	expr, next, ok := p.expression(body)
	if !ok {
		return nil, c, false
	}
	end, ok := p.expect(next, token.RBRACE, "to close block")
	if !ok {
		return nil, c, false
	}
	return &ast.ExpressionBlock{Expr: expr}, end, true
}
