// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass tokenizer for the Quill language.
//
// Design principles:
//   - One forward pass with a single character of lookahead
//   - '#' line comments, dropped unless KeepComments is set
//   - String literals ("...") have no escape sequences
//   - A '-' directly in front of a digit run folds into the integer literal;
//     there is no subtraction operator
//   - Any unrecognised input fails the whole tokenization
package lexer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/probechain/quill/lang/token"
)

// ErrTokenize is the sentinel wrapped by every tokenizing failure.
var ErrTokenize = errors.New("tokenizing error")

// Error describes a tokenizing failure and the source fragment that caused it.
type Error struct {
	Fragment string
	Msg      string

	// Unterminated is set when the input ended inside a token, so more input
	// could still complete it.
	Unterminated bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s: %q", ErrTokenize, e.Msg, e.Fragment)
}

func (e *Error) Unwrap() error { return ErrTokenize }

// Option configures a Lexer.
type Option func(*Lexer)

// KeepComments makes the lexer emit COMMENT tokens instead of dropping them.
func KeepComments() Option {
	return func(l *Lexer) { l.keepComments = true }
}

// Lexer holds the state for a single tokenization run.
type Lexer struct {
	input []byte

	// pos is the index into input of the next byte to be loaded into ch.
	// After advance(), ch == input[pos-1] and pos points one past it.
	pos int
	ch  byte // current character; 0 when past end
	eof bool

	keepComments bool
}

// New creates a Lexer over the given source text.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: []byte(input)}
	for _, opt := range opts {
		opt(l)
	}
	l.advance() // prime l.ch with the first byte
	return l
}

// Tokenize lexes the complete source. On failure no tokens are returned.
func Tokenize(input string, opts ...Option) ([]token.Token, error) {
	l := New(input, opts...)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// advance moves to the next byte in the input. When the end of input is
// reached, ch is set to 0 and eof is raised.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.eof = true
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

// Next scans the next token. It returns io.EOF once the input is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	for {
		l.skipWhitespace()
		if l.eof {
			return token.Token{}, io.EOF
		}
		if l.ch != '#' {
			break
		}
		text := l.readComment()
		if l.keepComments {
			return token.Comment(text), nil
		}
	}

	ch := l.ch
	switch {
	case isLetter(ch):
		lit := l.readIdent()
		if typ := token.LookupIdent(lit); typ != token.IDENT {
			return token.New(typ), nil
		}
		return token.Ident(lit), nil

	case isDigit(ch):
		return l.readInteger(false)

	case ch == '-':
		l.advance()
		if !isDigit(l.ch) {
			return token.Token{}, &Error{Fragment: "-" + l.fragment(), Msg: "minus sign must directly precede a number"}
		}
		return l.readInteger(true)

	case ch == '"':
		return l.readString()

	case ch == ':':
		l.advance()
		if l.ch != ':' {
			return token.Token{}, &Error{Fragment: ":" + l.fragment(), Msg: "expected '::'"}
		}
		l.advance()
		return token.New(token.COLONCOLON), nil
	}

	if typ, ok := token.Punctuation(ch); ok {
		l.advance()
		return token.New(typ), nil
	}
	return token.Token{}, &Error{Fragment: l.fragment(), Msg: "unexpected character"}
}

// skipWhitespace consumes space, tab, carriage return, and newline characters.
func (l *Lexer) skipWhitespace() {
	for !l.eof && isSpace(l.ch) {
		l.advance()
	}
}

// readComment consumes a '#' comment up to and including the end of line and
// returns the text between '#' and the newline.
func (l *Lexer) readComment() string {
	l.advance() // consume '#'
	start := l.offset()
	for !l.eof && l.ch != '\n' {
		l.advance()
	}
	end := l.offset()
	if !l.eof {
		l.advance() // consume '\n'
	}
	return string(l.input[start:end])
}

func (l *Lexer) readIdent() string {
	start := l.offset()
	for !l.eof && isIdentContinue(l.ch) {
		l.advance()
	}
	return string(l.input[start:l.offset()])
}

// readInteger reads a decimal digit run. A leading zero may only stand alone.
func (l *Lexer) readInteger(negative bool) (token.Token, error) {
	start := l.offset()
	if l.ch == '0' {
		l.advance()
		if !l.eof && isDigit(l.ch) {
			return token.Token{}, &Error{Fragment: "0" + l.fragment(), Msg: "leading zero in integer literal"}
		}
		return token.Integer(0), nil
	}
	for !l.eof && isDigit(l.ch) {
		l.advance()
	}
	digits := string(l.input[start:l.offset()])
	if negative {
		digits = "-" + digits
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return token.Token{}, &Error{Fragment: digits, Msg: "integer literal out of range"}
	}
	return token.Integer(n), nil
}

// readString reads a "..." literal. There are no escapes, so the literal ends
// at the next '"'.
func (l *Lexer) readString() (token.Token, error) {
	l.advance() // consume opening '"'
	start := l.offset()
	for !l.eof && l.ch != '"' {
		l.advance()
	}
	if l.eof {
		return token.Token{}, &Error{Fragment: `"` + string(l.input[start:]), Msg: "unterminated string literal", Unterminated: true}
	}
	text := string(l.input[start : l.pos-1])
	l.advance() // consume closing '"'
	return token.String(text), nil
}

// offset is the index of the current character, or len(input) at end.
func (l *Lexer) offset() int {
	if l.eof {
		return len(l.input)
	}
	return l.pos - 1
}

// fragment returns the (possibly multi-byte) character at the cursor for
// error reports.
func (l *Lexer) fragment() string {
	if l.eof {
		return ""
	}
	r, _ := utf8.DecodeRune(l.input[l.pos-1:])
	return string(r)
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
