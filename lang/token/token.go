// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the Quill language.
//
// Tokens deliberately carry no source positions: diagnostics quote the
// offending token or source fragment instead.
package token

import (
	"fmt"
	"strconv"
)

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	COMMENT // # ... (only emitted when the lexer keeps comments)

	// Literals
	IDENT  // print, x, my_var
	INT    // 42, -5
	STRING // "hello"

	// Delimiters
	LBRACE     // {
	RBRACE     // }
	LBRACKET   // [
	RBRACKET   // ]
	LPAREN     // (
	RPAREN     // )
	ASSIGN     // =
	SEMICOLON  // ;
	DOT        // .
	BACKTICK   // `
	COLONCOLON // ::

	// Keywords
	keywordStart
	VAR // var
	keywordEnd
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	INT:    "INT",
	STRING: "STRING",

	LBRACE:     "{",
	RBRACE:     "}",
	LBRACKET:   "[",
	RBRACKET:   "]",
	LPAREN:     "(",
	RPAREN:     ")",
	ASSIGN:     "=",
	SEMICOLON:  ";",
	DOT:        ".",
	BACKTICK:   "`",
	COLONCOLON: "::",

	VAR: "var",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token carries a literal value.
func (t Type) IsLiteral() bool {
	return t >= IDENT && t <= STRING
}

// Token is a single lexical token. Identifier, string and comment tokens own
// their text in Literal; integer tokens carry their value in Int.
type Token struct {
	Type    Type
	Literal string
	Int     int64
}

// New returns a punctuation or keyword token of the given type.
func New(typ Type) Token { return Token{Type: typ} }

// Ident returns an identifier token.
func Ident(name string) Token { return Token{Type: IDENT, Literal: name} }

// String returns a string literal token.
func String(text string) Token { return Token{Type: STRING, Literal: text} }

// Integer returns an integer literal token.
func Integer(n int64) Token { return Token{Type: INT, Int: n} }

// Comment returns a comment token holding the text after '#'.
func Comment(text string) Token { return Token{Type: COMMENT, Literal: text} }

// String renders the token the way it would appear in source.
func (t Token) String() string {
	switch t.Type {
	case IDENT:
		return t.Literal
	case INT:
		return strconv.FormatInt(t.Int, 10)
	case STRING:
		return `"` + t.Literal + `"`
	case COMMENT:
		return "#" + t.Literal
	}
	return t.Type.String()
}

// punctuation maps single source characters to their token type.
var punctuation = map[byte]Type{
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	'(': LPAREN,
	')': RPAREN,
	'=': ASSIGN,
	';': SEMICOLON,
	'.': DOT,
	'`': BACKTICK,
}

// Punctuation reports the token type of a single-character delimiter.
func Punctuation(ch byte) (Type, bool) {
	typ, ok := punctuation[ch]
	return typ, ok
}

// keywords maps keyword strings to token types.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
