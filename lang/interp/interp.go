// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package interp ties the Quill pipeline together: parse (through a program
// cache), strip comments, statically check, evaluate. An Interpreter keeps
// its global scope between calls, which is what the REPL relies on.
package interp

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/probechain/quill/internal/progcache"
	"github.com/probechain/quill/lang/ast"
	"github.com/probechain/quill/lang/builtin"
	"github.com/probechain/quill/lang/check"
	"github.com/probechain/quill/lang/eval"
	"github.com/probechain/quill/lang/scope"
	"github.com/probechain/quill/lang/value"
	"github.com/probechain/quill/log"
)

// Config holds the interpreter settings.
type Config struct {
	CacheSize    int  // parsed programs kept; 0 disables the cache
	KeepComments bool // keep comments in the trees returned by Parse
	Check        bool // run the static checker before evaluating
}

// DefaultConfig contains the default interpreter settings.
var DefaultConfig = Config{
	CacheSize: 64,
	Check:     true,
}

// ErrCheck is wrapped by the error returned when a program fails the static
// check.
var ErrCheck = errors.New("static check failed")

// CheckError lists the issues that stopped a program from running.
type CheckError struct {
	Issues []*check.Issue
}

func (e *CheckError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}
	return fmt.Sprintf("%v: %s", ErrCheck, strings.Join(msgs, "; "))
}

func (e *CheckError) Unwrap() error { return ErrCheck }

// Interpreter evaluates Quill source against a persistent global scope.
type Interpreter struct {
	cfg   Config
	cache *progcache.Cache
	eval  *eval.Evaluator
	log   log.Logger
}

// New creates an interpreter whose print builtin writes to stdout.
func New(cfg Config, stdout io.Writer) (*Interpreter, error) {
	cache, err := progcache.New(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Interpreter{
		cfg:   cfg,
		cache: cache,
		eval:  eval.New(builtin.Prelude(stdout)),
		log:   log.New("pkg", "interp"),
	}, nil
}

// Scope returns the interpreter's scope chain.
func (in *Interpreter) Scope() *scope.Chain { return in.eval.Chain() }

// Parse parses src, keeping comments when the configuration asks for it.
func (in *Interpreter) Parse(src string) ([]ast.Node, error) {
	return in.cache.Parse(src, in.cfg.KeepComments)
}

// Check parses src and returns the static check issues.
func (in *Interpreter) Check(src string) ([]*check.Issue, error) {
	prog, err := in.cache.Parse(src, false)
	if err != nil {
		return nil, err
	}
	return check.Program(prog), nil
}

// Run evaluates a complete program. name is used for logging only.
func (in *Interpreter) Run(name, src string) error {
	start := time.Now()
	prog, err := in.prepare(src)
	if err != nil {
		return err
	}
	if err := in.eval.Run(prog); err != nil {
		in.log.Debug("Program failed", "name", name, "err", err)
		return err
	}
	in.log.Debug("Program finished", "name", name, "statements", len(prog), "elapsed", time.Since(start))
	return nil
}

// Eval evaluates src and returns the value of its last statement, or Unit
// when src holds no statements.
func (in *Interpreter) Eval(src string) (value.Value, error) {
	prog, err := in.prepare(src)
	if err != nil {
		return nil, err
	}
	return in.eval.RunLast(prog)
}

// prepare turns source into a comment-free program ready to run.
func (in *Interpreter) prepare(src string) ([]ast.Node, error) {
	prog, err := in.cache.Parse(src, false)
	if err != nil {
		return nil, err
	}
	prog = ast.StripComments(prog)
	if in.cfg.Check {
		if issues := check.Program(prog); len(issues) > 0 {
			return nil, &CheckError{Issues: issues}
		}
	}
	return prog, nil
}
