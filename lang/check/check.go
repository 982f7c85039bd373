// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Static checker for Quill programs.
//
// The checker reports, without running anything:
//
//  1. A var declaration that redeclares a name already declared in the same
//     block (the program itself or a statement block).
//  2. An assignment whose target is not a bare variable.
//
// Both would fail at run time; reporting them up front lets a whole program be
// rejected before any of its side effects happen.
package check

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"

	"github.com/probechain/quill/lang/ast"
)

// IssueCode classifies a static check failure.
type IssueCode int

const (
	// DuplicateDeclaration is reported when a block declares the same name
	// twice.
	DuplicateDeclaration IssueCode = iota

	// InvalidAssignTarget is reported when an assignment targets anything
	// other than a bare variable.
	InvalidAssignTarget
)

func (c IssueCode) String() string {
	switch c {
	case DuplicateDeclaration:
		return "duplicate-declaration"
	case InvalidAssignTarget:
		return "invalid-assign-target"
	default:
		return fmt.Sprintf("issue(%d)", int(c))
	}
}

// Issue records a single problem found by the checker.
type Issue struct {
	Code    IssueCode
	Name    string // the declared name, or the canonical form of the target
	Message string
}

func (i *Issue) Error() string {
	return fmt.Sprintf("check [%s] for %q: %s", i.Code, i.Name, i.Message)
}

// checker walks a program keeping one declared-name set per open block.
type checker struct {
	issues []*Issue
}

// Program checks a comment-free statement list and returns every issue
// found, in source order.
func Program(stmts []ast.Node) []*Issue {
	c := &checker{}
	c.block(stmts)
	return c.issues
}

func (c *checker) block(stmts []ast.Node) {
	declared := mapset.NewSet()
	for _, s := range stmts {
		switch s := s.(type) {
		case *ast.VariableCreation:
			c.expr(s.Value)
			if !declared.Add(s.Ident) {
				c.issues = append(c.issues, &Issue{
					Code:    DuplicateDeclaration,
					Name:    s.Ident,
					Message: fmt.Sprintf("%q is already declared in this block", s.Ident),
				})
			}
		case *ast.Assignment:
			c.expr(s.Value)
			if _, ok := s.Target.(*ast.VariableLookup); !ok {
				c.issues = append(c.issues, &Issue{
					Code:    InvalidAssignTarget,
					Name:    s.Target.String(),
					Message: "only a bare variable can be assigned to",
				})
			}
			c.expr(s.Target)
		default:
			c.expr(s)
		}
	}
}

// expr looks for statement blocks nested inside n; each opens a new scope.
func (c *checker) expr(n ast.Node) {
	ast.Inspect(n, func(n ast.Node) bool {
		if blk, ok := n.(*ast.StatementBlock); ok {
			c.block(blk.Statements)
			return false
		}
		return true
	})
}
