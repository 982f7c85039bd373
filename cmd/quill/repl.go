// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/peterh/liner"

	"github.com/probechain/quill/lang/interp"
	"github.com/probechain/quill/lang/lexer"
	"github.com/probechain/quill/lang/parser"
	"github.com/probechain/quill/lang/token"
	"github.com/probechain/quill/lang/value"
	"github.com/probechain/quill/log"
)

const replHelp = `Session commands:
  :help         show this message
  :env          dump the variables of the global scope
  :ast <source> print the syntax tree of <source>
  :quit         leave the session`

// envDumper prints scope frames without pointer noise.
var envDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// prompter is the part of liner.State the reader needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func runRepl(cfg quillConfig) error {
	in, err := interp.New(cfg.Interp, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Quill %s. Type :help for session commands.\n", app.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := historyPath(cfg.Repl.HistoryFile); path != "" {
		if f, err := os.Open(path); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				ln.WriteHistory(f)
				f.Close()
			} else {
				log.Warn("Failed to save REPL history", "path", path, "err", err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	for {
		src, ok := readStatement(ln, cfg.Repl.Prompt, cfg.Repl.ContPrompt)
		if !ok {
			fmt.Println()
			return nil
		}
		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(line, ":") {
			if quit := sessionCommand(in, line, os.Stdout); quit {
				return nil
			}
			continue
		}
		v, err := in.Eval(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%v", err))
			continue
		}
		if v != value.Unit {
			fmt.Println(v)
		}
	}
}

// readStatement reads lines until they form input that may be complete. It
// returns false at end of input. An aborted prompt yields an empty entry.
func readStatement(p prompter, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := p.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if src := b.String(); !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src stops inside a string literal or an open
// bracket. Any other input, valid or not, is handed to the interpreter.
func incomplete(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}
	l := lexer.New(src)
	depth := 0
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return depth > 0
		}
		if err != nil {
			var lexErr *lexer.Error
			return errors.As(err, &lexErr) && lexErr.Unterminated
		}
		switch tok.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
}

// sessionCommand runs a ':' command and reports whether the session should
// end.
func sessionCommand(in *interp.Interpreter, line string, w io.Writer) bool {
	name, arg := line, ""
	if i := strings.IndexAny(line, " \t\n"); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i:])
	}
	switch strings.ToLower(name) {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprintln(w, replHelp)
	case ":env":
		envDumper.Fdump(w, in.Scope().Snapshot()[0])
	case ":ast":
		prog, err := parser.Parse(arg, parser.KeepComments())
		if err != nil {
			fmt.Fprintln(w, color.RedString("%v", err))
			break
		}
		pretty.Fprintf(w, "%# v\n", prog)
	default:
		fmt.Fprintf(w, "unknown command %s, type :help for a list\n", name)
	}
	return false
}

// historyPath expands a leading ~ in the configured history file. An empty
// setting disables history.
func historyPath(file string) string {
	if file == "" {
		return ""
	}
	if file == "~" || strings.HasPrefix(file, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(file, "~"))
	}
	return file
}
