// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// quill is the command line interface of the Quill language.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/quill/lang/ast"
	"github.com/probechain/quill/lang/interp"
	"github.com/probechain/quill/lang/lexer"
	"github.com/probechain/quill/log"
)

const clientIdentifier = "quill"

var app = cli.NewApp()

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: int(log.LvlWarn),
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored log and error output",
	}
	originsFlag = cli.BoolFlag{
		Name:  "origins",
		Usage: "Print the call site of every log line",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "Number of parsed programs kept in memory (0 disables the cache)",
		Value: interp.DefaultConfig.CacheSize,
	}
	noCheckFlag = cli.BoolFlag{
		Name:  "nocheck",
		Usage: "Skip the static check before evaluating",
	}
	commentsFlag = cli.BoolFlag{
		Name:  "comments",
		Usage: "Keep comments",
	}
	canonicalFlag = cli.BoolFlag{
		Name:  "canonical",
		Usage: "Print the canonical source form instead of the tree",
	}
)

var (
	runCommand = cli.Command{
		Action:    runFile,
		Name:      "run",
		Usage:     "Evaluate a Quill source file",
		ArgsUsage: "<file>",
		Category:  "LANGUAGE COMMANDS",
		Description: `
The run command parses, checks and evaluates the given file. Output of the
print builtin goes to stdout.`,
	}
	tokensCommand = cli.Command{
		Action:    dumpTokens,
		Name:      "tokens",
		Usage:     "Print the tokens of a source file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{commentsFlag},
		Category:  "LANGUAGE COMMANDS",
	}
	astCommand = cli.Command{
		Action:    dumpTree,
		Name:      "ast",
		Usage:     "Print the syntax tree of a source file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{commentsFlag, canonicalFlag},
		Category:  "LANGUAGE COMMANDS",
	}
	checkCommand = cli.Command{
		Action:    checkFile,
		Name:      "check",
		Usage:     "Statically check a source file without running it",
		ArgsUsage: "<file>",
		Category:  "LANGUAGE COMMANDS",
	}
	replCommand = cli.Command{
		Action:   startRepl,
		Name:     "repl",
		Usage:    "Start an interactive session",
		Category: "LANGUAGE COMMANDS",
		Description: `
The repl command reads statements from the terminal and evaluates them in a
single global scope. Input continues on the next line while brackets are
open. Type :help for the session commands.`,
	}
)

func init() {
	app.Name = clientIdentifier
	app.Usage = "the Quill scripting language"
	app.Version = "0.1.0"
	app.ArgsUsage = "[file]"
	app.Action = quill
	app.HideVersion = true
	app.Copyright = "Copyright 2024 The ProbeChain Authors"
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		noColorFlag,
		originsFlag,
		cacheSizeFlag,
		noCheckFlag,
	}
	app.Commands = []cli.Command{
		runCommand,
		tokensCommand,
		astCommand,
		checkCommand,
		replCommand,
		dumpConfigCommand,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("%v", err))
		os.Exit(1)
	}
}

// quill is the main entry point. With a file argument it runs the file,
// otherwise it starts the REPL.
func quill(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(1))
	}
	if ctx.NArg() == 1 {
		return runFile(ctx)
	}
	return startRepl(ctx)
}

// prepare loads the configuration and installs the log handler.
func prepare(ctx *cli.Context) (quillConfig, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return cfg, err
	}
	setupLogging(cfg.Log)
	if !cfg.Log.Color {
		color.NoColor = true
	}
	return cfg, nil
}

func setupLogging(cfg logConfig) {
	var (
		output   io.Writer = os.Stderr
		usecolor           = cfg.Color && (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	log.PrintOrigins(cfg.Origins)
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), log.StreamHandler(output, log.TerminalFormat(usecolor))))
}

// readSource reads the single file argument of a command.
func readSource(ctx *cli.Context) (string, string, error) {
	if ctx.NArg() != 1 {
		return "", "", errors.New("this command requires exactly one file argument")
	}
	path := ctx.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return path, string(src), nil
}

func runFile(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	path, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	in, err := interp.New(cfg.Interp, os.Stdout)
	if err != nil {
		return err
	}
	return in.Run(path, src)
}

func dumpTokens(ctx *cli.Context) error {
	if _, err := prepare(ctx); err != nil {
		return err
	}
	_, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	var opts []lexer.Option
	if ctx.Bool(commentsFlag.Name) {
		opts = append(opts, lexer.KeepComments())
	}
	toks, err := lexer.Tokenize(src, opts...)
	if err != nil {
		return err
	}
	for _, tok := range toks {
		fmt.Printf("%-10v %v\n", tok.Type, tok)
	}
	return nil
}

func dumpTree(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	_, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	cfg.Interp.KeepComments = cfg.Interp.KeepComments || ctx.Bool(commentsFlag.Name)
	in, err := interp.New(cfg.Interp, io.Discard)
	if err != nil {
		return err
	}
	prog, err := in.Parse(src)
	if err != nil {
		return err
	}
	if ctx.Bool(canonicalFlag.Name) {
		fmt.Print(ast.Format(prog))
		return nil
	}
	_, err = pretty.Println(prog)
	return err
}

func checkFile(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	path, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	in, err := interp.New(cfg.Interp, io.Discard)
	if err != nil {
		return err
	}
	issues, err := in.Check(src)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		fmt.Printf("%s: %v\n", path, issue)
	}
	if len(issues) > 0 {
		return fmt.Errorf("%s: %d issue(s) found", path, len(issues))
	}
	return nil
}

func startRepl(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	return runRepl(cfg)
}
