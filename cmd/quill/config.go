// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/quill/lang/interp"
	"github.com/probechain/quill/log"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[FILE]",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows configuration values.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type logConfig struct {
	Verbosity int  // 0=crit .. 5=trace
	Color     bool // colour terminal output when stderr is a terminal
	Origins   bool // print call sites next to log lines
}

type replConfig struct {
	HistoryFile string
	Prompt      string
	ContPrompt  string
}

type quillConfig struct {
	Interp interp.Config
	Log    logConfig
	Repl   replConfig
}

func defaultConfig() quillConfig {
	return quillConfig{
		Interp: interp.DefaultConfig,
		Log: logConfig{
			Verbosity: int(log.LvlWarn),
			Color:     true,
		},
		Repl: replConfig{
			HistoryFile: "~/.quill_history",
			Prompt:      "==> ",
			ContPrompt:  "... ",
		},
	}
}

func loadConfig(file string, cfg *quillConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := decodeConfig(f, cfg); err != nil {
		// Add file name to errors that have a line number.
		var lerr *toml.LineError
		if errors.As(err, &lerr) {
			err = errors.New(file + ", " + err.Error())
		}
		return err
	}
	return nil
}

func decodeConfig(r io.Reader, cfg *quillConfig) error {
	return tomlSettings.NewDecoder(bufio.NewReader(r)).Decode(cfg)
}

// makeConfig loads the configuration file, if any, then applies command line
// flags on top of it.
func makeConfig(ctx *cli.Context) (quillConfig, error) {
	cfg := defaultConfig()
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Log.Color = false
	}
	if ctx.GlobalBool(originsFlag.Name) {
		cfg.Log.Origins = true
	}
	if ctx.GlobalIsSet(cacheSizeFlag.Name) {
		cfg.Interp.CacheSize = ctx.GlobalInt(cacheSizeFlag.Name)
	}
	if ctx.GlobalBool(noCheckFlag.Name) {
		cfg.Interp.Check = false
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
