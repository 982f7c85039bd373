// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package log

import (
	"bytes"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

// locationEnabled is an atomic flag controlling whether the terminal formatter
// should append the log locations too when printing entries.
var locationEnabled uint32

// PrintOrigins sets or unsets log location (file:line) printing for terminal
// format output.
func PrintOrigins(print bool) {
	if print {
		atomic.StoreUint32(&locationEnabled, 1)
	} else {
		atomic.StoreUint32(&locationEnabled, 0)
	}
}

// Format renders a record to bytes.
type Format interface {
	Format(r *Record) []byte
}

// FormatFunc returns a new Format object which uses the given function to
// perform record formatting.
func FormatFunc(f func(*Record) []byte) Format {
	return formatFunc(f)
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte {
	return f(r)
}

// levelColors are the colors TerminalFormat uses for each level.
var levelColors = map[Lvl]*color.Color{
	LvlCrit:  color.New(color.FgMagenta),
	LvlError: color.New(color.FgRed),
	LvlWarn:  color.New(color.FgYellow),
	LvlInfo:  color.New(color.FgGreen),
	LvlDebug: color.New(color.FgCyan),
	LvlTrace: color.New(color.FgBlue),
}

func init() {
	// Whether to color is decided per formatter, not by the library's own
	// terminal detection.
	for _, c := range levelColors {
		c.EnableColor()
	}
}

// TerminalFormat formats log records for human reading on a terminal:
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
//
// Example:
//
//	DEBUG[10-19|12:00:00.000] Parsed program                           name=hello.ql statements=3
func TerminalFormat(usecolor bool) Format {
	return FormatFunc(func(r *Record) []byte {
		lvl := r.Lvl.AlignedString()
		if usecolor {
			lvl = levelColors[r.Lvl].Sprint(lvl)
		}
		b := &bytes.Buffer{}
		if atomic.LoadUint32(&locationEnabled) != 0 {
			fmt.Fprintf(b, "%s[%s|%v] %s ", lvl, r.Time.Format(termTimeFormat), r.Call, r.Msg)
		} else {
			fmt.Fprintf(b, "%s[%s] %s ", lvl, r.Time.Format(termTimeFormat), r.Msg)
		}
		// Try to justify the log output for short messages.
		if len(r.Ctx) > 0 && utf8.RuneCountInString(r.Msg) < termMsgJust {
			b.Write(bytes.Repeat([]byte{' '}, termMsgJust-utf8.RuneCountInString(r.Msg)))
		}
		logfmt(b, r.Ctx, usecolor, levelColors[r.Lvl])
		return b.Bytes()
	})
}

// LogfmtFormat prints records in logfmt format, an easy machine-parseable but
// human-readable format for key/value pairs.
//
// For more details see: http://godoc.org/github.com/kr/logfmt
func LogfmtFormat() Format {
	return FormatFunc(func(r *Record) []byte {
		common := []interface{}{"t", r.Time, "lvl", r.Lvl, "msg", r.Msg}
		buf := &bytes.Buffer{}
		logfmt(buf, append(common, r.Ctx...), false, nil)
		return buf.Bytes()
	})
}

func logfmt(buf *bytes.Buffer, ctx []interface{}, usecolor bool, keyColor *color.Color) {
	for i := 0; i < len(ctx); i += 2 {
		if i != 0 {
			buf.WriteByte(' ')
		}
		k, ok := ctx[i].(string)
		v := formatLogfmtValue(ctx[i+1])
		if !ok {
			k, v = errorKey, formatLogfmtValue(ctx[i])
		}
		if usecolor && keyColor != nil {
			buf.WriteString(keyColor.Sprint(k))
		} else {
			buf.WriteString(k)
		}
		buf.WriteByte('=')
		buf.WriteString(v)
	}
	buf.WriteByte('\n')
}

// formatLogfmtValue formats a value for serialization.
func formatLogfmtValue(value interface{}) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case time.Time:
		return v.Format(timeFormat)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', 3, 64)
	case string:
		return escapeString(v)
	case error:
		return escapeString(v.Error())
	case fmt.Stringer:
		return escapeString(v.String())
	default:
		return escapeString(fmt.Sprintf("%+v", value))
	}
}

// escapeString quotes s when it holds spaces, quotes, '=' or control
// characters.
func escapeString(s string) string {
	needsQuoting := s == ""
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			needsQuoting = true
			break
		}
	}
	if !needsQuoting {
		return s
	}
	return strconv.Quote(s)
}
