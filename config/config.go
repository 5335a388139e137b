/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package config holds globally available configuration variables, either
// defaulted in code, read from a TOML file, or overridden by command-line
// options.
package config

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/corvidchess/corvid/util"
)

// globally available config values.
var (
	// ConfFile is the path to the config file, relative to the working
	// directory. Callers that want a different path must set this before
	// calling Setup.
	ConfFile = "./config.toml"

	// LogLevel is the general log level, overridable by the config file or
	// command-line options.
	LogLevel = 4

	// SearchLogLevel is the search-specific log level.
	SearchLogLevel = 4

	// TestLogLevel is the log level used by test helpers.
	TestLogLevel = 4

	// Settings is the global configuration, populated by Setup.
	Settings conf

	initialized = false
)

type conf struct {
	Log      logConfiguration
	TT       ttConfiguration
	Eval     evalConfiguration
	Chess960 bool
}

// Setup reads the config file named by ConfFile and applies defaults for
// anything it doesn't set. It is idempotent: a second call is a no-op, so
// packages that each want to guarantee configuration is ready can all call
// it without coordinating.
func Setup() {
	if initialized {
		return
	}

	path, err := util.ResolveFile(ConfFile)
	if err != nil {
		path = ConfFile
	}
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		log.Println("config file not found, using defaults (", err, ")")
	}

	setupLogLvl()
	setupTT()
	setupEval()

	initialized = true
}

// String renders the current TT and evaluation settings for diagnostics
// (the "debug config" UCI command), using reflection the way FrankyGo's own
// settings dump does.
func (s *conf) String() string {
	var b strings.Builder

	b.WriteString("TT Config:\n")
	dumpFields(&b, reflect.ValueOf(&s.TT).Elem())

	b.WriteString("\nEvaluation Config:\n")
	dumpFields(&b, reflect.ValueOf(&s.Eval).Elem())

	fmt.Fprintf(&b, "\nChess960: %v\n", s.Chess960)
	return b.String()
}

func dumpFields(b *strings.Builder, v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		fmt.Fprintf(b, "%-2d: %-22s %-6s = %v\n", i, t.Field(i).Name, f.Type(), f.Interface())
	}
}
