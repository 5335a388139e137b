/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package logging is a thin wrapper around github.com/op/go-logging that
// gives every subsystem its own named logger while sharing one backend
// format and level, configured from the "config" package.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/config"
)

// Out is the localized printer used for numbers shown to the user
// (hashfull, perft counts, TT stats), matching the teacher's own "out"
// printer convention.
var Out = message.NewPrinter(language.English)

var (
	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
	)

	loggers = map[string]*logging.Logger{}
)

func namedLogger(name string) *logging.Logger {
	if l, ok := loggers[name]; ok {
		return l
	}
	l := logging.MustGetLogger(name)
	loggers[name] = l
	return l
}

func withLevel(l *logging.Logger, level int) *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(level), "")
	l.SetBackend(leveled)
	return l
}

// GetLog returns the standard engine-wide logger.
func GetLog() *logging.Logger { return withLevel(namedLogger("standard"), config.LogLevel) }

// GetSearchLog returns the logger used by the search package.
func GetSearchLog() *logging.Logger { return withLevel(namedLogger("search"), config.SearchLogLevel) }

// GetTestLog returns the logger used by test helpers.
func GetTestLog() *logging.Logger { return withLevel(namedLogger("test"), config.TestLogLevel) }

// GetBoardLog returns the position/board-representation subsystem logger.
func GetBoardLog() *logging.Logger { return withLevel(namedLogger("board"), config.LogLevel) }

// GetMovegenLog returns the move-generation subsystem logger.
func GetMovegenLog() *logging.Logger { return withLevel(namedLogger("movegen"), config.LogLevel) }

// GetTTLog returns the transposition-table subsystem logger.
func GetTTLog() *logging.Logger { return withLevel(namedLogger("tt"), config.LogLevel) }

// GetCuckooLog returns the cuckoo (repetition-detection) subsystem logger.
func GetCuckooLog() *logging.Logger { return withLevel(namedLogger("cuckoo"), config.LogLevel) }

// GetAttacksLog returns the attack/ray-table subsystem logger.
func GetAttacksLog() *logging.Logger { return withLevel(namedLogger("attacks"), config.LogLevel) }
