/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package assert gates invariant self-checks behind a compile-time
// constant so they cost nothing in a release build while still reading,
// at the call site, as "this must always hold".
//
// Call sites look like:
//
//	if assert.DEBUG {
//		assert.Assert(p.PieceAt(sq) != PieceNone, "mailbox/bitboard mismatch at %s", sq)
//	}
//
// The outer "if assert.DEBUG" is required even though Assert itself is a
// no-op in this build: Go always evaluates a function's arguments before
// the call, so an unguarded assert.Assert(expensiveCheck(), ...) pays for
// expensiveCheck() on every call regardless of what Assert does with it.
package assert

// DEBUG gates invariant checks throughout the engine. It is false in this
// build; flipping it to true (and supplying an Assert that panics instead
// of doing nothing) is how a debug build would be produced.
const DEBUG = false

// Assert reports an invariant violation. In this build it is a no-op;
// callers must still guard calls with "if assert.DEBUG" (see package doc)
// so the check's own cost disappears along with the panic.
func Assert(test bool, msg string, a ...interface{}) {}
