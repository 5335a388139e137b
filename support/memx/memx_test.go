/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package memx

import "testing"

func TestHintHugePagesIgnoresSmallBuffers(t *testing.T) {
	HintHugePages(make([]byte, 16)) // below threshold: must not panic
}

func TestHintHugePagesAcceptsLargeBuffer(t *testing.T) {
	HintHugePages(make([]byte, HugePageThreshold)) // best-effort; must not panic
}

func TestBindCurrentThreadSingleNodeIsNoop(t *testing.T) {
	if err := BindCurrentThread(0, 1); err != nil {
		t.Fatalf("single-node bind should never fail: %v", err)
	}
}

func TestBindCurrentThreadMultiNodeDoesNotError(t *testing.T) {
	// best-effort: a missing/low core count must not be treated as failure.
	if err := BindCurrentThread(0, 4); err != nil {
		t.Fatalf("bind should degrade gracefully, got: %v", err)
	}
}
