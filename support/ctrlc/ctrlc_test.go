/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package ctrlc

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyInvokesHandlerOnSigint(t *testing.T) {
	fired := make(chan struct{}, 1)
	stop := Notify(func() { fired <- struct{}{} })
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked within timeout")
	}
}

func TestNotifyTwiceWithoutStopPanics(t *testing.T) {
	stop := Notify(func() {})
	defer stop()

	assert.Panics(t, func() {
		Notify(func() {})
	})
}

func TestStopAllowsReinstall(t *testing.T) {
	stop := Notify(func() {})
	stop()

	assert.NotPanics(t, func() {
		stop2 := Notify(func() {})
		stop2()
	})
}
