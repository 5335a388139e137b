/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupIsIdempotent(t *testing.T) {
	ConfFile = "./does-not-exist.toml"
	initialized = false

	Setup()
	firstSize := Settings.TT.SizeMiB

	Settings.TT.SizeMiB = 9999 // mutate after Setup to prove a second call is a no-op
	Setup()

	assert.Equal(t, 9999, Settings.TT.SizeMiB)
	assert.NotEqual(t, 0, firstSize)
}

func TestTTDefaultsAppliedWhenFileMissing(t *testing.T) {
	ConfFile = "./does-not-exist.toml"
	initialized = false
	Setup()

	assert.Equal(t, 128, Settings.TT.SizeMiB)
	assert.Equal(t, 3, Settings.TT.ClusterArity)
}

func TestLogLevelsMapKnownNames(t *testing.T) {
	assert.Equal(t, 5, LogLevels["debug"])
	assert.Equal(t, -1, LogLevels["off"])
}

func TestStringIncludesChess960(t *testing.T) {
	Settings.Chess960 = true
	assert.Contains(t, Settings.String(), "Chess960: true")
}
