/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/attacks"
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/zobrist"
)

func setup() {
	attacks.Init()
	zobrist.Init()
	Init()
}

func TestInstalledEntryCount(t *testing.T) {
	setup()
	assert.Equal(t, 3668, Count())
}

func TestProbeFindsKnownReversibleMove(t *testing.T) {
	setup()
	piece := MakePiece(White, Knight)
	key := zobrist.PieceSquare(piece, SqB1) ^ zobrist.PieceSquare(piece, SqC3) ^ zobrist.SideToMove()
	move, found := Probe(key)
	assert.True(t, found)
	assert.True(t, move.IsValid())
}

func TestProbeRejectsUnrelatedKey(t *testing.T) {
	setup()
	_, found := Probe(zobrist.Key(0x1))
	assert.False(t, found)
}
