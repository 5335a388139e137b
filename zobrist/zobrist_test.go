/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package zobrist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/corvidchess/corvid/bitboard"
)

func TestInitIsDeterministic(t *testing.T) {
	Init()
	a := PieceSquare(MakePiece(White, Pawn), SqE4)
	Init() // second call must be a no-op, not re-seed
	b := PieceSquare(MakePiece(White, Pawn), SqE4)
	assert.Equal(t, a, b)
}

func TestKeysAreDistinct(t *testing.T) {
	Init()
	seen := make(map[Key]bool)
	for pc := 0; pc < 12; pc++ {
		for sq := Square(0); sq < Square(SqLength); sq++ {
			k := pieceSquare[pc][sq]
			assert.False(t, seen[k], "duplicate zobrist key generated")
			seen[k] = true
		}
	}
	assert.False(t, seen[SideToMove()])
	seen[SideToMove()] = true
}

func TestCastlingAndEnPassantKeysPopulated(t *testing.T) {
	Init()
	assert.NotEqual(t, Key(0), CastlingKey(AnyCastling))
	assert.NotEqual(t, CastlingKey(NoCastling), CastlingKey(AnyCastling))
	assert.NotEqual(t, EnPassantFile(FileA), EnPassantFile(FileH))
}
