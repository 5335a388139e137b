/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/corvidchess/corvid/bitboard"
)

func TestMain_Init(t *testing.T) {
	Init()
}

func TestKnightAttacksCorner(t *testing.T) {
	Init()
	a1 := Knight(SqA1)
	assert.Equal(t, 2, a1.Count())
	assert.True(t, a1.Has(SqB3))
	assert.True(t, a1.Has(SqC2))
}

func TestKingAttacksCenter(t *testing.T) {
	Init()
	assert.Equal(t, 8, King(SqE4).Count())
}

func TestPawnAttacksNoEnPassant(t *testing.T) {
	Init()
	w := Pawn(White, SqE4)
	assert.True(t, w.Has(SqD5))
	assert.True(t, w.Has(SqF5))
	assert.Equal(t, 2, w.Count())
}

func TestRookAttacksOpenBoard(t *testing.T) {
	Init()
	r := Rook(SqD4, Empty)
	assert.Equal(t, 14, r.Count())
}

func TestRookAttacksBlocked(t *testing.T) {
	Init()
	occ := SquareBb(SqD6)
	r := Rook(SqD4, occ)
	assert.True(t, r.Has(SqD5))
	assert.True(t, r.Has(SqD6))
	assert.False(t, r.Has(SqD7))
}

func TestBishopAttacksOpenBoard(t *testing.T) {
	Init()
	b := Bishop(SqD4, Empty)
	assert.Equal(t, 13, b.Count())
}

func TestQueenIsUnionOfRookAndBishop(t *testing.T) {
	Init()
	occ := SquareBb(SqD6) | SquareBb(SqB4)
	q := Queen(SqD4, occ)
	assert.Equal(t, Rook(SqD4, occ)|Bishop(SqD4, occ), q)
}

func TestBetweenSameLine(t *testing.T) {
	Init()
	assert.True(t, Between(SqA1, SqA4).Has(SqA2))
	assert.True(t, Between(SqA1, SqA4).Has(SqA3))
	assert.False(t, Between(SqA1, SqA4).Has(SqA4))
	assert.Equal(t, Empty, Between(SqA1, SqB3))
}

func TestIntersectingDiagonal(t *testing.T) {
	Init()
	line := Intersecting(SqA1, SqH8)
	assert.True(t, line.Has(SqD4))
	assert.True(t, line.Has(SqA1))
	assert.True(t, line.Has(SqH8))
}

func TestPastBeyondTarget(t *testing.T) {
	Init()
	p := Past(SqA1, SqC3)
	assert.True(t, p.Has(SqD4))
	assert.False(t, p.Has(SqB2))
	assert.False(t, p.Has(SqC3))
}

func TestPextMatchesBlackMagic(t *testing.T) {
	Init()
	for _, occ := range []Bitboard{Empty, SquareBb(SqD6), SquareBb(SqD6) | SquareBb(SqB4) | SquareBb(SqF2)} {
		for sq := Square(0); sq < Square(SqLength); sq++ {
			assert.Equal(t, rookPextAttacks(sq, occ), rookMagics[sq].attack[rookMagics[sq].index(occ)])
			assert.Equal(t, bishopPextAttacks(sq, occ), bishopMagics[sq].attack[bishopMagics[sq].index(occ)])
		}
	}
}
