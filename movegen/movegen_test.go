/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/position"
)

func legalMoves(t *testing.T, p *position.Position, mode Mode) []Move {
	t.Helper()
	ml := Generate(p, mode)
	var out []Move
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		if p.Legal(m) {
			out = append(out, m)
		}
	}
	return out
}

func TestStartingPositionMoveCount(t *testing.T) {
	p := position.NewStarting()
	moves := legalMoves(t, p, All)
	assert.Len(t, moves, 20)

	noisy := legalMoves(t, p, Noisy)
	assert.Empty(t, noisy, "no captures or promotions available on move 1")

	quiet := legalMoves(t, p, Quiet)
	assert.Len(t, quiet, 20)
}

func TestNoisyModeOnlyProducesCapturesEpAndQueenPromotions(t *testing.T) {
	p, err := position.NewFromFen("r3k3/1P6/8/3pP3/8/8/8/4K3 w q d6 0 1")
	require.NoError(t, err)

	ml := Generate(p, Noisy)
	require.Greater(t, ml.Len(), 0)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		switch m.Type() {
		case EnPassant:
			assert.Equal(t, SqD6, m.Dst())
		case Promotion:
			assert.Equal(t, Queen, m.PromotionType())
		case Standard:
			assert.NotEqual(t, PieceNone, p.PieceAt(m.Dst()), "standard noisy move must be a capture")
		case Castling:
			t.Fatalf("castling must never be noisy")
		}
	}
}

func TestQuietModeExcludesCapturesAndQueenPromotions(t *testing.T) {
	p, err := position.NewFromFen("r3k3/1P6/8/3pP3/8/8/8/4K3 w q d6 0 1")
	require.NoError(t, err)

	ml := Generate(p, Quiet)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		assert.NotEqual(t, EnPassant, m.Type())
		if m.Type() == Promotion {
			assert.NotEqual(t, Queen, m.PromotionType())
		}
		if m.Type() == Standard {
			assert.Equal(t, PieceNone, p.PieceAt(m.Dst()))
		}
	}
}

func TestDoubleCheckOnlyGeneratesKingMoves(t *testing.T) {
	// black rook gives check along the rank, black bishop gives check
	// along the diagonal: the white king on e1 is double-checked.
	p, err := position.NewFromFen("4k3/8/8/8/8/8/3b4/r3K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, p.Checkers().MoreThanOne())

	ml := Generate(p, All)
	for i := 0; i < ml.Len(); i++ {
		assert.Equal(t, SqE1, ml.At(i).Move.Src(), "only the king may move under double check")
	}
}

func TestSingleCheckRestrictsNonKingMovesToBlockOrCapture(t *testing.T) {
	// white queen on e5 checks the black king on e8 along the e-file: any
	// generated non-king move must either capture the queen or land on
	// e6/e7 to block.
	p, err := position.NewFromFen("4k3/8/2b5/4Q3/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	require.Equal(t, 1, p.Checkers().Count())

	ml := Generate(p, All)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		if m.Src() == SqE8 {
			continue // king moves aren't mask-restricted here
		}
		require.True(t, p.Legal(m), "non-king pseudo-legal move %s must actually evade check", m)
	}
}

func TestEnPassantEvadesCheckFromDoublePushedPawn(t *testing.T) {
	// white king d4, white pawn d5; black double-pushes e7-e5, which both
	// checks d4 (black pawn attacks diagonally towards rank 1) and can be
	// captured en passant by the d5 pawn.
	p, err := position.NewFromFen("k7/4p3/8/3P4/3K4/8/8/8 b - - 0 1")
	require.NoError(t, err)
	p.ApplyMove(NewMove(SqE7, SqE5))
	require.True(t, p.IsCheck())
	require.Equal(t, 1, p.Checkers().Count())

	ml := Generate(p, All)
	found := false
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		if m.Type() == EnPassant {
			found = true
			assert.True(t, p.Legal(m))
		}
	}
	assert.True(t, found, "en passant capture of the checking pawn should be generated")
}

func TestCastlingOnlyInQuietMode(t *testing.T) {
	p, err := position.NewFromFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	noisy := Generate(p, Noisy)
	for i := 0; i < noisy.Len(); i++ {
		assert.NotEqual(t, Castling, noisy.At(i).Move.Type())
	}

	quiet := Generate(p, Quiet)
	var sides int
	for i := 0; i < quiet.Len(); i++ {
		if quiet.At(i).Move.Type() == Castling {
			sides++
		}
	}
	assert.Equal(t, 2, sides)
}

func TestCastlingNotGeneratedWhileInCheck(t *testing.T) {
	p, err := position.NewFromFen("r3k2r/8/8/8/4R3/8/8/4K3 b kq - 0 1")
	require.NoError(t, err)
	require.True(t, p.IsCheck())

	ml := Generate(p, All)
	for i := 0; i < ml.Len(); i++ {
		assert.NotEqual(t, Castling, ml.At(i).Move.Type())
	}
}

func TestMoveListScoreDefaultsToZeroAndSortWorks(t *testing.T) {
	p := position.NewStarting()
	ml := Generate(p, All)
	require.Greater(t, ml.Len(), 0)
	for i := 0; i < ml.Len(); i++ {
		assert.Equal(t, int32(0), ml.At(i).Score)
	}

	sm := ml.At(0)
	sm.Score = 100
	ml.Set(0, sm)
	ml.SortByScoreDescending()
	assert.Equal(t, int32(100), ml.At(0).Score)
}
