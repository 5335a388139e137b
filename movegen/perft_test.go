/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// perftResults holds the well-known standard-position node/capture/e.p./
// check counts per depth, used to validate the generator end to end.
var perftResults = []struct {
	depth     int
	nodes     uint64
	captures  uint64
	enPassant uint64
	checks    uint64
}{
	{1, 20, 0, 0, 0},
	{2, 400, 0, 0, 0},
	{3, 8_902, 34, 0, 12},
	{4, 197_281, 1_576, 0, 469},
}

func TestPerftStandardPosition(t *testing.T) {
	for _, want := range perftResults {
		pf := NewPerft()
		nodes, err := pf.Run(startingFen, want.depth)
		require.NoError(t, err)
		assert.Equalf(t, want.nodes, nodes, "depth %d nodes", want.depth)
		assert.Equalf(t, want.captures, pf.CaptureCounter, "depth %d captures", want.depth)
		assert.Equalf(t, want.enPassant, pf.EnPassantCounter, "depth %d en passant", want.depth)
		assert.Equalf(t, want.checks, pf.CheckCounter, "depth %d checks", want.depth)
	}
}

// Kiwipete is the standard second perft-suite position, heavy on
// castling, captures and promotions, used by every engine's test suite
// since Gerd Isenberg first published it.
const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftKiwipete(t *testing.T) {
	pf := NewPerft()
	nodes, err := pf.Run(kiwipeteFen, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(48), nodes)

	nodes, err = pf.Run(kiwipeteFen, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_039), nodes)
}

// chess960BackRank is a Fischer-Random-style back rank (rooks on b/g,
// bishops on c/f, king on e, no knights) used to exercise the 960 castling
// paths: with the king boxed in by its own queen/pawn/bishop and both
// castling transit squares occupied, every legal depth-1 move is a pawn
// push or one of the two rooks' single sidestep to the corner.
const chess960BackRank = "1rbqkbr1/pppppppp/8/8/8/8/PPPPPPPP/1RBQKBR1 w GBgb - 0 1"

func TestPerftChess960BackRankIsBoxedIn(t *testing.T) {
	pf := NewPerft()
	nodes, err := pf.Run(chess960BackRank, 1)
	require.NoError(t, err)
	// 16 pawn pushes (8 pawns x single/double) + b1-a1 and g1-h1 rook
	// sidesteps; both bishops, the queen and the king are boxed in by
	// their own pawns, and both castling transit squares are occupied.
	assert.Equal(t, uint64(18), nodes)
}

func TestPerftReportFormatsCounters(t *testing.T) {
	pf := NewPerft()
	_, err := pf.Run(startingFen, 2)
	require.NoError(t, err)
	report := pf.Report(2, 0)
	assert.Contains(t, report, "nodes=400")
}
