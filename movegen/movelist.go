/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package movegen

import (
	"sort"

	"github.com/gammazero/deque"

	. "github.com/corvidchess/corvid/bitboard"
)

// ScoredMove pairs a move with the search layer's ordering key. Generate
// always leaves Score at zero; scoring and sorting is the search layer's
// job, not the generator's.
type ScoredMove struct {
	Move  Move
	Score int32
}

// MoveList is an ordered, appendable sequence of ScoredMove pairs backed by
// a deque. Callers read and update it by index (At/Set); it has no pop
// methods, so moves are not consumed from either end.
type MoveList struct {
	d deque.Deque[ScoredMove]
}

// NewMoveList returns an empty list pre-sized for a typical position's
// pseudo-legal move count.
func NewMoveList() *MoveList {
	ml := &MoveList{}
	ml.d.SetMinCapacity(6) // 2^6 = 64, comfortably above the ~40 moves of a typical middlegame position
	return ml
}

func (ml *MoveList) push(m Move) {
	ml.d.PushBack(ScoredMove{Move: m})
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int { return ml.d.Len() }

// At returns the i'th scored move.
func (ml *MoveList) At(i int) ScoredMove { return ml.d.At(i) }

// Set overwrites the i'th entry, used by the search layer after running its
// own move-ordering heuristic over the list.
func (ml *MoveList) Set(i int, sm ScoredMove) { ml.d.Set(i, sm) }

// Clear empties the list for reuse, avoiding a fresh allocation per node.
func (ml *MoveList) Clear() { ml.d.Clear() }

// Moves returns the plain Move sequence, discarding scores: used by perft
// and other callers that don't care about move ordering.
func (ml *MoveList) Moves() []Move {
	out := make([]Move, ml.Len())
	for i := range out {
		out[i] = ml.At(i).Move
	}
	return out
}

// Contains reports whether m is present in the list, used by tests and by
// legality post-filtering against a generated pseudo-legal list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).Move == m {
			return true
		}
	}
	return false
}

// SortByScoreDescending stable-sorts the list so the highest-scored move
// comes first, used by the search layer once it has filled in scores.
func (ml *MoveList) SortByScoreDescending() {
	n := ml.Len()
	tmp := make([]ScoredMove, n)
	for i := 0; i < n; i++ {
		tmp[i] = ml.At(i)
	}
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].Score > tmp[j].Score })
	for i, sm := range tmp {
		ml.Set(i, sm)
	}
}
