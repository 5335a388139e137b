/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package cuckoo builds the fixed-size cuckoo hash table used for
// upcoming-repetition detection: https://marcelk.net/2013-04-06/paper/upcoming-rep-v2.pdf
package cuckoo

import (
	"github.com/corvidchess/corvid/attacks"
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/zobrist"
)

const size = 8192
const slotMask = 0x1FFF

var keys [size]zobrist.Key
var moves [size]Move

var initialized bool

// h1 and h2 are the table's two candidate slots for a given key.
func h1(k zobrist.Key) int { return int(k) & slotMask }
func h2(k zobrist.Key) int { return int(k>>16) & slotMask }

// Init populates the table by iterating every ordered pair of squares
// reachable by a single leap or slide of each non-pawn piece on an empty
// board. Installs exactly 3668 entries for the standard piece set.
// Must run after attacks.Init and zobrist.Init.
func Init() {
	if initialized {
		return
	}

	for pt := Knight; pt <= King; pt++ {
		for c := White; c <= Black; c++ {
			piece := MakePiece(c, pt)
			for s0 := Square(0); s0 < Square(SqLength); s0++ {
				for s1 := s0 + 1; s1 < Square(SqLength); s1++ {
					if !reaches(pt, s0, s1) {
						continue
					}

					move := NewMove(s0, s1)
					key := zobrist.PieceSquare(piece, s0) ^ zobrist.PieceSquare(piece, s1) ^ zobrist.SideToMove()

					slot := h1(key)
					for {
						keys[slot], key = key, keys[slot]
						moves[slot], move = move, moves[slot]

						if move == MoveNone {
							break
						}
						if slot == h1(key) {
							slot = h2(key)
						} else {
							slot = h1(key)
						}
					}
				}
			}
		}
	}

	initialized = true
}

func reaches(pt PieceType, from, to Square) bool {
	switch pt {
	case Knight:
		return attacks.Knight(from).Has(to)
	case King:
		return attacks.King(from).Has(to)
	default:
		return attacks.Sliding(pt, from, Empty).Has(to)
	}
}

// Count returns the number of non-empty slots installed by Init, exposed
// for the 3668-entry invariant test.
func Count() int {
	n := 0
	for i := range moves {
		if moves[i] != MoveNone {
			n++
		}
	}
	return n
}

// Probe looks up key in both candidate slots and returns the reversible
// move and true if either slot holds a matching key (MoveNone and false
// otherwise),
// signalling a potential repetition cycle one ply shorter than the
// current search line.
func Probe(key zobrist.Key) (Move, bool) {
	if keys[h1(key)] == key {
		return moves[h1(key)], true
	}
	if keys[h2(key)] == key {
		return moves[h2(key)], true
	}
	return MoveNone, false
}
