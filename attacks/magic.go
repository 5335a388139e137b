/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package attacks

import . "github.com/corvidchess/corvid/bitboard"

// magic holds one square's black-magic slider attack table. The index
// formula is the "black magic" variant: irrelevant occupancy bits are
// forced to 1 (via `occupied | ^mask`) rather than masked to 0, which
// lets the multiply constant be found just as easily while keeping the
// table entries themselves plain full-board attack bitboards.
type magic struct {
	mask   Bitboard
	magic  Bitboard
	shift  uint
	attack []Bitboard
}

func (m *magic) index(occupied Bitboard) uint {
	return uint(((occupied | ^m.mask) * m.magic) >> m.shift)
}

var rookMagics [SqLength]magic
var bishopMagics [SqLength]magic

// rand64 seeds are the same per-rank seeds Stockfish uses to find magics
// quickly; they have no significance beyond empirically converging fast.
var magicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

type prng struct{ s uint64 }

func newPrng(seed uint64) *prng { return &prng{s: seed} }

func (r *prng) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparse returns a random value with roughly 1/8th of its bits set on
// average, which converges to a valid magic multiplier far faster than a
// uniformly random 64-bit value.
func (r *prng) sparse() uint64 { return r.next() & r.next() & r.next() }

func initMagic(magics *[SqLength]magic, dirs [4]Direction) {
	table := make([]Bitboard, 0, 1<<18)
	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0

	for sq := Square(0); sq < Square(SqLength); sq++ {
		edges := ((Rank1Bb | Rank8Bb) &^ RankBb(sq.RankOf())) | ((FileABb | FileHBb) &^ FileBb(sq.FileOf()))
		m := &magics[sq]
		m.mask = slidingAttack(dirs, sq, Empty) &^ edges
		m.shift = uint(64 - m.mask.Count())

		size := 0
		var b Bitboard
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(dirs, sq, b)
			size++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}

		start := len(table)
		table = table[:start+size]
		m.attack = table[start : start+size]

		rng := newPrng(magicSeeds[sq.RankOf()])
		for i := 0; i < size; {
			for {
				m.magic = Bitboard(rng.sparse())
				if ((m.magic * m.mask) >> 56).Count() >= 6 {
					break
				}
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.attack[idx] = reference[i]
				} else if m.attack[idx] != reference[i] {
					break
				}
			}
		}
	}
}

func initMagics() {
	initMagic(&rookMagics, rookDirs)
	initMagic(&bishopMagics, bishopDirs)
}

// Rook returns the rook attack set from sq given the full board occupancy,
// using the PEXT-indexed table when the host supports BMI2 and the
// black-magic fallback otherwise.
func Rook(sq Square, occupied Bitboard) Bitboard {
	if hasBmi2 {
		return rookPextAttacks(sq, occupied)
	}
	m := &rookMagics[sq]
	return m.attack[m.index(occupied)]
}

// Bishop returns the bishop attack set from sq given the full board
// occupancy, using the PEXT-indexed table when the host supports BMI2 and
// the black-magic fallback otherwise.
func Bishop(sq Square, occupied Bitboard) Bitboard {
	if hasBmi2 {
		return bishopPextAttacks(sq, occupied)
	}
	m := &bishopMagics[sq]
	return m.attack[m.index(occupied)]
}

// Queen returns the queen attack set from sq given the full board
// occupancy: the union of the rook and bishop attack sets.
func Queen(sq Square, occupied Bitboard) Bitboard {
	return Rook(sq, occupied) | Bishop(sq, occupied)
}

// Sliding returns the attack set of a sliding piece type (Bishop, Rook or
// Queen) from sq given the full board occupancy.
func Sliding(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return attacksBishop(sq, occupied)
	case Rook:
		return attacksRook(sq, occupied)
	case Queen:
		return Queen(sq, occupied)
	default:
		return Empty
	}
}

func attacksBishop(sq Square, occupied Bitboard) Bitboard { return Bishop(sq, occupied) }
func attacksRook(sq Square, occupied Bitboard) Bitboard   { return Rook(sq, occupied) }
