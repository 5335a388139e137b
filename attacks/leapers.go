/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package attacks builds and serves the engine's precomputed attack tables:
// knight/king/pawn leaper tables, magic-indexed (and, where available,
// PEXT-indexed) slider tables, and the between/intersecting/past ray
// tables used for pin detection, check evasion and castling safety.
package attacks

import . "github.com/corvidchess/corvid/bitboard"

var knightAttacks [SqLength]Bitboard
var kingAttacks [SqLength]Bitboard
var pawnAttacks [ColorLength][SqLength]Bitboard

var knightDirs = [8]Direction{17, 15, 10, 6, -6, -10, -15, -17}
var kingDirs = [8]Direction{North, Northeast, East, Southeast, South, Southwest, West, Northwest}

func initLeapers() {
	for sq := Square(0); sq < Square(SqLength); sq++ {
		knightAttacks[sq] = knightStep(sq)
		kingAttacks[sq] = kingStep(sq)
		pawnAttacks[White][sq] = pawnStep(sq, White)
		pawnAttacks[Black][sq] = pawnStep(sq, Black)
	}
}

func knightStep(sq Square) Bitboard {
	var b Bitboard
	f, r := sq.FileOf(), sq.RankOf()
	deltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for _, d := range deltas {
		nf, nr := int(f)+d[0], int(r)+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		b = b.Set(SquareOf(File(nf), Rank(nr)))
	}
	return b
}

func kingStep(sq Square) Bitboard {
	var b Bitboard
	for _, d := range kingDirs {
		if dst, ok := sq.To(d); ok {
			b = b.Set(dst)
		}
	}
	return b
}

func pawnStep(sq Square, c Color) Bitboard {
	var b Bitboard
	fwd := c.Forward()
	left, right := fwd+West, fwd+East
	if dst, ok := sq.To(left); ok {
		b = b.Set(dst)
	}
	if dst, ok := sq.To(right); ok {
		b = b.Set(dst)
	}
	return b
}

// Knight returns the knight attack set from sq.
func Knight(sq Square) Bitboard { return knightAttacks[sq] }

// King returns the king attack set from sq.
func King(sq Square) Bitboard { return kingAttacks[sq] }

// Pawn returns the pawn capture attack set from sq for a pawn of color c.
// This table deliberately excludes en-passant: the position layer is
// responsible for adding the e.p. square to the generator's capture mask.
func Pawn(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }
