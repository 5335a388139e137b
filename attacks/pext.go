/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package attacks

import (
	"golang.org/x/sys/cpu"

	. "github.com/corvidchess/corvid/bitboard"
)

// hasBmi2 gates the PEXT slider path. Real PEXT/PDEP are single x86
// instructions; Go has no way to emit them without hand-written assembly,
// which cannot be authored with confidence here without a compiler and
// assembler to verify it against. pext/pdep below are a bit-for-bit
// software emulation instead, so the PEXT code path is exercised and
// tested identically on every architecture, just without the hardware
// speedup. On a genuine BMI2 host this still picks the PEXT-indexed
// tables over the black-magic fallback, matching the preference order in
// the design this implements.
var hasBmi2 = cpu.X86.HasBMI2

// pext (parallel bits extract) gathers the bits of x selected by mask into
// the low bits of the result, in mask order from LSB to MSB.
func pext(x, mask uint64) uint64 {
	var res uint64
	for bb := uint64(1); mask != 0; bb <<= 1 {
		lsb := mask & (-mask)
		if x&lsb != 0 {
			res |= bb
		}
		mask &= mask - 1
	}
	return res
}

// pdep (parallel bits deposit) scatters the low bits of x into the
// positions selected by mask, the inverse of pext.
func pdep(x, mask uint64) uint64 {
	var res uint64
	for bb := uint64(1); mask != 0; bb <<= 1 {
		lsb := mask & (-mask)
		if x&bb != 0 {
			res |= lsb
		}
		mask &= mask - 1
	}
	return res
}

type pextEntry struct {
	srcMask Bitboard
	dstMask Bitboard
	offset  int
}

var rookPext [SqLength]pextEntry
var bishopPext [SqLength]pextEntry

var rookPextTable []uint16
var bishopPextTable []Bitboard

func buildPextRook() {
	rookPextTable = make([]uint16, 0, 1<<17)
	for sq := Square(0); sq < Square(SqLength); sq++ {
		edges := ((Rank1Bb | Rank8Bb) &^ RankBb(sq.RankOf())) | ((FileABb | FileHBb) &^ FileBb(sq.FileOf()))
		srcMask := slidingAttack(rookDirs, sq, Empty) &^ edges
		dstMask := slidingAttack(rookDirs, sq, Empty)

		entries := 1 << srcMask.Count()
		offset := len(rookPextTable)
		rookPextTable = rookPextTable[:offset+entries]
		rookPext[sq] = pextEntry{srcMask: srcMask, dstMask: dstMask, offset: offset}

		for i := 0; i < entries; i++ {
			occ := Bitboard(pdep(uint64(i), uint64(srcMask)))
			attack := slidingAttack(rookDirs, sq, occ)
			rookPextTable[offset+i] = uint16(pext(uint64(attack), uint64(dstMask)))
		}
	}
}

func buildPextBishop() {
	bishopPextTable = make([]Bitboard, 0, 1<<13)
	for sq := Square(0); sq < Square(SqLength); sq++ {
		edges := ((Rank1Bb | Rank8Bb) &^ RankBb(sq.RankOf())) | ((FileABb | FileHBb) &^ FileBb(sq.FileOf()))
		srcMask := slidingAttack(bishopDirs, sq, Empty) &^ edges

		entries := 1 << srcMask.Count()
		offset := len(bishopPextTable)
		bishopPextTable = bishopPextTable[:offset+entries]
		bishopPext[sq] = pextEntry{srcMask: srcMask, offset: offset}

		for i := 0; i < entries; i++ {
			occ := Bitboard(pdep(uint64(i), uint64(srcMask)))
			bishopPextTable[offset+i] = slidingAttack(bishopDirs, sq, occ)
		}
	}
}

func initPext() {
	buildPextRook()
	buildPextBishop()
}

func rookPextAttacks(sq Square, occupied Bitboard) Bitboard {
	e := &rookPext[sq]
	key := pext(uint64(occupied), uint64(e.srcMask))
	packed := rookPextTable[e.offset+int(key)]
	return Bitboard(pdep(uint64(packed), uint64(e.dstMask)))
}

func bishopPextAttacks(sq Square, occupied Bitboard) Bitboard {
	e := &bishopPext[sq]
	key := pext(uint64(occupied), uint64(e.srcMask))
	return bishopPextTable[e.offset+int(key)]
}
