/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package tt

import (
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/zobrist"
)

// Flag records why a stored score is or isn't exact: a fail-low bound, a
// fail-high bound, an exact score, or (the zero value) an empty slot.
type Flag uint8

const (
	FlagNone Flag = iota
	FlagUpper
	FlagLower
	FlagExact
)

const (
	ageBits  = 5
	ageMask  = 1<<ageBits - 1
	pvShift  = ageBits
	pvBit    = uint8(1) << pvShift
	flagShift = ageBits + 1

	// AgeCycle bounds the age counter; replacement weight wraps modulo this.
	AgeCycle = 1 << ageBits

	// entriesPerCluster is the cluster arity: every probe/put scans this
	// many candidate slots before falling back to the weighted eviction.
	entriesPerCluster = 3
)

// entry is one packed transposition-table record: key (16 bits), move (16
// bits), score and static eval (16 bits each), depth (8 bits) and a final
// byte packing 5 bits of age, a "was on pv" bit and a 2-bit Flag.
type entry struct {
	key       uint16
	move      Move
	score     int16
	eval      int16
	depth     uint8
	genPvFlag uint8
}

func (e entry) flag() Flag   { return Flag(e.genPvFlag >> flagShift) }
func (e entry) age() uint8   { return e.genPvFlag & ageMask }
func (e entry) pv() bool     { return e.genPvFlag&pvBit != 0 }
func (e entry) filled() bool { return e.flag() != FlagNone }

func packGenPvFlag(age uint8, pv bool, flag Flag) uint8 {
	v := age & ageMask
	if pv {
		v |= pvBit
	}
	return v | uint8(flag)<<flagShift
}

// cluster is the table's bucket: entriesPerCluster slots sharing one index,
// so probe/put can absorb a hash collision without evicting immediately.
type cluster struct {
	entries [entriesPerCluster]entry
}

func packKey(key zobrist.Key) uint16 { return uint16(key) }

// scoreToTt re-biases a mate/TB score by the current ply so the stored
// value reflects "plies to mate from this node", not from the root;
// scoreFromTt undoes it on probe. Scores within the normal evaluation range
// (|score| <= Win) are stored unchanged.
func scoreToTt(score Value, ply int) Value {
	switch {
	case score < -Win:
		return score - Value(ply)
	case score > Win:
		return score + Value(ply)
	default:
		return score
	}
}

func scoreFromTt(score Value, ply int) Value {
	switch {
	case score < -Win:
		return score + Value(ply)
	case score > Win:
		return score - Value(ply)
	default:
		return score
	}
}
