/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package attacks

import . "github.com/corvidchess/corvid/bitboard"

var betweenBb [SqLength][SqLength]Bitboard
var intersectingBb [SqLength][SqLength]Bitboard

var rookDirs = [4]Direction{North, South, East, West}
var bishopDirs = [4]Direction{Northeast, Southeast, Southwest, Northwest}

// slidingAttack walks each of the four given directions from sq until it
// runs off the board or hits a square already set in occupied (inclusive
// of that blocking square). Used to build the magic and PEXT tables and,
// through rookAttacksOnEmpty/bishopAttacksOnEmpty, by initRays to test
// whether two squares share a line.
func slidingAttack(dirs [4]Direction, sq Square, occupied Bitboard) Bitboard {
	var attack Bitboard
	for _, d := range dirs {
		s := sq
		for {
			next, ok := s.To(d)
			if !ok {
				break
			}
			s = next
			attack = attack.Set(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}

func initRays() {
	for a := Square(0); a < Square(SqLength); a++ {
		for _, dirs := range [2][4]Direction{rookDirs, bishopDirs} {
			for _, d := range dirs {
				line := Empty
				s := a
				for {
					next, ok := s.To(d)
					if !ok {
						break
					}
					s = next
					line = line.Set(s)
					betweenBb[a][s] = line &^ SquareBb(s)
				}
			}
		}
	}
	for a := Square(0); a < Square(SqLength); a++ {
		for b := Square(0); b < Square(SqLength); b++ {
			if a == b {
				continue
			}
			if !rookAttacksOnEmpty(a).Has(b) && !bishopAttacksOnEmpty(a).Has(b) {
				continue
			}
			full := SquareBb(a) | SquareBb(b) | betweenBb[a][b]
			// extend past both ends of the a-b segment to cover the whole line
			full |= rayExtend(a, b) | rayExtend(b, a)
			intersectingBb[a][b] = full
		}
	}
}

func rookAttacksOnEmpty(sq Square) Bitboard   { return slidingAttack(rookDirs, sq, Empty) }
func bishopAttacksOnEmpty(sq Square) Bitboard { return slidingAttack(bishopDirs, sq, Empty) }

// rayExtend returns the squares beyond b along the ray from a through b,
// including b's far edge but not a or b themselves.
func rayExtend(a, b Square) Bitboard {
	d := directionBetween(a, b)
	if d == 0 {
		return Empty
	}
	var out Bitboard
	s := b
	for {
		next, ok := s.To(d)
		if !ok {
			break
		}
		s = next
		out = out.Set(s)
	}
	return out
}

func directionBetween(a, b Square) Direction {
	af, ar := int(a.FileOf()), int(a.RankOf())
	bf, br := int(b.FileOf()), int(b.RankOf())
	df, dr := bf-af, br-ar
	switch {
	case df == 0 && dr > 0:
		return North
	case df == 0 && dr < 0:
		return South
	case dr == 0 && df > 0:
		return East
	case dr == 0 && df < 0:
		return West
	case df == dr && df > 0:
		return Northeast
	case df == dr && df < 0:
		return Southwest
	case df == -dr && df > 0:
		return Southeast
	case df == -dr && df < 0:
		return Northwest
	default:
		return 0
	}
}

// Between returns the squares strictly between a and b if they share a
// rank, file or diagonal, else Empty.
func Between(a, b Square) Bitboard { return betweenBb[a][b] }

// Intersecting returns the full line through a and b (including both) if
// they are collinear, else Empty.
func Intersecting(a, b Square) Bitboard { return intersectingBb[a][b] }

// Past returns the squares beyond b along the ray from a through b.
func Past(a, b Square) Bitboard {
	if Intersecting(a, b) == Empty {
		return Empty
	}
	return rayExtend(a, b)
}
