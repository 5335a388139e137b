/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package movegen generates pseudo-legal moves for a position: captures and
// promotions for the search layer's noisy phase, quiet moves and castling
// for its quiet phase, or the union of both for perft and ad-hoc legality
// checks. Legality (a king left in check) is not the generator's job; the
// caller resolves that through position.Legal, or by replaying each move
// and testing whether the mover's own king is attacked.
package movegen

import (
	"github.com/corvidchess/corvid/attacks"
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/position"
)

// Mode selects which subset of pseudo-legal moves Generate emits.
type Mode uint8

const (
	// Noisy covers captures, en passant, and queen promotions.
	Noisy Mode = 1 << iota
	// Quiet covers non-capturing moves, underpromotions, and castling.
	Quiet
	// All is the union, used by perft and legality validation.
	All = Noisy | Quiet
)

// Generate returns every pseudo-legal move of the given mode in p's current
// position.
func Generate(p *position.Position, mode Mode) *MoveList {
	ml := NewMoveList()
	us := p.SideToMove()
	them := us.Flip()
	checkers := p.Checkers()

	generateKingMoves(p, mode, us, them, checkers, ml)
	if checkers.MoreThanOne() {
		// double check: no other piece can resolve it, so nothing else
		// to generate.
		return ml
	}

	destMask := Full
	epMask := Empty
	if checkers != Empty {
		checkerSq := checkers.Lsb()
		destMask = SquareBb(checkerSq) | attacks.Between(p.King(us), checkerSq)
		if ep := p.EnPassant(); ep != SqNone {
			if landed, ok := ep.To(them.Forward()); ok && landed == checkerSq {
				// the checker is exactly the pawn that just double-pushed:
				// capturing it en passant also evades the check.
				epMask = SquareBb(ep)
			}
		}
	} else if ep := p.EnPassant(); ep != SqNone {
		epMask = SquareBb(ep)
	}

	generatePawnMoves(p, mode, us, them, destMask, epMask, ml)
	generatePieceMoves(p, mode, us, destMask, ml)
	if checkers == Empty {
		generateCastling(p, mode, us, ml)
	}
	return ml
}

func generateKingMoves(p *position.Position, mode Mode, us, them Color, checkers Bitboard, ml *MoveList) {
	from := p.King(us)
	own := p.ColorBb(us)
	pseudo := attacks.King(from) &^ own

	if checkers.MoreThanOne() {
		// with two checkers the king must move off the vacated square too:
		// a slider's attack extends through the square it's about to leave.
		occWithoutKing := p.Occupied() &^ SquareBb(from)
		var safe Bitboard
		for b := pseudo; b != Empty; {
			var to Square
			to, b = b.PopLsb()
			if !p.AttackedWithOccupancy(to, them, occWithoutKing) {
				safe = safe.Set(to)
			}
		}
		pseudo = safe
	}

	occ := p.Occupied()
	opp := p.ColorBb(them)
	if mode&Noisy != 0 {
		for b := pseudo & opp; b != Empty; {
			var to Square
			to, b = b.PopLsb()
			ml.push(NewMove(from, to))
		}
	}
	if mode&Quiet != 0 {
		for b := pseudo &^ occ; b != Empty; {
			var to Square
			to, b = b.PopLsb()
			ml.push(NewMove(from, to))
		}
	}
}

// generatePieceMoves generates knight, bishop, rook and queen moves.
func generatePieceMoves(p *position.Position, mode Mode, us Color, destMask Bitboard, ml *MoveList) {
	occ := p.Occupied()
	own := p.ColorBb(us)
	opp := p.ColorBb(us.Flip())

	for pt := Knight; pt <= Queen; pt++ {
		for pieces := p.Pieces(us, pt); pieces != Empty; {
			var from Square
			from, pieces = pieces.PopLsb()

			var pseudo Bitboard
			if pt == Knight {
				pseudo = attacks.Knight(from)
			} else {
				pseudo = attacks.Sliding(pt, from, occ)
			}
			pseudo &^= own
			pseudo &= destMask

			if mode&Noisy != 0 {
				for b := pseudo & opp; b != Empty; {
					var to Square
					to, b = b.PopLsb()
					ml.push(NewMove(from, to))
				}
			}
			if mode&Quiet != 0 {
				for b := pseudo &^ occ; b != Empty; {
					var to Square
					to, b = b.PopLsb()
					ml.push(NewMove(from, to))
				}
			}
		}
	}
}

// generatePawnMoves generates pawn pushes, captures, en passant and
// promotions in bulk: the whole pawn bitboard is shifted in each of the
// four directions a pawn can move, then the resulting destination
// bitboards are walked bit by bit, recovering each move's source square by
// shifting back.
func generatePawnMoves(p *position.Position, mode Mode, us, them Color, destMask, epMask Bitboard, ml *MoveList) {
	pawns := p.Pieces(us, Pawn)
	if pawns == Empty {
		return
	}
	occ := p.Occupied()
	opp := p.ColorBb(them)
	promoRank := RankBb(us.PromotionRank())
	push := us.Forward()
	left := push + West
	right := push + East

	for _, d := range [2]Direction{left, right} {
		targets := Shift(pawns, d) & opp & destMask
		emitPawnCaptures(targets, promoRank, d, mode, ml)

		if epMask != Empty && mode&Noisy != 0 {
			for b := Shift(pawns, d) & epMask; b != Empty; {
				var dst Square
				dst, b = b.PopLsb()
				src, _ := dst.To(-d)
				ml.push(NewTypedMove(src, dst, EnPassant))
			}
		}
	}

	oneAll := Shift(pawns, push) &^ occ
	twoAll := Shift(oneAll, push) &^ occ & RankBb(us.DoublePushRank())

	ones := oneAll & destMask
	promos := ones & promoRank
	pushes := ones &^ promoRank

	if mode&Noisy != 0 {
		for b := promos; b != Empty; {
			var dst Square
			dst, b = b.PopLsb()
			src, _ := dst.To(-push)
			ml.push(NewPromotion(src, dst, Queen))
		}
	}
	if mode&Quiet != 0 {
		for b := pushes; b != Empty; {
			var dst Square
			dst, b = b.PopLsb()
			src, _ := dst.To(-push)
			ml.push(NewMove(src, dst))
		}
		for b := promos; b != Empty; {
			var dst Square
			dst, b = b.PopLsb()
			src, _ := dst.To(-push)
			ml.push(NewPromotion(src, dst, Knight))
			ml.push(NewPromotion(src, dst, Bishop))
			ml.push(NewPromotion(src, dst, Rook))
		}
		for b := twoAll & destMask; b != Empty; {
			var dst Square
			dst, b = b.PopLsb()
			mid, _ := dst.To(-push)
			src, _ := mid.To(-push)
			ml.push(NewMove(src, dst))
		}
	}
}

func emitPawnCaptures(targets, promoRank Bitboard, d Direction, mode Mode, ml *MoveList) {
	promos := targets & promoRank
	nonPromos := targets &^ promoRank

	if mode&Noisy != 0 {
		for b := nonPromos; b != Empty; {
			var dst Square
			dst, b = b.PopLsb()
			src, _ := dst.To(-d)
			ml.push(NewMove(src, dst))
		}
		for b := promos; b != Empty; {
			var dst Square
			dst, b = b.PopLsb()
			src, _ := dst.To(-d)
			ml.push(NewPromotion(src, dst, Queen))
		}
	}
	if mode&Quiet != 0 {
		for b := promos; b != Empty; {
			var dst Square
			dst, b = b.PopLsb()
			src, _ := dst.To(-d)
			ml.push(NewPromotion(src, dst, Knight))
			ml.push(NewPromotion(src, dst, Bishop))
			ml.push(NewPromotion(src, dst, Rook))
		}
	}
}

// generateCastling generates the (at most two) pseudo-legal castling moves
// available to us, reusing position.IsPseudoLegal's own Castling-case path
// validation rather than duplicating the classical/960 emptiness and
// king-transit-attacked checks here.
func generateCastling(p *position.Position, mode Mode, us Color, ml *MoveList) {
	if mode&Quiet == 0 {
		return
	}
	cr := p.CastlingRights()
	for _, side := range [2]CastlingSide{KingSide, QueenSide} {
		if !cr.Has(us, side) {
			continue
		}
		rookSq := p.CastlingRookSquare(us, side)
		if rookSq == SqNone {
			continue
		}
		m := NewTypedMove(p.King(us), rookSq, Castling)
		if p.IsPseudoLegal(m) {
			ml.push(m)
		}
	}
}
