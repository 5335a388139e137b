/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package position

import (
	"fmt"

	"github.com/corvidchess/corvid/attacks"
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/cuckoo"
)

// attackersTo returns the bitboard of byColor's pieces that attack sq
// against the current occupancy.
func (p *Position) attackersTo(sq Square, byColor Color) Bitboard {
	return p.attackersToOccupied(sq, byColor, p.Occupied())
}

// attackersToOccupied is attackersTo parameterized on occupancy, letting
// callers answer "what if this square were emptied/filled" queries (e.g.
// x-ray attacks through a piece about to move) without mutating the board.
func (p *Position) attackersToOccupied(sq Square, byColor Color, occ Bitboard) Bitboard {
	attackers := attacks.Pawn(byColor.Flip(), sq) & p.Pieces(byColor, Pawn)
	attackers |= attacks.Knight(sq) & p.Pieces(byColor, Knight)
	attackers |= attacks.King(sq) & p.Pieces(byColor, King)
	bishops := p.Pieces(byColor, Bishop) | p.Pieces(byColor, Queen)
	attackers |= attacks.Bishop(sq, occ) & bishops
	rooks := p.Pieces(byColor, Rook) | p.Pieces(byColor, Queen)
	attackers |= attacks.Rook(sq, occ) & rooks
	return attackers
}

// AttackedWithOccupancy reports whether sq would be attacked by by if the
// board's occupancy were occ instead of the actual current occupancy.
// Used by movegen to test a king's destination squares with the king's
// own square removed from the blocking set, since a slider's attack
// extends through the square the king is about to vacate.
func (p *Position) AttackedWithOccupancy(sq Square, by Color, occ Bitboard) bool {
	return p.attackersToOccupied(sq, by, occ) != Empty
}

// allAttackersTo returns attackers of both colors against the given
// occupancy, used by SEE-style "who attacks this square once pieces have
// been lifted off it" logic.
func (p *Position) allAttackersTo(sq Square, occ Bitboard) Bitboard {
	return p.attackersToOccupied(sq, White, occ) | p.attackersToOccupied(sq, Black, occ)
}

// IsAttacked reports whether sq is attacked by any of by's pieces.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, by) != Empty
}

// anyAttacked reports whether any square in mask is attacked by by's
// pieces, used to validate the king's path is safe when castling.
func (p *Position) anyAttacked(mask Bitboard, by Color) bool {
	for b := mask; b != Empty; {
		var sq Square
		sq, b = b.PopLsb()
		if p.IsAttacked(sq, by) {
			return true
		}
	}
	return false
}

// IsPseudoLegal reports whether m is a pseudo-legal move in the current
// position: piece ownership, destination occupancy, and movement pattern
// are all checked, but a king left in check by m is not (Legal does that,
// cheaply, by replaying the move and testing whether the mover's king is
// attacked).
func (p *Position) IsPseudoLegal(m Move) bool {
	if !m.IsValid() {
		return false
	}
	us := p.sideToMove
	src, dst := m.Src(), m.Dst()
	moving := p.board[src]
	if moving == PieceNone || moving.ColorOf() != us {
		return false
	}
	target := p.board[dst]
	if target != PieceNone && target.ColorOf() == us && m.Type() != Castling {
		return false
	}

	switch m.Type() {
	case EnPassant:
		if moving.TypeOf() != Pawn || dst != p.enPassant {
			return false
		}
		return attacks.Pawn(us, src)&SquareBb(dst) != Empty

	case Castling:
		side := castlingSideOf(src, dst)
		if p.board[dst] != MakePiece(us, Rook) || p.castlingRookSq[us][side] != dst {
			return false
		}
		if !p.castlingRights.Has(us, side) {
			return false
		}
		if p.IsCheck() {
			return false
		}
		kingDest, rookDest := KingDestination(us, side), RookDestination(us, side)
		path := attacks.Between(src, dst) | SquareBb(kingDest) | SquareBb(rookDest)
		path &^= SquareBb(src) | SquareBb(dst)
		if path&p.Occupied() != Empty {
			return false
		}
		kingPath := attacks.Between(src, kingDest) | SquareBb(src) | SquareBb(kingDest)
		return !p.anyAttacked(kingPath, us.Flip())

	case Promotion:
		if moving.TypeOf() != Pawn || dst.RankOf() != us.PromotionRank() {
			return false
		}
	}

	switch moving.TypeOf() {
	case Pawn:
		return p.pawnMoveMatches(us, src, dst, target)
	case Knight:
		return attacks.Knight(src)&SquareBb(dst) != Empty
	case King:
		return attacks.King(src)&SquareBb(dst) != Empty
	default:
		return attacks.Sliding(moving.TypeOf(), src, p.Occupied())&SquareBb(dst) != Empty
	}
}

func (p *Position) pawnMoveMatches(us Color, src, dst Square, target Piece) bool {
	if attacks.Pawn(us, src)&SquareBb(dst) != Empty {
		return target != PieceNone
	}
	fwd, ok := src.To(us.Forward())
	if !ok {
		return false
	}
	if fwd == dst {
		return target == PieceNone
	}
	if src.RankOf() != us.StartRank() {
		return false
	}
	fwd2, ok := fwd.To(us.Forward())
	return ok && fwd2 == dst && target == PieceNone && p.board[fwd] == PieceNone
}

// Legal reports whether m is legal: pseudo-legal, and does not leave the
// mover's own king in check.
func (p *Position) Legal(m Move) bool {
	if !p.IsPseudoLegal(m) {
		return false
	}
	us := p.sideToMove
	p.ApplyMove(m)
	stillInCheck := p.attackersTo(p.kingSq[us], us.Flip()) != Empty
	p.PopMove()
	return !stillInCheck
}

// IsDrawn reports whether the position is drawn by the 50-move rule,
// threefold repetition, or insufficient mating material.
func (p *Position) IsDrawn() bool {
	if p.halfmoveClock >= 100 {
		return true
	}
	if p.isInsufficientMaterial() {
		return true
	}
	return p.isThreefoldRepetition()
}

func (p *Position) isThreefoldRepetition() bool {
	n := len(p.history)
	limit := p.halfmoveClock
	if limit > n {
		limit = n
	}
	seen := 0
	// positions repeat every 2 plies; walk back only as far as the last
	// irreversible move (halfmoveClock resets there).
	for i := 4; i <= limit; i += 2 {
		if p.history[n-i].key == p.key {
			seen++
			if seen >= 2 {
				return true
			}
		}
	}
	return false
}

var lightSquares = func() Bitboard {
	var b Bitboard
	for sq := Square(0); sq < Square(SqLength); sq++ {
		if (int(sq.FileOf())+int(sq.RankOf()))%2 == 1 {
			b = b.Set(sq)
		}
	}
	return b
}()

// isInsufficientMaterial reports whether neither side has enough material
// to force mate: K v K, K+N v K, K+B v K, K+N v K+N, or K+B v K+B with the
// two bishops on opposite-colored squares.
func (p *Position) isInsufficientMaterial() bool {
	if p.Pieces(White, Pawn) != Empty || p.Pieces(Black, Pawn) != Empty {
		return false
	}
	if p.Pieces(White, Rook) != Empty || p.Pieces(Black, Rook) != Empty {
		return false
	}
	if p.Pieces(White, Queen) != Empty || p.Pieces(Black, Queen) != Empty {
		return false
	}
	wb := p.Pieces(White, Bishop)
	bb := p.Pieces(Black, Bishop)
	wMinor := p.Pieces(White, Knight) | wb
	bMinor := p.Pieces(Black, Knight) | bb
	total := wMinor.Count() + bMinor.Count()

	switch {
	case total == 0:
		return true // K v K
	case total == 1:
		return true // K+N or K+B v K
	case total == 2 && wb == Empty && bb == Empty && wMinor.Count() == 1:
		return true // K+N v K+N
	case total == 2 && wb.Count() == 1 && bb.Count() == 1:
		return (wb&lightSquares != Empty) != (bb&lightSquares != Empty)
	default:
		return false
	}
}

// HasUpcomingRepetition reports whether a repetition of the current
// position is reachable within the remaining moves to the last
// irreversible one, using the cuckoo table of reversible piece moves to
// avoid replaying the whole history (the cuckoo package cites the method).
func (p *Position) HasUpcomingRepetition(ply int) bool {
	n := len(p.history)
	limit := p.halfmoveClock
	if limit > n {
		limit = n
	}
	if limit < 3 {
		return false
	}
	occ := p.Occupied()
	for i := 3; i <= limit; i += 2 {
		moveKey := p.key ^ p.history[n-i].key
		move, found := cuckoo.Probe(moveKey)
		if !found {
			continue
		}
		s1, s2 := move.Src(), move.Dst()
		between := attacks.Between(s1, s2) &^ (SquareBb(s1) | SquareBb(s2))
		if between&occ != Empty {
			continue
		}
		if ply > i {
			return true
		}
		// repetition occurs at or before the root; the cycle counts there
		// only when the piece that would make the reversing move belongs
		// to the side to move.
		mover := p.PieceAt(s1)
		if mover == PieceNone {
			mover = p.PieceAt(s2)
		}
		if mover != PieceNone && mover.ColorOf() == p.sideToMove {
			return true
		}
	}
	return false
}

// MoveFromUci parses a UCI move string ("e2e4", "e7e8q", "e1g1") against
// the current position. The promotion piece is read from the optional
// fifth character; the MoveType is determined from context, since UCI's
// wire format does not carry it.
func (p *Position) MoveFromUci(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return MoveNone, fmt.Errorf("position: invalid uci move %q", s)
	}
	src, err := MakeSquare(s[0:2])
	if err != nil {
		return MoveNone, err
	}
	dst, err := MakeSquare(s[2:4])
	if err != nil {
		return MoveNone, err
	}

	moving := p.board[src]
	if moving == PieceNone {
		return MoveNone, fmt.Errorf("position: no piece on %s", s[0:2])
	}

	if len(s) == 5 {
		pt, err := promotionFromChar(rune(s[4]))
		if err != nil {
			return MoveNone, err
		}
		return NewPromotion(src, dst, pt), nil
	}

	if moving.TypeOf() == Pawn && dst == p.enPassant && src.FileOf() != dst.FileOf() {
		return NewTypedMove(src, dst, EnPassant), nil
	}

	if moving.TypeOf() == King {
		if rook := p.board[dst]; rook == MakePiece(p.sideToMove, Rook) {
			if p.castlingRookSq[p.sideToMove][KingSide] == dst || p.castlingRookSq[p.sideToMove][QueenSide] == dst {
				return NewTypedMove(src, dst, Castling), nil
			}
		}
		// non-960 "king moves two squares" UCI convention: translate to
		// the king-captures-rook encoding used internally.
		if SquareDistance(src, dst) == 2 && src.RankOf() == dst.RankOf() {
			side := QueenSide
			if dst.FileOf() > src.FileOf() {
				side = KingSide
			}
			if rookSq := p.castlingRookSq[p.sideToMove][side]; rookSq != SqNone {
				return NewTypedMove(src, rookSq, Castling), nil
			}
		}
	}

	return NewMove(src, dst), nil
}

func promotionFromChar(ch rune) (PieceType, error) {
	switch ch {
	case 'n':
		return Knight, nil
	case 'b':
		return Bishop, nil
	case 'r':
		return Rook, nil
	case 'q':
		return Queen, nil
	default:
		return PtNone, fmt.Errorf("position: invalid promotion piece %q", ch)
	}
}
