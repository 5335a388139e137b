/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package position

import (
	"github.com/corvidchess/corvid/assert"
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/zobrist"
)

// clearSquare removes whatever piece stands on sq (if any) and updates
// key/pawnKey/material, but not phase: callers that permanently remove a
// piece from the board (captures) must additionally debit its phase
// contribution themselves, while callers that are only relocating a piece
// (clearSquare the source, placeSquareAt the destination) net to no phase
// change, which is what a plain move should do.
func (p *Position) clearSquare(sq Square) Piece {
	pc := p.board[sq]
	if pc == PieceNone {
		return PieceNone
	}
	p.board[sq] = PieceNone
	p.pieceBb[pc] = p.pieceBb[pc].Clear(sq)
	p.colorBb[pc.ColorOf()] = p.colorBb[pc.ColorOf()].Clear(sq)
	p.key ^= zobrist.PieceSquare(pc, sq)
	if pc.TypeOf() == Pawn {
		p.pawnKey ^= zobrist.PieceSquare(pc, sq)
	}
	p.material = p.material.Sub(signedScore(pc.ColorOf(), pieceScore(pc, sq)))
	return pc
}

// placeSquareAt is clearSquare's inverse: place pc on sq, updating
// key/pawnKey/material and the cached king square, but not phase.
func (p *Position) placeSquareAt(pc Piece, sq Square) {
	p.board[sq] = pc
	p.pieceBb[pc] = p.pieceBb[pc].Set(sq)
	p.colorBb[pc.ColorOf()] = p.colorBb[pc.ColorOf()].Set(sq)
	p.key ^= zobrist.PieceSquare(pc, sq)
	if pc.TypeOf() == Pawn {
		p.pawnKey ^= zobrist.PieceSquare(pc, sq)
	}
	p.material = p.material.Add(signedScore(pc.ColorOf(), pieceScore(pc, sq)))
	if pc.TypeOf() == King {
		p.kingSq[pc.ColorOf()] = sq
	}
}

// relocate moves whatever piece stands on src to dst without capturing
// anything; net phase change is zero since the piece composition on the
// board didn't change, only its square.
func (p *Position) relocate(src, dst Square) {
	pc := p.clearSquare(src)
	p.placeSquareAt(pc, dst)
}

// removeCaptured permanently removes a captured piece from the board,
// additionally debiting its phase contribution (clearSquare alone assumes
// relocation, not removal).
func (p *Position) removeCaptured(sq Square, cap Piece) {
	p.clearSquare(sq)
	p.phase -= cap.TypeOf().GamePhaseValue()
}

// rawClear/rawPlace touch only the mailbox/bitboards/cached king square,
// with no incremental key/pawnKey/material/phase bookkeeping: PopMove
// uses these to physically reverse a move's board effect, then restores
// every incremental field from the snapshot taken before the move was
// applied, rather than trying to algebraically invert the XORs.
func (p *Position) rawClear(sq Square) Piece {
	pc := p.board[sq]
	if pc != PieceNone {
		p.board[sq] = PieceNone
		p.pieceBb[pc] = p.pieceBb[pc].Clear(sq)
		p.colorBb[pc.ColorOf()] = p.colorBb[pc.ColorOf()].Clear(sq)
	}
	return pc
}

func (p *Position) rawPlace(pc Piece, sq Square) {
	p.board[sq] = pc
	p.pieceBb[pc] = p.pieceBb[pc].Set(sq)
	p.colorBb[pc.ColorOf()] = p.colorBb[pc.ColorOf()].Set(sq)
	if pc.TypeOf() == King {
		p.kingSq[pc.ColorOf()] = sq
	}
}

func (p *Position) setCastlingRights(newRights CastlingRights) {
	if newRights == p.castlingRights {
		return
	}
	p.key ^= zobrist.CastlingKey(p.castlingRights)
	p.key ^= zobrist.CastlingKey(newRights)
	p.castlingRights = newRights
}

// dropCastlingRights removes both of c's castling rights, used when c's
// king moves (including castling itself).
func (p *Position) dropCastlingRights(c Color) {
	if !p.castlingRights.HasAny(c) {
		return
	}
	p.setCastlingRights(p.castlingRights.RemoveColor(c))
	p.castlingRookSq[c][KingSide] = SqNone
	p.castlingRookSq[c][QueenSide] = SqNone
}

// dropCastlingRight removes a single castling right, used when its rook
// moves away from or is captured on its castling source square.
func (p *Position) dropCastlingRight(c Color, side CastlingSide) {
	if !p.castlingRights.Has(c, side) {
		return
	}
	p.setCastlingRights(p.castlingRights.Remove(c, side))
	p.castlingRookSq[c][side] = SqNone
}

func (p *Position) handleCapturedRookRights(cap Piece, sq Square) {
	if cap.TypeOf() != Rook {
		return
	}
	c := cap.ColorOf()
	if p.castlingRookSq[c][KingSide] == sq {
		p.dropCastlingRight(c, KingSide)
	}
	if p.castlingRookSq[c][QueenSide] == sq {
		p.dropCastlingRight(c, QueenSide)
	}
}

func (p *Position) updateCastlingRightsOnMove(us Color, moving Piece, src Square) {
	if moving.TypeOf() != Rook {
		return
	}
	if p.castlingRookSq[us][KingSide] == src {
		p.dropCastlingRight(us, KingSide)
	}
	if p.castlingRookSq[us][QueenSide] == src {
		p.dropCastlingRight(us, QueenSide)
	}
}

func castlingSideOf(kingFrom, rookFrom Square) CastlingSide {
	if rookFrom.FileOf() > kingFrom.FileOf() {
		return KingSide
	}
	return QueenSide
}

// ApplyMove updates every piece of state for a move known to be
// pseudo-legal against the current position, and pushes an undo record
// onto the history stack.
func (p *Position) ApplyMove(m Move) {
	us := p.sideToMove
	them := us.Flip()
	moving := p.board[m.Src()]

	u := undo{
		move:           m,
		captured:       PieceNone,
		capturedSq:     SqNone,
		castlingRights: p.castlingRights,
		castlingRookSq: p.castlingRookSq,
		enPassant:      p.enPassant,
		halfmoveClock:  p.halfmoveClock,
		key:            p.key,
		pawnKey:        p.pawnKey,
		material:       p.material,
		phase:          p.phase,
		checkers:       p.checkers,
	}

	src, dst := m.Src(), m.Dst()

	if p.enPassant != SqNone {
		p.key ^= zobrist.EnPassantFile(p.enPassant.FileOf())
		p.enPassant = SqNone
	}

	p.halfmoveClock++

	switch m.Type() {
	case Standard:
		if cap := p.board[dst]; cap != PieceNone {
			p.handleCapturedRookRights(cap, dst)
			p.removeCaptured(dst, cap)
			u.captured = cap
			u.capturedSq = dst
			p.halfmoveClock = 0
		}
		p.relocate(src, dst)
		if moving.TypeOf() == Pawn {
			p.halfmoveClock = 0
			if SquareDistance(src, dst) == 2 {
				// en passant target is the skipped-over square, not the
				// pawn's own landing square (FEN/UCI convention).
				skipped, _ := src.To(us.Forward())
				p.enPassant = skipped
				p.key ^= zobrist.EnPassantFile(skipped.FileOf())
			}
		}
		p.updateCastlingRightsOnMove(us, moving, src)
		if moving.TypeOf() == King {
			p.dropCastlingRights(us)
		}

	case Promotion:
		if cap := p.board[dst]; cap != PieceNone {
			p.handleCapturedRookRights(cap, dst)
			p.removeCaptured(dst, cap)
			u.captured = cap
			u.capturedSq = dst
		}
		p.clearSquare(src)
		promoted := MakePiece(us, m.PromotionType())
		p.placeSquareAt(promoted, dst)
		p.phase += m.PromotionType().GamePhaseValue()
		p.halfmoveClock = 0

	case EnPassant:
		capSq := SquareOf(dst.FileOf(), src.RankOf())
		cap := p.board[capSq]
		p.removeCaptured(capSq, cap)
		u.captured = cap
		u.capturedSq = capSq
		p.relocate(src, dst)
		p.halfmoveClock = 0

	case Castling:
		kingFrom, rookFrom := src, dst
		side := castlingSideOf(kingFrom, rookFrom)
		kingDest := KingDestination(us, side)
		rookDest := RookDestination(us, side)

		p.clearSquare(kingFrom)
		p.clearSquare(rookFrom)
		p.placeSquareAt(MakePiece(us, King), kingDest)
		p.placeSquareAt(MakePiece(us, Rook), rookDest)

		p.dropCastlingRights(us)
	}

	p.checkers = p.attackersTo(p.kingSq[them], us)

	if us == Black {
		p.fullmoveNumber++
	}
	p.sideToMove = them
	p.key ^= zobrist.SideToMove()

	p.history = append(p.history, u)

	if assert.DEBUG {
		p.checkInvariants()
	}
}

// PopMove reverses the last move applied via ApplyMove.
func (p *Position) PopMove() {
	n := len(p.history)
	u := p.history[n-1]
	p.history = p.history[:n-1]

	mover := p.sideToMove.Flip()
	m := u.move
	src, dst := m.Src(), m.Dst()

	switch m.Type() {
	case Standard:
		pc := p.rawClear(dst)
		p.rawPlace(pc, src)
		if u.captured != PieceNone {
			p.rawPlace(u.captured, u.capturedSq)
		}

	case Promotion:
		p.rawClear(dst)
		p.rawPlace(MakePiece(mover, Pawn), src)
		if u.captured != PieceNone {
			p.rawPlace(u.captured, u.capturedSq)
		}

	case EnPassant:
		pc := p.rawClear(dst)
		p.rawPlace(pc, src)
		p.rawPlace(u.captured, u.capturedSq)

	case Castling:
		kingFrom, rookFrom := src, dst
		side := castlingSideOf(kingFrom, rookFrom)
		kingDest := KingDestination(mover, side)
		rookDest := RookDestination(mover, side)

		p.rawClear(kingDest)
		p.rawClear(rookDest)
		p.rawPlace(MakePiece(mover, King), kingFrom)
		p.rawPlace(MakePiece(mover, Rook), rookFrom)
	}

	if mover == Black {
		p.fullmoveNumber--
	}

	p.castlingRights = u.castlingRights
	p.castlingRookSq = u.castlingRookSq
	p.enPassant = u.enPassant
	p.halfmoveClock = u.halfmoveClock
	p.key = u.key
	p.pawnKey = u.pawnKey
	p.material = u.material
	p.phase = u.phase
	p.checkers = u.checkers
	p.sideToMove = mover

	if assert.DEBUG {
		p.checkInvariants()
	}
}

// checkInvariants re-derives every incrementally maintained field from
// scratch and panics if it disagrees with the live value. Only ever called
// when assert.DEBUG is true, so it costs nothing in a release build.
func (p *Position) checkInvariants() {
	key, pawnKey, material, phase := p.Rederive()
	assert.Assert(key == p.key, "key out of sync: incremental %d, rederived %d", p.key, key)
	assert.Assert(pawnKey == p.pawnKey, "pawnKey out of sync: incremental %d, rederived %d", p.pawnKey, pawnKey)
	assert.Assert(material == p.material, "material out of sync: incremental %d, rederived %d", p.material, material)
	assert.Assert(phase == p.phase, "phase out of sync: incremental %d, rederived %d", p.phase, phase)
	for sq := Square(0); sq < Square(SqLength); sq++ {
		pc := p.board[sq]
		if pc == PieceNone {
			continue
		}
		assert.Assert(p.pieceBb[pc]&SquareBb(sq) != Empty, "mailbox/bitboard mismatch at %s", sq)
	}
}
