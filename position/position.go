/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package position implements the engine's board representation: make/
// unmake, FEN I/O, attack queries, draw detection and upcoming-repetition
// detection. It owns a full history stack so moves can be undone in any
// order they were applied.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidchess/corvid/attacks"
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/zobrist"
)

// StartFen is the FEN of the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// undo captures everything needed to reverse one applied move that cannot
// be recovered from the move word and the post-move board alone.
type undo struct {
	move           Move
	captured       Piece
	capturedSq     Square
	castlingRights CastlingRights
	castlingRookSq [2][2]Square
	enPassant      Square
	halfmoveClock  int
	key            zobrist.Key
	pawnKey        zobrist.Key
	material       Score
	phase          int
	checkers       Bitboard
}

// Position is a mutable chessboard with a make/unmake history stack.
type Position struct {
	board          [SqLength]Piece
	pieceBb        [12]Bitboard
	colorBb        [2]Bitboard
	kingSq         [2]Square
	sideToMove     Color
	castlingRights CastlingRights
	castlingRookSq [2][2]Square
	enPassant      Square
	halfmoveClock  int
	fullmoveNumber int

	key      zobrist.Key
	pawnKey  zobrist.Key
	material Score
	phase    int
	checkers Bitboard

	history []undo
}

func init() {
	// Idempotent: guarantees attack tables exist even if a Position is
	// constructed ahead of cmd/corvid's explicit startup sequence, e.g.
	// in tests that only import this package.
	attacks.Init()
}

// NewStarting returns a Position set up for the standard chess starting
// array.
func NewStarting() *Position {
	p, err := NewFromFen(StartFen)
	if err != nil {
		panic("position: invalid embedded starting fen: " + err.Error())
	}
	return p
}

// NewFromFen parses a FEN (or Chess960/Shredder-FEN, whose castling field
// may use file letters or king/queen-relative letters) into a Position.
func NewFromFen(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("position: invalid fen %q", fen)
	}

	p := &Position{enPassant: SqNone}
	for c := range p.castlingRookSq {
		p.castlingRookSq[c][KingSide] = SqNone
		p.castlingRookSq[c][QueenSide] = SqNone
	}
	for sq := range p.board {
		p.board[sq] = PieceNone
	}

	if err := p.setupBoard(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("position: invalid side to move %q", fields[1])
	}

	if err := p.setupCastling(fields[2]); err != nil {
		return nil, err
	}

	if fields[3] != "-" {
		sq, err := MakeSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("position: invalid en passant square %q", fields[3])
		}
		p.enPassant = sq
	}

	p.halfmoveClock = 0
	p.fullmoveNumber = 1
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			p.halfmoveClock = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			p.fullmoveNumber = n
		}
	}

	p.rederiveState()
	p.checkers = p.attackersTo(p.kingSq[p.sideToMove], p.sideToMove.Flip())

	return p, nil
}

func (p *Position) setupBoard(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("position: fen board must have 8 ranks, got %d", len(ranks))
	}
	for i, rankField := range ranks {
		r := Rank(7 - i)
		f := FileA
		for _, ch := range rankField {
			if ch >= '1' && ch <= '8' {
				f += File(ch - '0')
				continue
			}
			pc, err := pieceFromChar(ch)
			if err != nil {
				return err
			}
			if int(f) >= FileLength {
				return fmt.Errorf("position: rank %q overflows the board", rankField)
			}
			p.placePiece(pc, SquareOf(f, r))
			f++
		}
	}
	return nil
}

const pieceFenChars = "PpNnBbRrQqKk"

func pieceFromChar(ch rune) (Piece, error) {
	idx := strings.IndexRune(pieceFenChars, ch)
	if idx < 0 {
		return PieceNone, fmt.Errorf("position: invalid fen piece %q", ch)
	}
	return Piece(idx), nil
}

// setupCastling accepts "-", standard "KQkq" letters, or Chess960/Shredder
// file letters (upper-case for White, lower-case for Black).
func (p *Position) setupCastling(field string) error {
	p.castlingRights = NoCastling
	if field == "-" {
		return nil
	}
	for _, ch := range field {
		switch {
		case ch == 'K' || ch == 'Q':
			if err := p.setupKQCastling(White, ch == 'K'); err != nil {
				return err
			}
		case ch == 'k' || ch == 'q':
			if err := p.setupKQCastling(Black, ch == 'k'); err != nil {
				return err
			}
		case ch >= 'A' && ch <= 'H':
			p.setFileCastling(White, File(ch-'A'))
		case ch >= 'a' && ch <= 'h':
			p.setFileCastling(Black, File(ch-'a'))
		default:
			return fmt.Errorf("position: invalid castling field %q", field)
		}
	}
	return nil
}

func (p *Position) setupKQCastling(c Color, kingSide bool) error {
	rank := Rank1
	if c == Black {
		rank = Rank8
	}
	kingFile := p.kingSq[c].FileOf()
	rookSq := SqNone
	if kingSide {
		for f := File(FileLength - 1); f > kingFile; f-- {
			sq := SquareOf(f, rank)
			if p.board[sq] == MakePiece(c, Rook) {
				rookSq = sq
				break
			}
		}
	} else {
		for f := FileA; f < kingFile; f++ {
			sq := SquareOf(f, rank)
			if p.board[sq] == MakePiece(c, Rook) {
				rookSq = sq
				break
			}
		}
	}
	if rookSq == SqNone {
		return fmt.Errorf("position: no rook found for castling right")
	}
	side := QueenSide
	if kingSide {
		side = KingSide
	}
	p.castlingRookSq[c][side] = rookSq
	p.castlingRights |= castlingBit(c, side)
	return nil
}

func (p *Position) setFileCastling(c Color, f File) {
	rank := Rank1
	if c == Black {
		rank = Rank8
	}
	rookSq := SquareOf(f, rank)
	side := QueenSide
	if f > p.kingSq[c].FileOf() {
		side = KingSide
	}
	p.castlingRookSq[c][side] = rookSq
	p.castlingRights |= castlingBit(c, side)
}

func castlingBit(c Color, side CastlingSide) CastlingRights {
	switch {
	case c == White && side == KingSide:
		return WhiteOO
	case c == White:
		return WhiteOOO
	case side == KingSide:
		return BlackOO
	default:
		return BlackOOO
	}
}

// placePiece is used only by board setup; it does not touch zobrist/
// material incrementally (rederiveState does that once, in bulk, after
// the whole board is parsed).
func (p *Position) placePiece(pc Piece, sq Square) {
	p.board[sq] = pc
	p.pieceBb[pc] = p.pieceBb[pc].Set(sq)
	p.colorBb[pc.ColorOf()] = p.colorBb[pc.ColorOf()].Set(sq)
	if pc.TypeOf() == King {
		p.kingSq[pc.ColorOf()] = sq
	}
}

func signedScore(c Color, s Score) Score {
	if c == Black {
		return Score(0).Sub(s)
	}
	return s
}

// rederiveState recomputes key, pawnKey, material and phase from scratch
// off the current board and castling/en-passant/side state. Used by FEN
// setup and by the Rederive round-trip check.
func (p *Position) rederiveState() {
	p.key = 0
	p.pawnKey = 0
	p.material = 0
	p.phase = 0

	for sq := Square(0); sq < Square(SqLength); sq++ {
		pc := p.board[sq]
		if pc == PieceNone {
			continue
		}
		p.key ^= zobrist.PieceSquare(pc, sq)
		if pc.TypeOf() == Pawn {
			p.pawnKey ^= zobrist.PieceSquare(pc, sq)
		}
		p.material = p.material.Add(signedScore(pc.ColorOf(), pieceScore(pc, sq)))
		p.phase += pc.TypeOf().GamePhaseValue()
	}
	if p.phase > 24 {
		p.phase = 24
	}

	if p.sideToMove == Black {
		p.key ^= zobrist.SideToMove()
	}
	p.key ^= zobrist.CastlingKey(p.castlingRights)
	if p.enPassant != SqNone {
		p.key ^= zobrist.EnPassantFile(p.enPassant.FileOf())
	}
}

// Rederive recomputes key/pawnKey/material/phase from scratch without
// mutating the position, used by tests to confirm incremental maintenance
// matches full rederivation after a make/unmake sequence.
func (p *Position) Rederive() (key, pawnKey zobrist.Key, material Score, phase int) {
	saved := *p
	p.rederiveState()
	key, pawnKey, material, phase = p.key, p.pawnKey, p.material, p.phase
	*p = saved
	return
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// Key returns the position's full zobrist key.
func (p *Position) Key() zobrist.Key { return p.key }

// PawnKey returns the position's pawn-only zobrist key.
func (p *Position) PawnKey() zobrist.Key { return p.pawnKey }

// Material returns the tapered material/PST score, White's perspective.
func (p *Position) Material() Score { return p.material }

// Phase returns the 0..24 game-phase counter.
func (p *Position) Phase() int {
	if p.phase > 24 {
		return 24
	}
	return p.phase
}

// Checkers returns the bitboard of opposing pieces giving check to the
// side to move.
func (p *Position) Checkers() Bitboard { return p.checkers }

// IsCheck reports whether the side to move is in check.
func (p *Position) IsCheck() bool { return p.checkers != Empty }

// King returns c's king square.
func (p *Position) King(c Color) Square { return p.kingSq[c] }

// PieceAt returns the piece on sq, or PieceNone.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// Occupied returns the full board occupancy.
func (p *Position) Occupied() Bitboard { return p.colorBb[White] | p.colorBb[Black] }

// ColorBb returns c's occupancy.
func (p *Position) ColorBb(c Color) Bitboard { return p.colorBb[c] }

// PieceBb returns the bitboard of piece pc.
func (p *Position) PieceBb(pc Piece) Bitboard { return p.pieceBb[pc] }

// Pieces returns the bitboard of piece type pt belonging to color c.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard { return p.pieceBb[MakePiece(c, pt)] }

// EnPassant returns the current en-passant target square, or SqNone.
func (p *Position) EnPassant() Square { return p.enPassant }

// CastlingRights returns the current castling-rights nibble.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// CastlingRookSquare returns c's castling rook home square on the given
// side, or SqNone if that right has been lost.
func (p *Position) CastlingRookSquare(c Color, side CastlingSide) Square {
	return p.castlingRookSq[c][side]
}

// HalfmoveClock returns the number of plies since the last capture or
// pawn move.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// Ply returns the number of moves applied so far.
func (p *Position) Ply() int { return len(p.history) }

// ToFen renders the position as a FEN string. The castling field uses
// Shredder-style file letters whenever a castling rook's home square
// isn't the standard corner, and KQkq otherwise.
func (p *Position) ToFen() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		empty := 0
		for f := int(FileA); f <= int(FileH); f++ {
			pc := p.board[SquareOf(File(f), Rank(r))]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(string(pieceFenChars[pc]))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != int(Rank1) {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingFen())

	sb.WriteByte(' ')
	if p.enPassant == SqNone {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.enPassant.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))

	return sb.String()
}

func (p *Position) castlingFen() string {
	if p.castlingRights == NoCastling {
		return "-"
	}
	standard := p.castlingRookSq[White][KingSide] == SqNone || p.castlingRookSq[White][KingSide] == SqH1
	standard = standard && (p.castlingRookSq[White][QueenSide] == SqNone || p.castlingRookSq[White][QueenSide] == SqA1)
	standard = standard && (p.castlingRookSq[Black][KingSide] == SqNone || p.castlingRookSq[Black][KingSide] == SqH8)
	standard = standard && (p.castlingRookSq[Black][QueenSide] == SqNone || p.castlingRookSq[Black][QueenSide] == SqA8)

	var sb strings.Builder
	if standard {
		if p.castlingRights.Has(White, KingSide) {
			sb.WriteByte('K')
		}
		if p.castlingRights.Has(White, QueenSide) {
			sb.WriteByte('Q')
		}
		if p.castlingRights.Has(Black, KingSide) {
			sb.WriteByte('k')
		}
		if p.castlingRights.Has(Black, QueenSide) {
			sb.WriteByte('q')
		}
		return sb.String()
	}
	if p.castlingRights.Has(White, KingSide) {
		sb.WriteString(strings.ToUpper(p.castlingRookSq[White][KingSide].FileOf().String()))
	}
	if p.castlingRights.Has(White, QueenSide) {
		sb.WriteString(strings.ToUpper(p.castlingRookSq[White][QueenSide].FileOf().String()))
	}
	if p.castlingRights.Has(Black, KingSide) {
		sb.WriteString(p.castlingRookSq[Black][KingSide].FileOf().String())
	}
	if p.castlingRights.Has(Black, QueenSide) {
		sb.WriteString(p.castlingRookSq[Black][QueenSide].FileOf().String())
	}
	return sb.String()
}
