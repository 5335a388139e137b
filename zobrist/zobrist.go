/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package zobrist holds the engine's zobrist hash key tables: one constant
// per piece-square, one per side to move, one per castling-rights nibble
// value, and one per en-passant file. All constants are derived at Init
// time from a fixed seed, so nothing here is serialized data.
package zobrist

import (
	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/support/rng"
)

// Key is a zobrist hash key.
type Key uint64

// Seed is the fixed constant that drives every key this package produces.
// Keeping it fixed (rather than randomized at process start) means two
// runs of the engine always hash the same position to the same key,
// which matters for reproducing search traces and for any on-disk data
// keyed by position hash.
const Seed uint64 = 0xD06C659954EC904A

var (
	pieceSquare   [12][SqLength]Key
	sideToMove    Key
	castlingRights [CastlingRightsLength]Key
	enPassantFile [FileLength]Key

	initialized bool
)

// Init derives every key table from Seed. Idempotent; safe to call once
// at startup before any Position is constructed.
func Init() {
	if initialized {
		return
	}
	g := rng.NewJsf64(Seed)

	for pc := 0; pc < 12; pc++ {
		for sq := Square(0); sq < Square(SqLength); sq++ {
			pieceSquare[pc][sq] = Key(g.Next())
		}
	}
	sideToMove = Key(g.Next())
	for cr := 0; cr < CastlingRightsLength; cr++ {
		castlingRights[cr] = Key(g.Next())
	}
	for f := File(0); f < File(FileLength); f++ {
		enPassantFile[f] = Key(g.Next())
	}
	initialized = true
}

// PieceSquare returns the key for a piece p standing on sq.
func PieceSquare(p Piece, sq Square) Key { return pieceSquare[p][sq] }

// SideToMove returns the key XORed in exactly when it is Black to move.
func SideToMove() Key { return sideToMove }

// CastlingKey returns the key for a given castling-rights nibble value.
func CastlingKey(cr CastlingRights) Key { return castlingRights[cr] }

// EnPassantFile returns the key for an en-passant-capturable pawn standing
// on file f.
func EnPassantFile(f File) Key { return enPassantFile[f] }
