// Package hashing provides Zobrist position hashing. The hash covers piece
// placement, side to move, castling rights and the en passant target, which
// is exactly the position identity used for repetition detection.
package hashing

import (
	"chesskit/internal/chess"
)

var (
	pieceKeys     [2][chess.NumPieceTypes][64]uint64
	castleKeys    [16]uint64
	enPassantKeys [8]uint64 // one per file
	sideKey       uint64    // XORed in when Black is to move
)

func init() {
	rng := newPRNG(0x7A6B72697374) // fixed seed, keys are reproducible
	for c := chess.White; c <= chess.Black; c++ {
		for pt := chess.Pawn; pt <= chess.King; pt++ {
			for sq := chess.A1; sq <= chess.H8; sq++ {
				pieceKeys[c][pt][sq] = rng.next()
			}
		}
	}
	for i := range castleKeys {
		castleKeys[i] = rng.next()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = rng.next()
	}
	sideKey = rng.next()
}

// prng is an xorshift64* generator used to derive the key tables.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// Position returns the Zobrist hash of the board's position identity:
// placement, side to move, castling rights and en passant target.
func Position(b *chess.Board) uint64 {
	var h uint64
	for c := chess.White; c <= chess.Black; c++ {
		for pt := chess.Pawn; pt <= chess.King; pt++ {
			bb := b.Pieces(c, pt)
			for bb != 0 {
				h ^= pieceKeys[c][pt][bb.Pop()]
			}
		}
	}
	if b.SideToMove() == chess.Black {
		h ^= sideKey
	}
	h ^= castleKeys[b.CastlingRights()]
	if ep := b.EnPassantTarget(); ep != chess.NoSquare {
		h ^= enPassantKeys[ep.File()]
	}
	return h
}
