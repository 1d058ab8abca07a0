package chess

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares packed into a 64-bit integer, one bit per
// square with A1 at bit 0 and H8 at bit 63.
type Bitboard uint64

// Bitboard constants.
const (
	EmptyBB Bitboard = 0
	FullBB  Bitboard = ^EmptyBB

	FileABB Bitboard = 0x0101010101010101
	FileHBB Bitboard = FileABB << 7
	Rank1BB Bitboard = 0x00000000000000FF
	Rank8BB Bitboard = Rank1BB << 56
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << uint(sq)
}

// Has reports whether the square is in the set.
func (b Bitboard) Has(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// With returns the set with the square added.
func (b Bitboard) With(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Without returns the set with the square removed.
func (b Bitboard) Without(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// Count returns the number of squares in the set.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// First returns the least significant set square.
// It must not be called on an empty bitboard.
func (b Bitboard) First() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Last returns the most significant set square.
// It must not be called on an empty bitboard.
func (b Bitboard) Last() Square {
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// Pop removes and returns the least significant set square.
func (b *Bitboard) Pop() Square {
	sq := b.First()
	*b &= *b - 1
	return sq
}

// String returns an 8x8 diagram of the set, rank 8 first. Useful for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := Rank(7); r >= 0; r-- {
		for f := File(0); f < 8; f++ {
			if b.Has(NewSquare(f, r)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
