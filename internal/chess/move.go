package chess

import "strings"

// MoveTag is a bit set describing special properties of a move.
type MoveTag uint8

const (
	// Capture marks any capture, including en passant.
	Capture MoveTag = 1 << iota
	// DoublePawnPush marks a two-square pawn advance.
	DoublePawnPush
	// EnPassantCapture marks an en passant capture; the captured pawn is
	// not on the destination square.
	EnPassantCapture
	// KingSideCastle marks O-O.
	KingSideCastle
	// QueenSideCastle marks O-O-O.
	QueenSideCastle
)

// Move is a move of a single piece. Promo is NoPieceType unless the move is
// a promotion. Moves are comparable; two moves are the same move iff all
// fields are equal.
type Move struct {
	From  Square
	To    Square
	Promo PieceType
	Tags  MoveTag
}

// NewMove builds a plain move. The Tags of a generated legal move are filled
// in by move generation.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promo: NoPieceType}
}

// NewPromotion builds a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Promo: promo}
}

// HasTag reports whether the move carries the given tag.
func (m Move) HasTag(tag MoveTag) bool {
	return m.Tags&tag != 0
}

// IsCapture reports whether the move captures a piece.
func (m Move) IsCapture() bool {
	return m.HasTag(Capture)
}

// IsPromotion reports whether the move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promo != NoPieceType
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.HasTag(KingSideCastle) || m.HasTag(QueenSideCastle)
}

// String returns the move in long algebraic (UCI) notation, e.g. "e2e4"
// or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string([]byte{m.Promo.FENChar()})
	}
	return s
}

// FENChar is the lowercase promotion letter used in long algebraic notation.
func (pt PieceType) FENChar() byte {
	return Piece{Color: Black, Type: pt}.FENChar()
}

// MoveFromString parses long algebraic (UCI) notation such as "e2e4" or
// "e7e8q". Tags are left empty; resolve the move against a legal move list
// before applying it.
func MoveFromString(s string) (Move, bool) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, false
	}
	from, ok := SquareFromString(s[:2])
	if !ok {
		return Move{}, false
	}
	to, ok := SquareFromString(s[2:4])
	if !ok {
		return Move{}, false
	}
	promo := NoPieceType
	if len(s) == 5 {
		promo = PieceTypeFromLetter(s[4] &^ 0x20)
		if !promo.CanBePromotion() {
			return Move{}, false
		}
	}
	return Move{From: from, To: to, Promo: promo}, true
}

// MoveList is a fixed collection of moves. Its length is known without
// iterating and it can be walked any number of times.
type MoveList []Move

// Len returns the number of moves in the list.
func (ml MoveList) Len() int {
	return len(ml)
}

// Contains reports whether mv is in the list, by full equality.
func (ml MoveList) Contains(mv Move) bool {
	for _, m := range ml {
		if m == mv {
			return true
		}
	}
	return false
}

// Find looks up the canonical move with the given origin, destination and
// promotion. The returned move carries the tags move generation assigned.
func (ml MoveList) Find(from, to Square, promo PieceType) (Move, bool) {
	for _, m := range ml {
		if m.From == from && m.To == to && m.Promo == promo {
			return m, true
		}
	}
	return Move{}, false
}

// From returns the subset of moves originating on sq.
func (ml MoveList) From(sq Square) MoveList {
	out := make(MoveList, 0, 8)
	for _, m := range ml {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// String returns the moves in long algebraic notation, space separated.
func (ml MoveList) String() string {
	parts := make([]string, len(ml))
	for i, m := range ml {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
