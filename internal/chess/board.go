package chess

import (
	"fmt"
	"strings"

	"chesskit/internal/errors"
)

// CastleRights is a bit set of the four castling permissions.
type CastleRights uint8

const (
	WhiteKingSide CastleRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	AllCastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// Has reports whether all the given rights are present.
func (cr CastleRights) Has(r CastleRights) bool {
	return cr&r == r
}

// String returns the FEN castling field, e.g. "KQkq" or "-".
func (cr CastleRights) String() string {
	if cr == 0 {
		return "-"
	}
	var sb strings.Builder
	if cr.Has(WhiteKingSide) {
		sb.WriteByte('K')
	}
	if cr.Has(WhiteQueenSide) {
		sb.WriteByte('Q')
	}
	if cr.Has(BlackKingSide) {
		sb.WriteByte('k')
	}
	if cr.Has(BlackQueenSide) {
		sb.WriteByte('q')
	}
	return sb.String()
}

// Board is a mutable chess position: piece placement as one bitboard per
// (colour, piece type) pair, side to move, castling rights, en passant
// target, halfmove clock and fullmove number.
//
// A Board is a plain value intended for a single caller at a time; it is
// mutated only through move application via MakeMove/UnmakeMove or the
// unexported fast path used by move generation.
type Board struct {
	pieces   [2][NumPieceTypes]Bitboard
	occupied [2]Bitboard

	turn     Color
	rights   CastleRights
	ep       Square // en passant target square, NoSquare if none
	halfmove int    // plies since last pawn move or capture
	fullmove int
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	return &Board{ep: NoSquare, fullmove: 1}
}

// StartingPosition returns a board set up for a standard game.
func StartingPosition() *Board {
	b := NewBoard()
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := File(0); f < 8; f++ {
		b.putPiece(Piece{White, back[f]}, NewSquare(f, 0))
		b.putPiece(Piece{White, Pawn}, NewSquare(f, 1))
		b.putPiece(Piece{Black, Pawn}, NewSquare(f, 6))
		b.putPiece(Piece{Black, back[f]}, NewSquare(f, 7))
	}
	b.rights = AllCastleRights
	return b
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Equal reports whether two boards are identical in every field.
func (b *Board) Equal(other *Board) bool {
	return *b == *other
}

// SideToMove returns the colour to move.
func (b *Board) SideToMove() Color {
	return b.turn
}

// CastlingRights returns the current castling rights.
func (b *Board) CastlingRights() CastleRights {
	return b.rights
}

// EnPassantTarget returns the en passant target square, or NoSquare.
func (b *Board) EnPassantTarget() Square {
	return b.ep
}

// HalfmoveClock returns the number of plies since the last pawn move or
// capture.
func (b *Board) HalfmoveClock() int {
	return b.halfmove
}

// FullmoveNumber returns the fullmove number, starting at 1.
func (b *Board) FullmoveNumber() int {
	return b.fullmove
}

// PieceAt returns the piece on sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece {
	for c := White; c <= Black; c++ {
		if !b.occupied[c].Has(sq) {
			continue
		}
		for pt := Pawn; pt <= King; pt++ {
			if b.pieces[c][pt].Has(sq) {
				return Piece{Color: c, Type: pt}
			}
		}
	}
	return NoPiece
}

// Pieces returns the bitboard of the given colour and piece type.
func (b *Board) Pieces(c Color, pt PieceType) Bitboard {
	return b.pieces[c][pt]
}

// Occupied returns the occupancy of one colour.
func (b *Board) Occupied(c Color) Bitboard {
	return b.occupied[c]
}

// AllOccupied returns the occupancy of both colours.
func (b *Board) AllOccupied() Bitboard {
	return b.occupied[White] | b.occupied[Black]
}

// KingSquare returns the square of the given colour's king.
func (b *Board) KingSquare(c Color) Square {
	return b.pieces[c][King].First()
}

func (b *Board) putPiece(p Piece, sq Square) {
	b.pieces[p.Color][p.Type] = b.pieces[p.Color][p.Type].With(sq)
	b.occupied[p.Color] = b.occupied[p.Color].With(sq)
}

func (b *Board) removePiece(p Piece, sq Square) {
	b.pieces[p.Color][p.Type] = b.pieces[p.Color][p.Type].Without(sq)
	b.occupied[p.Color] = b.occupied[p.Color].Without(sq)
}

// typeAt returns the piece type of colour c on sq. The square must be
// occupied by that colour.
func (b *Board) typeAt(c Color, sq Square) PieceType {
	for pt := Pawn; pt <= King; pt++ {
		if b.pieces[c][pt].Has(sq) {
			return pt
		}
	}
	return NoPieceType
}

// Undo holds everything needed to reverse a move exactly: the captured
// piece and its square, and the rights, en passant target and halfmove
// clock that were in effect before the move.
type Undo struct {
	Move           Move
	Captured       PieceType // NoPieceType if nothing was captured
	CapturedSquare Square
	Rights         CastleRights
	EPTarget       Square
	HalfmoveClock  int
}

// MakeMove applies mv if it is a member of the current legal move set and
// returns the undo record. An illegal move is rejected with ErrIllegalMove
// and the board is left untouched. The move is matched against the legal
// set by origin, destination and promotion; the canonical generated move
// is the one applied.
func (b *Board) MakeMove(mv Move) (Undo, error) {
	legal, ok := b.LegalMoves().Find(mv.From, mv.To, mv.Promo)
	if !ok {
		return Undo{}, fmt.Errorf("%s: %w", mv, errors.ErrIllegalMove)
	}
	return b.doMove(legal), nil
}

// UnmakeMove reverses the most recent move using its undo record, restoring
// the board bit for bit.
func (b *Board) UnmakeMove(u Undo) {
	b.undoMove(u)
}

// doMove applies a generated move without legality checking. The move must
// carry the tags assigned by move generation.
func (b *Board) doMove(mv Move) Undo {
	us := b.turn
	them := us.Other()
	u := Undo{
		Move:           mv,
		Captured:       NoPieceType,
		CapturedSquare: NoSquare,
		Rights:         b.rights,
		EPTarget:       b.ep,
		HalfmoveClock:  b.halfmove,
	}

	moving := b.typeAt(us, mv.From)

	// Remove the captured piece. For en passant the captured pawn is not
	// on the destination square.
	if mv.HasTag(EnPassantCapture) {
		u.Captured = Pawn
		u.CapturedSquare = NewSquare(mv.To.File(), mv.From.Rank())
		b.removePiece(Piece{them, Pawn}, u.CapturedSquare)
	} else if b.occupied[them].Has(mv.To) {
		u.Captured = b.typeAt(them, mv.To)
		u.CapturedSquare = mv.To
		b.removePiece(Piece{them, u.Captured}, mv.To)
	}

	// Move the piece, promoting if required.
	b.removePiece(Piece{us, moving}, mv.From)
	if mv.IsPromotion() {
		b.putPiece(Piece{us, mv.Promo}, mv.To)
	} else {
		b.putPiece(Piece{us, moving}, mv.To)
	}

	// Castling moves the rook as well.
	if mv.HasTag(KingSideCastle) {
		b.moveRook(us, H1, F1)
	} else if mv.HasTag(QueenSideCastle) {
		b.moveRook(us, A1, D1)
	}

	b.updateRights(mv, u)

	// En passant target is set only immediately after a double push and
	// cleared on the next move regardless of use.
	if mv.HasTag(DoublePawnPush) {
		b.ep = NewSquare(mv.From.File(), (mv.From.Rank()+mv.To.Rank())/2)
	} else {
		b.ep = NoSquare
	}

	if moving == Pawn || u.Captured != NoPieceType {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if us == Black {
		b.fullmove++
	}
	b.turn = them
	return u
}

// undoMove reverses doMove exactly.
func (b *Board) undoMove(u Undo) {
	mv := u.Move
	us := b.turn.Other() // the side that made the move
	them := b.turn

	if mv.IsPromotion() {
		b.removePiece(Piece{us, mv.Promo}, mv.To)
		b.putPiece(Piece{us, Pawn}, mv.From)
	} else {
		moving := b.typeAt(us, mv.To)
		b.removePiece(Piece{us, moving}, mv.To)
		b.putPiece(Piece{us, moving}, mv.From)
	}

	if u.Captured != NoPieceType {
		b.putPiece(Piece{them, u.Captured}, u.CapturedSquare)
	}

	if mv.HasTag(KingSideCastle) {
		b.moveRook(us, F1, H1)
	} else if mv.HasTag(QueenSideCastle) {
		b.moveRook(us, D1, A1)
	}

	b.rights = u.Rights
	b.ep = u.EPTarget
	b.halfmove = u.HalfmoveClock
	if us == Black {
		b.fullmove--
	}
	b.turn = us
}

// moveRook relocates a rook between its white-relative squares during
// castling; from and to are given for White and mirrored for Black.
func (b *Board) moveRook(c Color, from, to Square) {
	if c == Black {
		from += 56
		to += 56
	}
	b.removePiece(Piece{c, Rook}, from)
	b.putPiece(Piece{c, Rook}, to)
}

// updateRights clears castling rights when a king or rook leaves its home
// square or a rook is captured on one.
func (b *Board) updateRights(mv Move, u Undo) {
	drop := func(sq Square) {
		switch sq {
		case E1:
			b.rights &^= WhiteKingSide | WhiteQueenSide
		case H1:
			b.rights &^= WhiteKingSide
		case A1:
			b.rights &^= WhiteQueenSide
		case E8:
			b.rights &^= BlackKingSide | BlackQueenSide
		case H8:
			b.rights &^= BlackKingSide
		case A8:
			b.rights &^= BlackQueenSide
		}
	}
	drop(mv.From)
	drop(mv.To)
	if u.CapturedSquare != NoSquare {
		drop(u.CapturedSquare)
	}
}

// String returns an ASCII diagram of the position, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := Rank(7); r >= 0; r-- {
		sb.WriteByte(r.Char())
		for f := File(0); f < 8; f++ {
			sb.WriteByte(' ')
			if p := b.PieceAt(NewSquare(f, r)); p != NoPiece {
				sb.WriteByte(p.FENChar())
			} else {
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%s to move, castling %s, ep %s, halfmove %d, move %d\n",
		b.turn, b.rights, b.ep, b.halfmove, b.fullmove)
	return sb.String()
}
