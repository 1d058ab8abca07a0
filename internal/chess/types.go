// Package chess provides the core chess types: colours, pieces, squares,
// bitboards and the Board itself with legal move generation.
package chess

// Color represents the colour of a piece or player.
type Color int8

const (
	White Color = iota
	Black
)

// String returns the string representation of a colour.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Char returns the FEN side-to-move character for the colour.
func (c Color) Char() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Other returns the opposite colour.
func (c Color) Other() Color {
	return c ^ 1
}

// PieceType represents the role of a piece, which determines its moves.
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// NumPieceTypes is the number of distinct piece types.
const NumPieceTypes = 6

// String returns the string representation of a piece type.
func (pt PieceType) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(pt) < len(names) && pt >= 0 {
		return names[pt]
	}
	return "NoPieceType"
}

// Letter returns the SAN letter of the piece type (uppercase).
// Pawns have no SAN letter and map to a space.
func (pt PieceType) Letter() byte {
	letters := []byte{' ', 'N', 'B', 'R', 'Q', 'K'}
	if int(pt) < len(letters) && pt >= 0 {
		return letters[pt]
	}
	return '?'
}

// PieceTypeFromLetter converts an uppercase SAN letter to a piece type.
// It returns NoPieceType for unknown letters.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	default:
		return NoPieceType
	}
}

// CanBePromotion reports whether a pawn may promote into this piece type.
func (pt PieceType) CanBePromotion() bool {
	return pt > Pawn && pt < King
}

// PromotionTypes lists the piece types a pawn may promote into.
var PromotionTypes = [4]PieceType{Knight, Bishop, Rook, Queen}

// Piece is a coloured piece: a (Color, PieceType) pair.
type Piece struct {
	Color Color
	Type  PieceType
}

// NoPiece is the zero-value-adjacent sentinel for an empty square.
var NoPiece = Piece{Color: White, Type: NoPieceType}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	if p.Type == NoPieceType {
		return "NoPiece"
	}
	return p.Color.String() + " " + p.Type.String()
}

// FENChar returns the FEN character for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) FENChar() byte {
	letters := []byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	if p.Type < 0 || int(p.Type) >= len(letters) {
		return '?'
	}
	c := letters[p.Type]
	if p.Color == Black {
		c += 'a' - 'A'
	}
	return c
}

// PieceFromFENChar converts a FEN character to a piece.
// It returns NoPiece for unknown characters.
func PieceFromFENChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	pt := PieceTypeFromLetter(c)
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece{Color: color, Type: pt}
}

// File is a board column, 0 ('a') through 7 ('h').
type File int8

// Rank is a board row, 0 (rank 1) through 7 (rank 8).
type Rank int8

// Char returns the file letter 'a'-'h'.
func (f File) Char() byte {
	return byte('a' + f)
}

// Char returns the rank digit '1'-'8'.
func (r Rank) Char() byte {
	return byte('1' + r)
}

// FileFromChar converts 'a'-'h' to a File. The second result reports validity.
func FileFromChar(c byte) (File, bool) {
	if c < 'a' || c > 'h' {
		return 0, false
	}
	return File(c - 'a'), true
}

// RankFromChar converts '1'-'8' to a Rank. The second result reports validity.
func RankFromChar(c byte) (Rank, bool) {
	if c < '1' || c > '8' {
		return 0, false
	}
	return Rank(c - '1'), true
}

// Square is a board square indexed 0-63, with A1 = 0 and H8 = 63
// (index = rank*8 + file).
type Square int8

// NoSquare is the sentinel for "no square" (e.g. no en passant target).
const NoSquare Square = -1

// NewSquare builds a square from a file and a rank.
func NewSquare(f File, r Rank) Square {
	return Square(int8(r)<<3 | int8(f))
}

// File returns the file of the square.
func (sq Square) File() File {
	return File(sq & 7)
}

// Rank returns the rank of the square.
func (sq Square) Rank() Rank {
	return Rank(sq >> 3)
}

// String returns the algebraic name of the square, e.g. "e4".
func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{sq.File().Char(), sq.Rank().Char()})
}

// SquareFromString parses an algebraic square name such as "e4".
func SquareFromString(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	f, ok := FileFromChar(s[0])
	if !ok {
		return NoSquare, false
	}
	r, ok := RankFromChar(s[1])
	if !ok {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// IsDark reports whether the square is a dark square.
func (sq Square) IsDark() bool {
	return (int8(sq.File())+int8(sq.Rank()))%2 == 0
}

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)
