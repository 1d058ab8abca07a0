package chess

import (
	"fmt"
	"strconv"
	"strings"

	"chesskit/internal/errors"
)

// StartingFEN is the FEN string of the standard starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a Board from the six space-separated FEN fields. Errors
// name the offending field and never leave a partially filled Board in the
// caller's hands.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, errors.FENError{Field: "fen", Detail: fmt.Sprintf("expected 6 fields, got %d", len(fields))}
	}

	b := NewBoard()
	if err := parsePlacement(b, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, errors.FENError{Field: "side to move", Detail: fmt.Sprintf("unknown side %q", fields[1])}
	}

	rights, err := parseRights(fields[2])
	if err != nil {
		return nil, err
	}
	b.rights = sanitizeRights(b, rights)

	if fields[3] != "-" {
		sq, ok := SquareFromString(fields[3])
		if !ok {
			return nil, errors.FENError{Field: "en passant", Detail: fmt.Sprintf("invalid square %q", fields[3])}
		}
		b.ep = sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, errors.FENError{Field: "halfmove clock", Detail: fmt.Sprintf("invalid counter %q", fields[4])}
	}
	b.halfmove = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, errors.FENError{Field: "fullmove number", Detail: fmt.Sprintf("invalid counter %q", fields[5])}
	}
	b.fullmove = fullmove

	if b.pieces[White][King].Count() != 1 || b.pieces[Black][King].Count() != 1 {
		return nil, errors.FENError{Field: "placement", Detail: "each side must have exactly one king"}
	}
	return b, nil
}

// parsePlacement fills in the piece placement field, rank 8 first with
// digits run-length-encoding empty squares.
func parsePlacement(b *Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return errors.FENError{Field: "placement", Detail: fmt.Sprintf("expected 8 ranks, got %d", len(rows))}
	}
	for i, row := range rows {
		r := Rank(7 - i)
		f := File(0)
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				f += File(c - '0')
				continue
			}
			p := PieceFromFENChar(c)
			if p == NoPiece {
				return errors.FENError{Field: "placement", Detail: fmt.Sprintf("unknown piece character %q", c)}
			}
			if f > 7 {
				return errors.FENError{Field: "placement", Detail: fmt.Sprintf("rank %c overflows", r.Char())}
			}
			b.putPiece(p, NewSquare(f, r))
			f++
		}
		if f != 8 {
			return errors.FENError{Field: "placement", Detail: fmt.Sprintf("rank %c has %d files", r.Char(), f)}
		}
	}
	return nil
}

func parseRights(field string) (CastleRights, error) {
	if field == "-" {
		return 0, nil
	}
	var rights CastleRights
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			rights |= WhiteKingSide
		case 'Q':
			rights |= WhiteQueenSide
		case 'k':
			rights |= BlackKingSide
		case 'q':
			rights |= BlackQueenSide
		default:
			return 0, errors.FENError{Field: "castling", Detail: fmt.Sprintf("invalid castling letter %q", field[i])}
		}
	}
	return rights, nil
}

// sanitizeRights drops rights whose king or rook is not on its home square,
// so the incremental rights invariant holds from the parsed position on.
func sanitizeRights(b *Board, rights CastleRights) CastleRights {
	if !b.pieces[White][King].Has(E1) {
		rights &^= WhiteKingSide | WhiteQueenSide
	}
	if !b.pieces[White][Rook].Has(H1) {
		rights &^= WhiteKingSide
	}
	if !b.pieces[White][Rook].Has(A1) {
		rights &^= WhiteQueenSide
	}
	if !b.pieces[Black][King].Has(E8) {
		rights &^= BlackKingSide | BlackQueenSide
	}
	if !b.pieces[Black][Rook].Has(H8) {
		rights &^= BlackKingSide
	}
	if !b.pieces[Black][Rook].Has(A8) {
		rights &^= BlackQueenSide
	}
	return rights
}

// FEN serialises the board into the six FEN fields. A Board parsed from a
// well-formed FEN string serialises back to an equal Board when reparsed.
func (b *Board) FEN() string {
	var sb strings.Builder

	for r := Rank(7); r >= 0; r-- {
		empty := 0
		for f := File(0); f < 8; f++ {
			p := b.PieceAt(NewSquare(f, r))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.FENChar())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	fmt.Fprintf(&sb, " %c %s %s %d %d", b.turn.Char(), b.rights, b.ep, b.halfmove, b.fullmove)
	return sb.String()
}
