package chess

import (
	stderrors "errors"
	"testing"

	"chesskit/internal/errors"
)

func TestParseFENStartingPosition(t *testing.T) {
	b, err := ParseFEN(StartingFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !b.Equal(StartingPosition()) {
		t.Error("parsed starting position differs from StartingPosition()")
	}
	if got := b.FEN(); got != StartingFEN {
		t.Errorf("FEN() = %q, want %q", got, StartingFEN)
	}
}

func TestParseFENFields(t *testing.T) {
	fen := "r3k2r/8/8/3Pp3/8/8/8/R3K2R b Kq e6 12 34"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.SideToMove() != Black {
		t.Errorf("SideToMove() = %v, want Black", b.SideToMove())
	}
	if got := b.CastlingRights(); got != WhiteKingSide|BlackQueenSide {
		t.Errorf("CastlingRights() = %v, want Kq", got)
	}
	if got := b.EnPassantTarget(); got != E6 {
		t.Errorf("EnPassantTarget() = %v, want e6", got)
	}
	if b.HalfmoveClock() != 12 || b.FullmoveNumber() != 34 {
		t.Errorf("clocks = %d/%d, want 12/34", b.HalfmoveClock(), b.FullmoveNumber())
	}
	if got := b.PieceAt(D5); got != (Piece{White, Pawn}) {
		t.Errorf("PieceAt(d5) = %v, want white pawn", got)
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w - -", "fen"},
		{"bad piece letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", "placement"},
		{"short rank", "rnbqkbnr/ppppppp1/8/8/8/8/PPPPPPPP/RNBQKBN1 w KQkq - 0 1", "placement"},
		{"seven ranks", "8/8/8/8/8/8/4k2K w - - 0 1", "placement"},
		{"overflowing rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1", "placement"},
		{"two white kings", "4k3/8/8/8/8/8/8/2K1K3 w - - 0 1", "placement"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", "side to move"},
		{"bad castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1", "castling"},
		{"bad ep square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", "en passant"},
		{"negative halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", "halfmove clock"},
		{"zero fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", "fullmove number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			if err == nil {
				t.Fatal("expected error")
			}
			if !stderrors.Is(err, errors.ErrInvalidFEN) {
				t.Errorf("error %v does not unwrap to ErrInvalidFEN", err)
			}
			var fenErr errors.FENError
			if !stderrors.As(err, &fenErr) {
				t.Fatalf("error %v is not a FENError", err)
			}
			if fenErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", fenErr.Field, tt.field)
			}
		})
	}
}

// Castling rights whose king or rook has left its home square are dropped
// on parse so that later moves never have to reinstate them.
func TestParseFENSanitizesRights(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want CastleRights
	}{
		{"all valid", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", AllCastleRights},
		{"white king displaced", "r3k2r/8/8/8/8/8/4K3/R6R w KQkq - 0 1", BlackKingSide | BlackQueenSide},
		{"h1 rook missing", "r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1", WhiteQueenSide | BlackKingSide | BlackQueenSide},
		{"black rooks missing", "4k3/8/8/8/8/8/8/R3K2R w KQkq - 0 1", WhiteKingSide | WhiteQueenSide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseFEN(tt.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := b.CastlingRights(); got != tt.want {
				t.Errorf("CastlingRights() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 99 60",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", fen, err)
			continue
		}
		out := b.FEN()
		if out != fen {
			t.Errorf("FEN() = %q, want %q", out, fen)
		}
		b2, err := ParseFEN(out)
		if err != nil {
			t.Errorf("reparse %q: %v", out, err)
			continue
		}
		if !b.Equal(b2) {
			t.Errorf("round trip of %q changed the position", fen)
		}
	}
}
