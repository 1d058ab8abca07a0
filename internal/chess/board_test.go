package chess_test

import (
	stderrors "errors"
	"testing"

	"chesskit/internal/chess"
	"chesskit/internal/errors"
	"chesskit/internal/testutil"
)

// TestMakeUnmakeRestores plays a move and takes it back, then checks the
// board is identical to the original in every field, including rights,
// en passant target and clocks.
func TestMakeUnmakeRestores(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		lan  string
	}{
		{"quiet pawn push", chess.StartingFEN, "e2e4"},
		{"knight development", chess.StartingFEN, "g1f3"},
		{"capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4d5"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6"},
		{"white kingside castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1"},
		{"black queenside castle", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8"},
		{"promotion", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", "g2h1q"},
		{"rook move drops right", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 3 10", "a1b1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.MustBoard(t, tt.fen)
			before := b.Copy()
			mv := testutil.MustMove(t, b, tt.lan)

			u, err := b.MakeMove(mv)
			if err != nil {
				t.Fatalf("MakeMove(%s): %v", mv, err)
			}
			if b.Equal(before) {
				t.Fatal("MakeMove did not change the board")
			}

			b.UnmakeMove(u)
			if !b.Equal(before) {
				t.Errorf("board after unmake:\n%v\nwant:\n%v", b, before)
			}
		})
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		mv   chess.Move
	}{
		{"empty origin", chess.StartingFEN, chess.Move{From: chess.E4, To: chess.E5}},
		{"wrong colour", chess.StartingFEN, chess.Move{From: chess.E7, To: chess.E5}},
		{"blocked slider", chess.StartingFEN, chess.Move{From: chess.D1, To: chess.D5}},
		{"leaves king in check", "4k3/8/8/8/7b/8/5P2/4K3 w - - 0 1", chess.Move{From: chess.F2, To: chess.F3}},
		{"promotion without promo piece", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N w - - 0 1", chess.Move{From: chess.B7, To: chess.B8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.MustBoard(t, tt.fen)
			before := b.Copy()
			_, err := b.MakeMove(tt.mv)
			if !stderrors.Is(err, errors.ErrIllegalMove) {
				t.Fatalf("MakeMove(%s) = %v, want ErrIllegalMove", tt.mv, err)
			}
			if !b.Equal(before) {
				t.Error("rejected move mutated the board")
			}
		})
	}
}

func TestMakeMoveUpdatesState(t *testing.T) {
	b := chess.StartingPosition()

	if _, err := b.MakeMove(testutil.MustMove(t, b, "e2e4")); err != nil {
		t.Fatal(err)
	}
	if got := b.EnPassantTarget(); got != chess.E3 {
		t.Errorf("ep after e4 = %v, want e3", got)
	}
	if b.SideToMove() != chess.Black {
		t.Error("side to move did not flip")
	}
	if b.HalfmoveClock() != 0 {
		t.Errorf("halfmove = %d, want 0 after pawn move", b.HalfmoveClock())
	}
	if b.FullmoveNumber() != 1 {
		t.Errorf("fullmove = %d, want 1 after White's move", b.FullmoveNumber())
	}

	if _, err := b.MakeMove(testutil.MustMove(t, b, "g8f6")); err != nil {
		t.Fatal(err)
	}
	if got := b.EnPassantTarget(); got != chess.NoSquare {
		t.Errorf("ep not cleared, still %v", got)
	}
	if b.HalfmoveClock() != 1 {
		t.Errorf("halfmove = %d, want 1 after knight move", b.HalfmoveClock())
	}
	if b.FullmoveNumber() != 2 {
		t.Errorf("fullmove = %d, want 2 after Black's move", b.FullmoveNumber())
	}
}

func TestCastlingMovesRookAndRights(t *testing.T) {
	b := testutil.MustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if _, err := b.MakeMove(testutil.MustMove(t, b, "e1g1")); err != nil {
		t.Fatal(err)
	}
	if got := b.PieceAt(chess.F1); got != (chess.Piece{Color: chess.White, Type: chess.Rook}) {
		t.Errorf("PieceAt(f1) = %v, want white rook", got)
	}
	if b.PieceAt(chess.H1) != chess.NoPiece {
		t.Error("rook still on h1 after castling")
	}
	if b.CastlingRights().Has(chess.WhiteKingSide) || b.CastlingRights().Has(chess.WhiteQueenSide) {
		t.Errorf("white rights survive castling: %v", b.CastlingRights())
	}
	if !b.CastlingRights().Has(chess.BlackKingSide) {
		t.Error("black rights lost by White castling")
	}
}

func TestRookCaptureDropsRight(t *testing.T) {
	b := testutil.MustBoard(t, "r3k2r/8/8/8/8/8/6B1/R3K2R w KQkq - 0 1")
	// Bxh8 removes Black's kingside rook on its home square.
	if _, err := b.MakeMove(testutil.MustMove(t, b, "g2h8")); err != nil {
		t.Fatal(err)
	}
	if b.CastlingRights().Has(chess.BlackKingSide) {
		t.Error("black kingside right survives rook capture on h8")
	}
	if !b.CastlingRights().Has(chess.BlackQueenSide) {
		t.Error("black queenside right lost without cause")
	}
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	b := testutil.MustBoard(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	u, err := b.MakeMove(testutil.MustMove(t, b, "e5d6"))
	if err != nil {
		t.Fatal(err)
	}
	if b.PieceAt(chess.D5) != chess.NoPiece {
		t.Error("captured pawn still on d5")
	}
	if got := b.PieceAt(chess.D6); got != (chess.Piece{Color: chess.White, Type: chess.Pawn}) {
		t.Errorf("PieceAt(d6) = %v, want white pawn", got)
	}
	if u.Captured != chess.Pawn || u.CapturedSquare != chess.D5 {
		t.Errorf("undo records capture %v on %v, want pawn on d5", u.Captured, u.CapturedSquare)
	}
}

func TestMakeUnmakeSequence(t *testing.T) {
	b := chess.StartingPosition()
	start := b.Copy()

	var undos []chess.Undo
	for _, lan := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "g8f6", "e1g1"} {
		u, err := b.MakeMove(testutil.MustMove(t, b, lan))
		if err != nil {
			t.Fatalf("MakeMove(%s): %v", lan, err)
		}
		undos = append(undos, u)
	}
	for i := len(undos) - 1; i >= 0; i-- {
		b.UnmakeMove(undos[i])
	}
	if !b.Equal(start) {
		t.Errorf("board after full unwind:\n%v\nwant starting position", b)
	}
}
