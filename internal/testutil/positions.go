// Package testutil provides shared test fixtures: well-known positions and
// their published perft reference counts.
package testutil

import (
	"testing"

	"chesskit/internal/chess"
)

// Well-known test positions.
const (
	// KiwipeteFEN is the classic move-generation torture position.
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	// EndgameFEN is a rook endgame with promotion and en passant traps.
	EndgameFEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"

	// PromotionFEN is a position rich in underpromotion lines.
	PromotionFEN = "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1"

	// StalemateFEN is a position where the side to move has no legal move
	// and is not in check.
	StalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"

	// MateFEN is a back-rank checkmate, Black to move.
	MateFEN = "6Rk/8/5N2/8/8/8/8/6K1 b - - 0 1"
)

// PerftCase pairs a position and depth with its published node count.
type PerftCase struct {
	Name     string
	FEN      string
	Depth    int
	Expected uint64
}

// PerftSuite lists the reference counts used to validate move generation.
// Sources: the standard perft results for the start position, Kiwipete and
// the endgame/promotion positions.
var PerftSuite = []PerftCase{
	{"start depth 1", chess.StartingFEN, 1, 20},
	{"start depth 2", chess.StartingFEN, 2, 400},
	{"start depth 3", chess.StartingFEN, 3, 8902},
	{"start depth 4", chess.StartingFEN, 4, 197281},
	{"kiwipete depth 1", KiwipeteFEN, 1, 48},
	{"kiwipete depth 2", KiwipeteFEN, 2, 2039},
	{"kiwipete depth 3", KiwipeteFEN, 3, 97862},
	{"endgame depth 1", EndgameFEN, 1, 14},
	{"endgame depth 2", EndgameFEN, 2, 191},
	{"endgame depth 3", EndgameFEN, 3, 2812},
	{"endgame depth 4", EndgameFEN, 4, 43238},
	{"promotion depth 1", PromotionFEN, 1, 24},
	{"promotion depth 2", PromotionFEN, 2, 496},
	{"promotion depth 3", PromotionFEN, 3, 9483},
}

// MustBoard parses a FEN string or fails the test.
func MustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	b, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

// MustMove resolves long algebraic notation against the board's legal move
// set or fails the test.
func MustMove(t *testing.T, b *chess.Board, lan string) chess.Move {
	t.Helper()
	mv, ok := chess.MoveFromString(lan)
	if !ok {
		t.Fatalf("MoveFromString(%q): bad notation", lan)
	}
	legal, ok := b.LegalMoves().Find(mv.From, mv.To, mv.Promo)
	if !ok {
		t.Fatalf("move %q is not legal in %q", lan, b.FEN())
	}
	return legal
}
