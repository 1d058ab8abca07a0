package game_test

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chesskit/internal/chess"
	"chesskit/internal/errors"
	"chesskit/internal/game"
	"chesskit/internal/testutil"
)

// play applies a sequence of long-algebraic moves or fails the test.
func play(t *testing.T, g *game.Game, lans ...string) {
	t.Helper()
	for _, lan := range lans {
		mv, ok := chess.MoveFromString(lan)
		if !ok {
			t.Fatalf("bad notation %q", lan)
		}
		if err := g.PlayMove(mv); err != nil {
			t.Fatalf("PlayMove(%s): %v", lan, err)
		}
	}
}

func TestFoolsMate(t *testing.T) {
	g := game.New()
	play(t, g, "f2f3", "e7e5", "g2g4")
	if g.State() != game.InProgress {
		t.Fatalf("state before the mating move = %v", g.State())
	}

	play(t, g, "d8h4")
	if g.State() != game.Checkmate {
		t.Fatalf("state = %v, want Checkmate", g.State())
	}
	winner, ok := g.Winner()
	if !ok || winner != chess.Black {
		t.Errorf("Winner() = %v, %v, want Black", winner, ok)
	}
	if got := g.Result(); got != "0-1" {
		t.Errorf("Result() = %q, want 0-1", got)
	}
	if moves := g.LegalMoves(); moves.Len() != 0 {
		t.Errorf("legal moves in a finished game: %s", moves)
	}
}

func TestStalemateEndsGame(t *testing.T) {
	g, err := game.FromFEN("7k/8/6K1/8/8/8/8/5Q2 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	play(t, g, "f1f7")
	if g.State() != game.Stalemate {
		t.Fatalf("state = %v, want Stalemate", g.State())
	}
	if got := g.Result(); got != "1/2-1/2" {
		t.Errorf("Result() = %q, want 1/2-1/2", got)
	}
}

func TestPlayMoveErrors(t *testing.T) {
	g := game.New()
	if err := g.PlayMove(chess.Move{From: chess.E2, To: chess.E5}); !stderrors.Is(err, errors.ErrIllegalMove) {
		t.Errorf("illegal move error = %v, want ErrIllegalMove", err)
	}
	if g.State() != game.InProgress || len(g.Moves()) != 0 {
		t.Error("rejected move left a trace")
	}

	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	err := g.PlayMove(chess.Move{From: chess.E2, To: chess.E4})
	if !stderrors.Is(err, errors.ErrGameOver) {
		t.Errorf("move after mate = %v, want ErrGameOver", err)
	}
}

func TestThreefoldRepetitionClaim(t *testing.T) {
	g := game.New()

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	// After one shuffle the start position has occurred twice; no claim yet.
	play(t, g, shuffle...)
	if reason, ok := g.CanClaimDraw(); ok {
		t.Fatalf("claim available after two occurrences: %v", reason)
	}
	if err := g.ClaimDraw(); !stderrors.Is(err, errors.ErrDrawNotAvailable) {
		t.Fatalf("ClaimDraw() = %v, want ErrDrawNotAvailable", err)
	}

	// The second shuffle brings the count to three.
	play(t, g, shuffle...)
	reason, ok := g.CanClaimDraw()
	if !ok || reason != game.DrawRepetition {
		t.Fatalf("CanClaimDraw() = %v, %v, want repetition claim", reason, ok)
	}
	if err := g.ClaimDraw(); err != nil {
		t.Fatalf("ClaimDraw(): %v", err)
	}
	if g.State() != game.DrawClaimed || g.DrawReason() != game.DrawRepetition {
		t.Errorf("state = %v/%v, want DrawClaimed/repetition", g.State(), g.DrawReason())
	}
	if got := g.Result(); got != "1/2-1/2" {
		t.Errorf("Result() = %q, want 1/2-1/2", got)
	}
}

// Castling rights distinguish otherwise identical positions: shuffling the
// kings back and forth never repeats the initial rights-bearing position.
func TestRepetitionRespectsRights(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	// The first king move forfeits castling, so the rights-free position
	// only reaches its first occurrence at the end of the first shuffle.
	// It takes three shuffles in total to occur three times.
	shuffle := []string{"e1f1", "e8d8", "f1e1", "d8e8"}
	play(t, g, shuffle...)
	play(t, g, shuffle...)
	if _, ok := g.CanClaimDraw(); ok {
		t.Fatal("claim available though the start position carried castling rights")
	}
	play(t, g, shuffle...)
	reason, ok := g.CanClaimDraw()
	if !ok || reason != game.DrawRepetition {
		t.Errorf("CanClaimDraw() = %v, %v, want repetition claim", reason, ok)
	}
}

func TestFiftyMoveClaim(t *testing.T) {
	g, err := game.FromFEN("4k3/7p/8/8/8/8/8/R3K3 w - - 99 80")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.CanClaimDraw(); ok {
		t.Fatal("claim available at 99 plies")
	}

	play(t, g, "a1b1")
	reason, ok := g.CanClaimDraw()
	if !ok || reason != game.DrawFiftyMove {
		t.Fatalf("CanClaimDraw() = %v, %v, want fifty-move claim", reason, ok)
	}

	// A pawn move resets the clock and invalidates the claim.
	play(t, g, "h7h6")
	if _, ok := g.CanClaimDraw(); ok {
		t.Error("claim survives a pawn move")
	}

	if err := g.ClaimDraw(); !stderrors.Is(err, errors.ErrDrawNotAvailable) {
		t.Errorf("ClaimDraw() = %v, want ErrDrawNotAvailable", err)
	}
}

func TestInsufficientMaterialAutoDraw(t *testing.T) {
	// Knight takes White's last rook, leaving king and knight versus king.
	g, err := game.FromFEN("4k3/8/8/8/8/1n6/8/R3K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if g.State() != game.InProgress {
		t.Fatalf("state = %v before the final capture", g.State())
	}
	play(t, g, "b3a1")
	if g.State() != game.DrawAutomatic {
		t.Fatalf("state = %v, want DrawAutomatic", g.State())
	}
	if g.DrawReason() != game.DrawInsufficientMaterial {
		t.Errorf("DrawReason() = %v, want insufficient material", g.DrawReason())
	}
	if err := g.PlayMove(chess.Move{From: chess.E1, To: chess.E2}); !stderrors.Is(err, errors.ErrGameOver) {
		t.Errorf("move after automatic draw = %v, want ErrGameOver", err)
	}
}

func TestInsufficientMaterialAfterUnderpromotion(t *testing.T) {
	// A quiet knight underpromotion turns king and pawn versus king into
	// king and knight versus king.
	g, err := game.FromFEN("8/4P3/8/8/4k3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	play(t, g, "e7e8n")
	if g.State() != game.DrawAutomatic {
		t.Fatalf("state = %v, want DrawAutomatic", g.State())
	}
	if g.DrawReason() != game.DrawInsufficientMaterial {
		t.Errorf("DrawReason() = %v, want insufficient material", g.DrawReason())
	}
}

func TestFromFENInsufficientAtStart(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/8/8/8/3BK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if g.State() != game.DrawAutomatic || g.DrawReason() != game.DrawInsufficientMaterial {
		t.Errorf("state = %v/%v, want DrawAutomatic/insufficient material", g.State(), g.DrawReason())
	}
}

func TestUndoMove(t *testing.T) {
	g := game.New()
	startFEN := g.FEN()

	play(t, g, "e2e4", "e7e5")
	if err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if len(g.Moves()) != 1 {
		t.Fatalf("Moves() has %d entries after undo, want 1", len(g.Moves()))
	}
	if err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if got := g.FEN(); got != startFEN {
		t.Errorf("FEN after full undo = %q, want %q", got, startFEN)
	}
	if err := g.UndoMove(); !stderrors.Is(err, errors.ErrIllegalMove) {
		t.Errorf("undo on empty history = %v, want ErrIllegalMove", err)
	}
}

// Undoing the mating move reopens the game.
func TestUndoMoveReopensGame(t *testing.T) {
	g := game.New()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if g.State() != game.Checkmate {
		t.Fatal("setup: expected checkmate")
	}
	if err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if g.State() != game.InProgress {
		t.Errorf("state after undo = %v, want InProgress", g.State())
	}
	if moves := g.LegalMoves(); moves.Len() == 0 {
		t.Error("no legal moves after reopening")
	}
}

// Undo must also decrement the repetition count, so a position undone out
// of existence cannot support a claim.
func TestUndoMoveAdjustsRepetitions(t *testing.T) {
	g := game.New()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	play(t, g, shuffle...)
	play(t, g, shuffle...)
	if _, ok := g.CanClaimDraw(); !ok {
		t.Fatal("setup: expected a repetition claim")
	}
	if err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	play(t, g, "f6e4")
	if _, ok := g.CanClaimDraw(); ok {
		t.Error("claim survives undoing the repeating move")
	}
}

func TestTags(t *testing.T) {
	g := game.New()
	g.SetTag("Event", "Club Championship")
	g.SetTag("White", "Alekhine")
	if got := g.GetTag("Event"); got != "Club Championship" {
		t.Errorf("GetTag(Event) = %q", got)
	}
	if got := g.GetTag("Site"); got != "" {
		t.Errorf("GetTag(Site) = %q, want empty", got)
	}
	want := map[string]string{"Event": "Club Championship", "White": "Alekhine"}
	if diff := cmp.Diff(want, g.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
	// Tags() is a copy; mutating it must not touch the game.
	g.Tags()["Event"] = "changed"
	if got := g.GetTag("Event"); got != "Club Championship" {
		t.Error("Tags() exposes internal state")
	}
}

func TestMovesReturnsCopy(t *testing.T) {
	g := game.New()
	play(t, g, "e2e4")
	moves := g.Moves()
	moves[0] = chess.Move{}
	again := g.Moves()
	if again[0].From != chess.E2 || again[0].To != chess.E4 {
		t.Error("Moves() exposes internal state")
	}
}

func TestFromBoardNonStandardStart(t *testing.T) {
	b := testutil.MustBoard(t, testutil.KiwipeteFEN)
	g := game.FromBoard(b)
	if g.StartFEN() != testutil.KiwipeteFEN {
		t.Errorf("StartFEN() = %q, want %q", g.StartFEN(), testutil.KiwipeteFEN)
	}
	if g.State() != game.InProgress {
		t.Errorf("state = %v, want InProgress", g.State())
	}
	if got := g.LegalMoves().Len(); got != 48 {
		t.Errorf("LegalMoves().Len() = %d, want 48", got)
	}
}
