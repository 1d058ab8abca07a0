// Package game wraps a Board with move history, result tracking and the
// draw rules that need more context than a single position: threefold
// repetition, the fifty-move rule and insufficient material.
package game

import (
	"fmt"

	"chesskit/internal/chess"
	"chesskit/internal/errors"
	"chesskit/internal/hashing"
)

// State is the game's place in the result state machine.
type State int8

const (
	// InProgress means moves can still be played.
	InProgress State = iota
	// Checkmate means the side to move has been mated.
	Checkmate
	// Stalemate means the side to move has no legal move and is not in check.
	Stalemate
	// DrawClaimed means a player claimed a draw by repetition or the
	// fifty-move rule.
	DrawClaimed
	// DrawAutomatic means the game ended by itself, with insufficient
	// material the only automatic reason.
	DrawAutomatic
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case DrawClaimed:
		return "DrawClaimed"
	case DrawAutomatic:
		return "DrawAutomatic"
	default:
		return "Unknown"
	}
}

// DrawReason states why a game was drawn by claim or automatically.
type DrawReason int8

const (
	DrawNone DrawReason = iota
	DrawFiftyMove
	DrawRepetition
	DrawInsufficientMaterial
)

// String returns the reason name.
func (r DrawReason) String() string {
	switch r {
	case DrawFiftyMove:
		return "fifty-move rule"
	case DrawRepetition:
		return "threefold repetition"
	case DrawInsufficientMaterial:
		return "insufficient material"
	default:
		return "none"
	}
}

// Game is a Board plus everything needed to score a full game: the move
// history with undo records, a count per position hash for repetition
// detection, PGN tags and the result state.
//
// Like Board, a Game is meant for one caller at a time.
type Game struct {
	board *chess.Board
	moves []chess.Move
	undos []chess.Undo

	hashes     []uint64
	hashCounts map[uint64]int

	tags     map[string]string
	startFEN string

	state      State
	winner     chess.Color
	drawReason DrawReason
}

// New starts a game from the standard starting position.
func New() *Game {
	return FromBoard(chess.StartingPosition())
}

// FromBoard starts a game from an arbitrary position, as if it were the
// first. The Game takes ownership of the board.
func FromBoard(b *chess.Board) *Game {
	g := &Game{
		board:      b,
		hashCounts: make(map[uint64]int),
		tags:       make(map[string]string),
		startFEN:   b.FEN(),
	}
	h := hashing.Position(b)
	g.hashes = append(g.hashes, h)
	g.hashCounts[h]++
	g.evaluate(true)
	return g
}

// FromFEN starts a game from a FEN position.
func FromFEN(fen string) (*Game, error) {
	b, err := chess.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return FromBoard(b), nil
}

// StartFEN returns the FEN of the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// Position returns a copy of the current board.
func (g *Game) Position() chess.Board {
	return *g.board
}

// FEN returns the FEN string of the current position.
func (g *Game) FEN() string {
	return g.board.FEN()
}

// SideToMove returns the colour to move.
func (g *Game) SideToMove() chess.Color {
	return g.board.SideToMove()
}

// Moves returns the moves played so far, oldest first.
func (g *Game) Moves() []chess.Move {
	out := make([]chess.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (chess.Move, bool) {
	if len(g.moves) == 0 {
		return chess.Move{}, false
	}
	return g.moves[len(g.moves)-1], true
}

// LegalMoves returns the legal move set of the current position. In a
// terminal state the set is empty.
func (g *Game) LegalMoves() chess.MoveList {
	if g.state != InProgress {
		return nil
	}
	return g.board.LegalMoves()
}

// LegalMovesFrom returns the legal moves originating on sq.
func (g *Game) LegalMovesFrom(sq chess.Square) chess.MoveList {
	return g.LegalMoves().From(sq)
}

// State returns the current result state.
func (g *Game) State() State {
	return g.state
}

// Winner returns the winning colour when the state is Checkmate.
func (g *Game) Winner() (chess.Color, bool) {
	if g.state != Checkmate {
		return chess.White, false
	}
	return g.winner, true
}

// DrawReason returns the draw reason for a drawn game, or DrawNone.
func (g *Game) DrawReason() DrawReason {
	return g.drawReason
}

// Result returns the PGN result marker for the game: "1-0", "0-1",
// "1/2-1/2" or "*".
func (g *Game) Result() string {
	switch g.state {
	case Checkmate:
		if g.winner == chess.White {
			return "1-0"
		}
		return "0-1"
	case Stalemate, DrawClaimed, DrawAutomatic:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// GetTag returns a PGN tag value, or the empty string.
func (g *Game) GetTag(name string) string {
	return g.tags[name]
}

// SetTag sets a PGN tag.
func (g *Game) SetTag(name, value string) {
	g.tags[name] = value
}

// Tags returns a copy of all PGN tags.
func (g *Game) Tags() map[string]string {
	out := make(map[string]string, len(g.tags))
	for k, v := range g.tags {
		out[k] = v
	}
	return out
}

// PlayMove applies a legal move and re-evaluates the result state. It fails
// with ErrGameOver in a terminal state and ErrIllegalMove for a move not in
// the legal set; in both cases the game is unchanged.
func (g *Game) PlayMove(mv chess.Move) error {
	if g.state != InProgress {
		return fmt.Errorf("%s: %w", g.state, errors.ErrGameOver)
	}
	u, err := g.board.MakeMove(mv)
	if err != nil {
		return err
	}
	g.moves = append(g.moves, u.Move)
	g.undos = append(g.undos, u)

	h := hashing.Position(g.board)
	g.hashes = append(g.hashes, h)
	g.hashCounts[h]++

	g.evaluate(u.Captured != chess.NoPieceType || u.Move.IsPromotion())
	return nil
}

// UndoMove takes back the last move and returns the game to InProgress.
// It fails if no move has been played.
func (g *Game) UndoMove() error {
	if len(g.moves) == 0 {
		return fmt.Errorf("no move to undo: %w", errors.ErrIllegalMove)
	}
	u := g.undos[len(g.undos)-1]
	g.undos = g.undos[:len(g.undos)-1]
	g.moves = g.moves[:len(g.moves)-1]

	h := g.hashes[len(g.hashes)-1]
	g.hashes = g.hashes[:len(g.hashes)-1]
	if g.hashCounts[h]--; g.hashCounts[h] == 0 {
		delete(g.hashCounts, h)
	}

	g.board.UnmakeMove(u)
	g.state = InProgress
	g.drawReason = DrawNone
	return nil
}

// CanClaimDraw reports whether a draw claim would succeed, and on what
// grounds. The fifty-move rule needs 100 plies without a pawn move or
// capture; repetition needs the current position to have occurred three
// times.
func (g *Game) CanClaimDraw() (DrawReason, bool) {
	if g.state != InProgress {
		return DrawNone, false
	}
	if g.board.HalfmoveClock() >= 100 {
		return DrawFiftyMove, true
	}
	if g.hashCounts[g.hashes[len(g.hashes)-1]] >= 3 {
		return DrawRepetition, true
	}
	return DrawNone, false
}

// ClaimDraw ends the game as DrawClaimed when a claim is available, and
// fails with ErrDrawNotAvailable otherwise.
func (g *Game) ClaimDraw() error {
	if g.state != InProgress {
		return fmt.Errorf("%s: %w", g.state, errors.ErrGameOver)
	}
	reason, ok := g.CanClaimDraw()
	if !ok {
		return errors.ErrDrawNotAvailable
	}
	g.state = DrawClaimed
	g.drawReason = reason
	return nil
}

// evaluate transitions the state machine after a move (or at construction).
// Checkmate and stalemate end the game; insufficient material ends it
// automatically as a draw.
func (g *Game) evaluate(materialChanged bool) {
	if len(g.board.LegalMoves()) == 0 {
		if g.board.InCheck() {
			g.state = Checkmate
			g.winner = g.board.SideToMove().Other()
		} else {
			g.state = Stalemate
		}
		return
	}
	// Material only changes on a capture or a promotion; quiet
	// non-promoting moves skip the table lookup.
	if materialChanged && g.board.HasInsufficientMaterial() {
		g.state = DrawAutomatic
		g.drawReason = DrawInsufficientMaterial
	}
}
