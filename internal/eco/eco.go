// Package eco classifies chess openings with ECO (Encyclopaedia of Chess
// Openings) codes. Classification matches by position, not by move order,
// so transpositions into a known line are recognised.
package eco

import (
	"chesskit/internal/chess"
	"chesskit/internal/errors"
	"chesskit/internal/game"
	"chesskit/internal/hashing"
	"chesskit/internal/pgn"
)

// Entry is one opening classification: an ECO code, the opening name and
// an optional variation, reached after HalfMoves plies from the standard
// starting position.
type Entry struct {
	Code      string // e.g. "B20"
	Opening   string // e.g. "Sicilian Defence"
	Variation string
	HalfMoves int
}

// Classifier maps position hashes to opening entries. The deepest known
// position a game passes through decides its classification.
type Classifier struct {
	entries map[uint64]Entry
	maxPly  int
}

// NewClassifier returns an empty classifier.
func NewClassifier() *Classifier {
	return &Classifier{entries: make(map[uint64]Entry)}
}

// AddLine registers the position at the end of movetext (a SAN move
// sequence from the standard starting position) under the given code. A
// line transposing to an already known position replaces the earlier entry.
func (c *Classifier) AddLine(code, opening, variation, movetext string) error {
	g, err := pgn.ParseString(movetext + " *")
	if err != nil {
		return errors.Wrapf(err, "ECO line %s", code)
	}
	pos := g.Position()
	c.entries[hashing.Position(&pos)] = Entry{
		Code:      code,
		Opening:   opening,
		Variation: variation,
		HalfMoves: len(g.Moves()),
	}
	if len(g.Moves()) > c.maxPly {
		c.maxPly = len(g.Moves())
	}
	return nil
}

// Len returns the number of registered entries.
func (c *Classifier) Len() int {
	return len(c.entries)
}

// Classify replays a game from the standard starting position and returns
// the entry of the deepest known position it passes through. Games from a
// non-standard start are never classified.
func (c *Classifier) Classify(g *game.Game) (Entry, bool) {
	if g.StartFEN() != chess.StartingFEN {
		return Entry{}, false
	}
	b := chess.StartingPosition()

	var best Entry
	found := false
	for i, mv := range g.Moves() {
		if _, err := b.MakeMove(mv); err != nil {
			break
		}
		if entry, ok := c.entries[hashing.Position(b)]; ok {
			best = entry
			found = true
		}
		// Openings are decided in the first moves; stop once no deeper
		// book line can match.
		if i+1 >= c.maxPly {
			break
		}
	}
	return best, found
}

// Annotate classifies the game and records the result in its ECO, Opening
// and Variation tags. It reports whether a classification was found.
func (c *Classifier) Annotate(g *game.Game) bool {
	entry, ok := c.Classify(g)
	if !ok {
		return false
	}
	g.SetTag("ECO", entry.Code)
	g.SetTag("Opening", entry.Opening)
	if entry.Variation != "" {
		g.SetTag("Variation", entry.Variation)
	}
	return true
}

// builtinLines is a compact book of well-known lines. Deeper lines follow
// shallower ones so transpositions resolve to the most specific entry.
var builtinLines = []struct {
	code, opening, variation, moves string
}{
	{"A04", "Réti Opening", "", "1. Nf3"},
	{"A10", "English Opening", "", "1. c4"},
	{"A40", "Queen's Pawn Game", "", "1. d4"},
	{"B00", "King's Pawn Game", "", "1. e4"},
	{"B06", "Modern Defence", "", "1. e4 g6"},
	{"B10", "Caro-Kann Defence", "", "1. e4 c6"},
	{"B20", "Sicilian Defence", "", "1. e4 c5"},
	{"B27", "Sicilian Defence", "2.Nf3", "1. e4 c5 2. Nf3"},
	{"B50", "Sicilian Defence", "2.Nf3 d6", "1. e4 c5 2. Nf3 d6"},
	{"C00", "French Defence", "", "1. e4 e6"},
	{"C02", "French Defence", "Advance Variation", "1. e4 e6 2. d4 d5 3. e5"},
	{"C20", "King's Pawn Game", "1...e5", "1. e4 e5"},
	{"C40", "King's Knight Opening", "", "1. e4 e5 2. Nf3"},
	{"C44", "King's Pawn Game", "2...Nc6", "1. e4 e5 2. Nf3 Nc6"},
	{"C50", "Italian Game", "", "1. e4 e5 2. Nf3 Nc6 3. Bc4"},
	{"C60", "Ruy Lopez", "", "1. e4 e5 2. Nf3 Nc6 3. Bb5"},
	{"D00", "Queen's Pawn Game", "1...d5", "1. d4 d5"},
	{"D06", "Queen's Gambit", "", "1. d4 d5 2. c4"},
	{"D20", "Queen's Gambit Accepted", "", "1. d4 d5 2. c4 dxc4"},
	{"D30", "Queen's Gambit Declined", "", "1. d4 d5 2. c4 e6"},
	{"E20", "Nimzo-Indian Defence", "", "1. d4 Nf6 2. c4 e6 3. Nc3 Bb4"},
}

// Default returns a classifier preloaded with the builtin opening book.
func Default() *Classifier {
	c := NewClassifier()
	for _, line := range builtinLines {
		if err := c.AddLine(line.code, line.opening, line.variation, line.moves); err != nil {
			// The builtin book is validated by tests; a bad line here is
			// a programming error.
			panic(err)
		}
	}
	return c
}
