package pgn

import (
	"fmt"
	"sort"
	"strings"

	"chesskit/internal/chess"
	"chesskit/internal/errors"
	"chesskit/internal/game"
)

// sevenTagRoster is the mandated tag order of PGN export format.
var sevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// maxLineLen is the movetext wrap column of PGN export format.
const maxLineLen = 80

// Write serialises a game to PGN: the seven tag roster (with "?" defaults),
// any further tags in alphabetical order, and the movetext in SAN with the
// result marker.
func Write(g *game.Game) (string, error) {
	var sb strings.Builder

	tags := g.Tags()
	result := g.Result()
	if result == "*" && tags["Result"] != "" {
		// An adjudicated result (e.g. resignation) survives from the
		// Result tag; the engine itself only scores on-board endings.
		result = tags["Result"]
	}
	tags["Result"] = result
	if g.StartFEN() != chess.StartingFEN {
		tags["SetUp"] = "1"
		tags["FEN"] = g.StartFEN()
	}

	for _, name := range sevenTagRoster {
		value := tags[name]
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", name, sanitizeTagValue(value))
		delete(tags, name)
	}
	extra := make([]string, 0, len(tags))
	for name := range tags {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", name, sanitizeTagValue(tags[name]))
	}
	sb.WriteByte('\n')

	movetext, err := renderMovetext(g)
	if err != nil {
		return "", err
	}
	movetext = append(movetext, result)
	sb.WriteString(wrapTokens(movetext, maxLineLen))
	sb.WriteByte('\n')
	return sb.String(), nil
}

// renderMovetext replays the game from its starting position, rendering
// each move in SAN with move numbers.
func renderMovetext(g *game.Game) ([]string, error) {
	b, err := chess.ParseFEN(g.StartFEN())
	if err != nil {
		return nil, errors.Wrap(err, "game start position")
	}

	var tokens []string
	for i, mv := range g.Moves() {
		if b.SideToMove() == chess.White {
			tokens = append(tokens, fmt.Sprintf("%d.", b.FullmoveNumber()))
		} else if i == 0 {
			tokens = append(tokens, fmt.Sprintf("%d...", b.FullmoveNumber()))
		}
		san, err := RenderSAN(b, mv)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering move %d", i+1)
		}
		tokens = append(tokens, san)
		if _, err := b.MakeMove(mv); err != nil {
			return nil, errors.Wrapf(err, "replaying move %d", i+1)
		}
	}
	return tokens, nil
}

// wrapTokens joins tokens with spaces, wrapping lines at the given column.
func wrapTokens(tokens []string, width int) string {
	var sb strings.Builder
	lineLen := 0
	for i, tok := range tokens {
		if i > 0 {
			if lineLen+1+len(tok) > width {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}
		sb.WriteString(tok)
		lineLen += len(tok)
	}
	return sb.String()
}
