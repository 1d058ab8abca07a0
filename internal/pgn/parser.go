package pgn

import (
	"io"
	"strings"

	"chesskit/internal/chess"
	"chesskit/internal/errors"
	"chesskit/internal/game"
)

// Parser builds a Game from PGN input: a tag-pair section followed by
// movetext. Each SAN token is replayed through the legal move set, so a
// parsed game is legal by construction. Comments, NAGs and recursive
// variations are consumed and discarded.
type Parser struct {
	lex *Lexer
	tok Token
}

// Parse reads a single game from r.
func Parse(r io.Reader) (*game.Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading PGN")
	}
	return ParseString(string(data))
}

// ParseString reads a single game from a string.
func ParseString(src string) (*game.Game, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.next(); err != nil {
		return nil, err
	}

	tags, err := p.parseTags()
	if err != nil {
		return nil, err
	}

	g, err := newGameFromTags(tags)
	if err != nil {
		return nil, err
	}
	for name, value := range tags {
		g.SetTag(name, value)
	}

	if err := p.parseMovetext(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) errorf(expected string) error {
	return &errors.ParseError{
		Line:     p.tok.Line,
		Column:   p.tok.Col,
		Expected: expected,
		Got:      p.tok.Type.String(),
	}
}

// parseTags reads the '[Key "Value"]' pairs preceding the movetext.
func (p *Parser) parseTags() (map[string]string, error) {
	tags := make(map[string]string)
	for p.tok.Type == TagStart {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type != MoveToken {
			return nil, p.errorf("tag name")
		}
		name := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type != StringToken {
			return nil, p.errorf("quoted tag value")
		}
		tags[name] = p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type != TagEnd {
			return nil, p.errorf("']'")
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return tags, nil
}

// newGameFromTags honours a FEN tag so games from arbitrary positions
// replay correctly.
func newGameFromTags(tags map[string]string) (*game.Game, error) {
	if fen, ok := tags["FEN"]; ok {
		g, err := game.FromFEN(fen)
		if err != nil {
			return nil, errors.Wrap(err, "FEN tag")
		}
		return g, nil
	}
	return game.New(), nil
}

func (p *Parser) parseMovetext(g *game.Game) error {
	ply := 0
	for {
		switch p.tok.Type {
		case EOFToken:
			return nil
		case ResultToken:
			if existing := g.GetTag("Result"); existing == "" {
				g.SetTag("Result", p.tok.Text)
			}
			return nil
		case MoveNumberToken, CommentToken, NAGToken:
			// Move numbers are decorative; comments and NAGs are
			// consumed and discarded.
		case RAVStart:
			if err := p.skipVariation(); err != nil {
				return err
			}
		case MoveToken:
			ply++
			if err := p.playSAN(g, ply); err != nil {
				return err
			}
		default:
			return p.errorf("movetext token")
		}
		if err := p.next(); err != nil {
			return err
		}
	}
}

func (p *Parser) playSAN(g *game.Game, ply int) error {
	text := p.tok.Text
	if text == "--" {
		return &errors.ParseError{
			Line: p.tok.Line, Column: p.tok.Col,
			Got: "null move '--'", Err: errors.ErrParseFailure,
		}
	}
	pos := g.Position()
	mv, err := ResolveSAN(&pos, text)
	if err != nil {
		return &errors.GameError{Err: err, PlyNum: ply, MoveText: text}
	}
	if err := g.PlayMove(mv); err != nil {
		return &errors.GameError{Err: err, PlyNum: ply, MoveText: text}
	}
	return nil
}

// skipVariation consumes a recursive variation, including nested ones.
func (p *Parser) skipVariation() error {
	depth := 1
	for depth > 0 {
		if err := p.next(); err != nil {
			return err
		}
		switch p.tok.Type {
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
		case EOFToken:
			return p.errorf("')'")
		}
	}
	return nil
}

// ResolveGameSAN resolves a SAN token against a game's current position.
// It is a convenience for callers that drive a Game by SAN strings.
func ResolveGameSAN(g *game.Game, san string) (chess.Move, error) {
	pos := g.Position()
	return ResolveSAN(&pos, san)
}

// sanitizeTagValue keeps tag values single-line and quote-safe.
func sanitizeTagValue(v string) string {
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "\"", "\\\"")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}
