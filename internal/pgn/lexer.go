package pgn

import (
	"strings"

	"chesskit/internal/errors"
)

// Lexer tokenizes PGN input. It works on the whole input at once and
// tracks line/column positions for error reporting.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// NewLexer creates a lexer over the given input.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '%' && l.col == 1:
			// Escape line, ignored through end of line.
			l.skipToEOL()
		case c == ';':
			// Rest-of-line comment.
			l.skipToEOL()
		default:
			return
		}
	}
}

func (l *Lexer) skipToEOL() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) errorf(expected, got string) error {
	return &errors.ParseError{Line: l.line, Column: l.col, Expected: expected, Got: got}
}

// Next returns the next token, or an EOFToken at end of input.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	tok := Token{Line: l.line, Col: l.col}
	if l.pos >= len(l.src) {
		tok.Type = EOFToken
		return tok, nil
	}

	switch c := l.peek(); {
	case c == '[':
		l.advance()
		tok.Type = TagStart
		return tok, nil
	case c == ']':
		l.advance()
		tok.Type = TagEnd
		return tok, nil
	case c == '(':
		l.advance()
		tok.Type = RAVStart
		return tok, nil
	case c == ')':
		l.advance()
		tok.Type = RAVEnd
		return tok, nil
	case c == '"':
		return l.lexString(tok)
	case c == '{':
		return l.lexComment(tok)
	case c == '$':
		return l.lexNAG(tok)
	case c == '*':
		l.advance()
		tok.Type = ResultToken
		tok.Text = "*"
		return tok, nil
	case c >= '0' && c <= '9':
		return l.lexNumber(tok)
	default:
		return l.lexWord(tok)
	}
}

// lexString reads a quoted tag value with \" and \\ escapes.
func (l *Lexer) lexString(tok Token) (Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return tok, l.errorf("closing quote", "end of input")
		}
		c := l.advance()
		if c == '"' {
			break
		}
		if c == '\\' && (l.peek() == '"' || l.peek() == '\\') {
			c = l.advance()
		}
		sb.WriteByte(c)
	}
	tok.Type = StringToken
	tok.Text = sb.String()
	return tok, nil
}

func (l *Lexer) lexComment(tok Token) (Token, error) {
	l.advance() // opening brace
	start := l.pos
	for {
		if l.pos >= len(l.src) {
			return tok, l.errorf("closing brace", "end of input")
		}
		if l.advance() == '}' {
			break
		}
	}
	tok.Type = CommentToken
	tok.Text = strings.TrimSpace(l.src[start : l.pos-1])
	return tok, nil
}

func (l *Lexer) lexNAG(tok Token) (Token, error) {
	start := l.pos
	l.advance() // dollar sign
	for l.pos < len(l.src) && l.peek() >= '0' && l.peek() <= '9' {
		l.advance()
	}
	if l.pos == start+1 {
		return tok, l.errorf("NAG digits", "'$' with no number")
	}
	tok.Type = NAGToken
	tok.Text = l.src[start:l.pos]
	return tok, nil
}

// lexNumber reads a move number ("1." / "3..."), a result marker that
// happens to start with a digit ("1-0", "0-1", "1/2-1/2"), or zero-style
// castling ("0-0", "0-0-0").
func (l *Lexer) lexNumber(tok Token) (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && l.peek() >= '0' && l.peek() <= '9' {
		l.advance()
	}
	if c := l.peek(); c == '-' || c == '/' {
		for l.pos < len(l.src) && !isDelimiter(l.peek()) {
			l.advance()
		}
		text := l.src[start:l.pos]
		switch text {
		case "1-0", "0-1", "1/2-1/2":
			tok.Type = ResultToken
			tok.Text = text
			return tok, nil
		}
		// Castling written with zeros instead of the letter O, possibly
		// with check or annotation suffixes.
		if t := strings.TrimRight(text, "+#!?"); t == "0-0" || t == "0-0-0" {
			tok.Type = MoveToken
			tok.Text = text
			return tok, nil
		}
		return tok, l.errorf("result marker", "'"+text+"'")
	}
	tok.Type = MoveNumberToken
	tok.Text = l.src[start:l.pos]
	for l.pos < len(l.src) && l.peek() == '.' {
		l.advance()
	}
	return tok, nil
}

// lexWord reads a SAN move or a bare symbol (tag names).
func (l *Lexer) lexWord(tok Token) (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && !isDelimiter(l.peek()) {
		l.advance()
	}
	if l.pos == start {
		return tok, l.errorf("token", "'"+string(l.peek())+"'")
	}
	tok.Type = MoveToken
	tok.Text = l.src[start:l.pos]
	return tok, nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '[', ']', '(', ')', '{', '}', '"', ';', 0:
		return true
	}
	return false
}
