// Package pgn provides PGN lexing, parsing and writing, and the SAN move
// codec used inside the movetext.
package pgn

// TokenType represents the type of a lexical token.
type TokenType int

const (
	EOFToken TokenType = iota
	TagStart
	TagEnd
	StringToken
	CommentToken
	NAGToken
	MoveNumberToken
	RAVStart
	RAVEnd
	MoveToken
	ResultToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:        "EOF",
	TagStart:        "TAG_START",
	TagEnd:          "TAG_END",
	StringToken:     "STRING",
	CommentToken:    "COMMENT",
	NAGToken:        "NAG",
	MoveNumberToken: "MOVE_NUMBER",
	RAVStart:        "RAV_START",
	RAVEnd:          "RAV_END",
	MoveToken:       "MOVE",
	ResultToken:     "RESULT",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token is a lexical token with its position in the input.
type Token struct {
	Type TokenType
	Text string
	Line int // 1-based
	Col  int // 1-based
}
