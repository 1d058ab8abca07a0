package pgn

import (
	"fmt"
	"strings"

	"chesskit/internal/chess"
	"chesskit/internal/errors"
)

// ResolveSAN resolves a SAN token against the legal move set of the board.
// Check, mate and annotation suffixes are accepted but ignored; resolution
// succeeds purely by legality match. A token matching no legal move fails
// with ErrIllegalSAN, one matching several with ErrAmbiguousSAN.
func ResolveSAN(b *chess.Board, san string) (chess.Move, error) {
	stripped := strings.TrimRight(san, "+#!?")
	if stripped == "" {
		return chess.Move{}, fmt.Errorf("%q: %w", san, errors.ErrIllegalSAN)
	}

	legal := b.LegalMoves()

	if side, ok := castleSide(stripped); ok {
		for _, mv := range legal {
			if mv.HasTag(side) {
				return mv, nil
			}
		}
		return chess.Move{}, fmt.Errorf("%q: %w", san, errors.ErrIllegalSAN)
	}

	tok, err := splitSAN(stripped)
	if err != nil {
		return chess.Move{}, fmt.Errorf("%q: %w", san, err)
	}

	var matches chess.MoveList
	for _, mv := range legal {
		if mv.To != tok.dest || mv.Promo != tok.promo {
			continue
		}
		if b.PieceAt(mv.From).Type != tok.piece {
			continue
		}
		if tok.fromFile >= 0 && mv.From.File() != chess.File(tok.fromFile) {
			continue
		}
		if tok.fromRank >= 0 && mv.From.Rank() != chess.Rank(tok.fromRank) {
			continue
		}
		// A pawn move without an origin file is a push on the
		// destination file.
		if tok.piece == chess.Pawn && tok.fromFile < 0 && mv.From.File() != tok.dest.File() {
			continue
		}
		matches = append(matches, mv)
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return chess.Move{}, fmt.Errorf("%q: %w", san, errors.ErrIllegalSAN)
	default:
		return chess.Move{}, fmt.Errorf("%q: %w", san, errors.ErrAmbiguousSAN)
	}
}

func castleSide(s string) (chess.MoveTag, bool) {
	switch s {
	case "O-O", "0-0":
		return chess.KingSideCastle, true
	case "O-O-O", "0-0-0":
		return chess.QueenSideCastle, true
	}
	return 0, false
}

// sanParts is a SAN token split into its components. fromFile and fromRank
// are -1 when no disambiguation was given.
type sanParts struct {
	piece    chess.PieceType
	fromFile int8
	fromRank int8
	dest     chess.Square
	promo    chess.PieceType
}

// splitSAN dissects a SAN token (suffixes already stripped) from the end:
// promotion, destination, capture marker, then piece letter and
// disambiguation from the front.
func splitSAN(s string) (sanParts, error) {
	tok := sanParts{piece: chess.Pawn, fromFile: -1, fromRank: -1, promo: chess.NoPieceType}

	if pt := chess.PieceTypeFromLetter(s[len(s)-1]); pt.CanBePromotion() {
		tok.promo = pt
		s = s[:len(s)-1]
		s = strings.TrimSuffix(s, "=")
	}

	if len(s) < 2 {
		return tok, errors.ErrIllegalSAN
	}
	dest, ok := chess.SquareFromString(s[len(s)-2:])
	if !ok {
		return tok, errors.ErrIllegalSAN
	}
	tok.dest = dest
	s = s[:len(s)-2]

	if strings.HasSuffix(s, "x") || strings.HasSuffix(s, ":") {
		s = s[:len(s)-1]
	}

	if len(s) > 0 {
		if pt := chess.PieceTypeFromLetter(s[0]); pt != chess.NoPieceType && pt != chess.Pawn {
			tok.piece = pt
			s = s[1:]
		}
	}

	// What remains is the disambiguation: a file, a rank, or both.
	for i := 0; i < len(s); i++ {
		if f, ok := chess.FileFromChar(s[i]); ok && tok.fromFile < 0 {
			tok.fromFile = int8(f)
		} else if r, ok := chess.RankFromChar(s[i]); ok && tok.fromRank < 0 {
			tok.fromRank = int8(r)
		} else {
			return tok, errors.ErrIllegalSAN
		}
	}
	return tok, nil
}

// RenderSAN produces the minimal SAN string for a legal move on the given
// board, including the check or mate suffix.
func RenderSAN(b *chess.Board, mv chess.Move) (string, error) {
	legal := b.LegalMoves()
	canonical, ok := legal.Find(mv.From, mv.To, mv.Promo)
	if !ok {
		return "", fmt.Errorf("%s: %w", mv, errors.ErrIllegalMove)
	}
	mv = canonical

	var sb strings.Builder
	switch {
	case mv.HasTag(chess.KingSideCastle):
		sb.WriteString("O-O")
	case mv.HasTag(chess.QueenSideCastle):
		sb.WriteString("O-O-O")
	default:
		piece := b.PieceAt(mv.From).Type
		if piece == chess.Pawn {
			if mv.IsCapture() {
				sb.WriteByte(mv.From.File().Char())
			}
		} else {
			sb.WriteByte(piece.Letter())
			sb.WriteString(disambiguate(b, legal, mv, piece))
		}
		if mv.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(mv.To.String())
		if mv.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(mv.Promo.Letter())
		}
	}

	sb.WriteString(checkSuffix(b, mv))
	return sb.String(), nil
}

// disambiguate returns the minimal origin qualifier: nothing when the move
// is unique, the file when it separates the candidates, the rank when the
// file does not, and both as a last resort.
func disambiguate(b *chess.Board, legal chess.MoveList, mv chess.Move, piece chess.PieceType) string {
	var sameFile, sameRank, others bool
	for _, other := range legal {
		if other == mv || other.To != mv.To || other.From == mv.From {
			continue
		}
		if b.PieceAt(other.From).Type != piece {
			continue
		}
		others = true
		if other.From.File() == mv.From.File() {
			sameFile = true
		}
		if other.From.Rank() == mv.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !others:
		return ""
	case !sameFile:
		return string(mv.From.File().Char())
	case !sameRank:
		return string(mv.From.Rank().Char())
	default:
		return mv.From.String()
	}
}

func checkSuffix(b *chess.Board, mv chess.Move) string {
	next := *b
	if _, err := next.MakeMove(mv); err != nil {
		return ""
	}
	if next.InCheckmate() {
		return "#"
	}
	if next.InCheck() {
		return "+"
	}
	return ""
}
