// Package render draws a chess position as an SVG diagram.
package render

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"chesskit/internal/chess"
)

const (
	squareSize = 45
	boardSize  = 8 * squareSize

	lightFill = "fill:#f0d9b5"
	darkFill  = "fill:#b58863"
	markFill  = "fill:#aad751;fill-opacity:0.6"
)

// Unicode chess glyphs, indexed by colour and piece type.
var glyphs = [2][chess.NumPieceTypes]string{
	{"♙", "♘", "♗", "♖", "♕", "♔"}, // White
	{"♟", "♞", "♝", "♜", "♛", "♚"}, // Black
}

// Options control the rendered diagram.
type Options struct {
	// Flipped draws the board from Black's point of view.
	Flipped bool
	// Highlight marks squares, typically the last move's origin and
	// destination.
	Highlight []chess.Square
}

// Board writes an SVG diagram of the position to w.
func Board(w io.Writer, b *chess.Board, opts Options) {
	canvas := svg.New(w)
	canvas.Start(boardSize, boardSize)

	marked := make(map[chess.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		marked[sq] = true
	}

	for r := chess.Rank(0); r < 8; r++ {
		for f := chess.File(0); f < 8; f++ {
			sq := chess.NewSquare(f, r)
			x, y := squareOrigin(sq, opts.Flipped)

			fill := lightFill
			if sq.IsDark() {
				fill = darkFill
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)
			if marked[sq] {
				canvas.Rect(x, y, squareSize, squareSize, markFill)
			}

			if p := b.PieceAt(sq); p != chess.NoPiece {
				canvas.Text(x+squareSize/2, y+squareSize*3/4,
					glyphs[p.Color][p.Type],
					"font-size:34px;text-anchor:middle")
			}
		}
	}

	canvas.End()
}

// squareOrigin maps a square to the pixel origin of its cell, with rank 8
// at the top unless the board is flipped.
func squareOrigin(sq chess.Square, flipped bool) (int, int) {
	f, r := int(sq.File()), int(sq.Rank())
	if flipped {
		f = 7 - f
	} else {
		r = 7 - r
	}
	return f * squareSize, r * squareSize
}
