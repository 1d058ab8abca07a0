package chess

// Perft counts the leaf positions reachable from b by exhaustive legal-move
// enumeration to the given depth. It is the standard validation harness for
// move generation: the start position yields 20, 400, 8902, ... nodes for
// depths 1, 2, 3, ...
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, mv := range moves {
		u := b.doMove(mv)
		nodes += Perft(b, depth-1)
		b.undoMove(u)
	}
	return nodes
}

// PerftDivide returns the perft node count behind each root move, keyed by
// the move's long algebraic notation. Useful when hunting down a move
// generation discrepancy.
func PerftDivide(b *Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, mv := range b.LegalMoves() {
		u := b.doMove(mv)
		out[mv.String()] = Perft(b, depth-1)
		b.undoMove(u)
	}
	return out
}
