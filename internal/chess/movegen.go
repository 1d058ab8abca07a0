package chess

// PseudoLegalMoves enumerates the moves of the side to move without
// verifying that the mover's king is left safe. Castling is only emitted
// when the rights flag is set, the squares between king and rook are empty
// and the king's path is not attacked.
func (b *Board) PseudoLegalMoves() MoveList {
	moves := make(MoveList, 0, 48)
	b.pawnMoves(&moves)
	b.stepperMoves(Knight, &moves)
	b.sliderMoves(Bishop, &moves)
	b.sliderMoves(Rook, &moves)
	b.sliderMoves(Queen, &moves)
	b.stepperMoves(King, &moves)
	b.castleMoves(&moves)
	return moves
}

// LegalMoves returns the full legal move set of the side to move as a sized
// list. Each pseudo-legal move is simulated and kept only if the mover's
// own king is not attacked afterwards.
func (b *Board) LegalMoves() MoveList {
	pseudo := b.PseudoLegalMoves()
	legal := make(MoveList, 0, len(pseudo))
	us := b.turn
	them := us.Other()
	for _, mv := range pseudo {
		u := b.doMove(mv)
		if !b.Attacked(b.KingSquare(us), them) {
			legal = append(legal, mv)
		}
		b.undoMove(u)
	}
	return legal
}

// LegalMovesFrom returns the legal moves originating on sq.
func (b *Board) LegalMovesFrom(sq Square) MoveList {
	return b.LegalMoves().From(sq)
}

// IsLegal reports whether mv, matched by origin, destination and promotion,
// is in the current legal move set.
func (b *Board) IsLegal(mv Move) bool {
	_, ok := b.LegalMoves().Find(mv.From, mv.To, mv.Promo)
	return ok
}

// Attacked reports whether sq is attacked by any piece of colour by.
func (b *Board) Attacked(sq Square, by Color) bool {
	if pawnCaptures[by.Other()][sq]&b.pieces[by][Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&b.pieces[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&b.pieces[by][King] != 0 {
		return true
	}
	occ := b.AllOccupied()
	if BishopAttacks(sq, occ)&(b.pieces[by][Bishop]|b.pieces[by][Queen]) != 0 {
		return true
	}
	if RookAttacks(sq, occ)&(b.pieces[by][Rook]|b.pieces[by][Queen]) != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move's king is attacked.
func (b *Board) InCheck() bool {
	return b.Attacked(b.KingSquare(b.turn), b.turn.Other())
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck() && len(b.LegalMoves()) == 0
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck() && len(b.LegalMoves()) == 0
}

func (b *Board) pawnMoves(moves *MoveList) {
	us := b.turn
	them := us.Other()
	all := b.AllOccupied()
	enemy := b.occupied[them]

	var push int8 = 8
	startRank, promoRank := Rank(1), Rank(7)
	if us == Black {
		push = -8
		startRank, promoRank = 6, 0
	}

	pawns := b.pieces[us][Pawn]
	for pawns != 0 {
		from := pawns.Pop()

		single := from + Square(push)
		if !all.Has(single) {
			appendPawnMove(moves, from, single, 0, promoRank)
			if from.Rank() == startRank {
				double := single + Square(push)
				if !all.Has(double) {
					*moves = append(*moves, Move{From: from, To: double, Promo: NoPieceType, Tags: DoublePawnPush})
				}
			}
		}

		caps := pawnCaptures[us][from]
		targets := caps & enemy
		for targets != 0 {
			to := targets.Pop()
			appendPawnMove(moves, from, to, Capture, promoRank)
		}
		if b.ep != NoSquare && caps.Has(b.ep) {
			*moves = append(*moves, Move{From: from, To: b.ep, Promo: NoPieceType, Tags: Capture | EnPassantCapture})
		}
	}
}

// appendPawnMove emits a pawn push or capture, fanning out into the four
// promotions on the last rank.
func appendPawnMove(moves *MoveList, from, to Square, tags MoveTag, promoRank Rank) {
	if to.Rank() == promoRank {
		for _, pt := range PromotionTypes {
			*moves = append(*moves, Move{From: from, To: to, Promo: pt, Tags: tags})
		}
		return
	}
	*moves = append(*moves, Move{From: from, To: to, Promo: NoPieceType, Tags: tags})
}

// stepperMoves generates knight and king moves from the precomputed tables.
func (b *Board) stepperMoves(pt PieceType, moves *MoveList) {
	us := b.turn
	own := b.occupied[us]
	enemy := b.occupied[us.Other()]

	pieces := b.pieces[us][pt]
	for pieces != 0 {
		from := pieces.Pop()
		var targets Bitboard
		if pt == Knight {
			targets = knightAttacks[from]
		} else {
			targets = kingAttacks[from]
		}
		targets &^= own
		for targets != 0 {
			to := targets.Pop()
			var tags MoveTag
			if enemy.Has(to) {
				tags = Capture
			}
			*moves = append(*moves, Move{From: from, To: to, Promo: NoPieceType, Tags: tags})
		}
	}
}

// sliderMoves generates bishop, rook and queen moves from the ray tables.
func (b *Board) sliderMoves(pt PieceType, moves *MoveList) {
	us := b.turn
	own := b.occupied[us]
	enemy := b.occupied[us.Other()]
	occ := b.AllOccupied()

	pieces := b.pieces[us][pt]
	for pieces != 0 {
		from := pieces.Pop()
		var targets Bitboard
		switch pt {
		case Bishop:
			targets = BishopAttacks(from, occ)
		case Rook:
			targets = RookAttacks(from, occ)
		default:
			targets = QueenAttacks(from, occ)
		}
		targets &^= own
		for targets != 0 {
			to := targets.Pop()
			var tags MoveTag
			if enemy.Has(to) {
				tags = Capture
			}
			*moves = append(*moves, Move{From: from, To: to, Promo: NoPieceType, Tags: tags})
		}
	}
}

func (b *Board) castleMoves(moves *MoveList) {
	us := b.turn
	them := us.Other()
	all := b.AllOccupied()

	var shift Square
	kingSide, queenSide := WhiteKingSide, WhiteQueenSide
	if us == Black {
		shift = 56
		kingSide, queenSide = BlackKingSide, BlackQueenSide
	}

	if b.rights.Has(kingSide) &&
		all&(SquareBB(F1+shift)|SquareBB(G1+shift)) == 0 &&
		!b.Attacked(E1+shift, them) &&
		!b.Attacked(F1+shift, them) &&
		!b.Attacked(G1+shift, them) {
		*moves = append(*moves, Move{From: E1 + shift, To: G1 + shift, Promo: NoPieceType, Tags: KingSideCastle})
	}
	if b.rights.Has(queenSide) &&
		all&(SquareBB(B1+shift)|SquareBB(C1+shift)|SquareBB(D1+shift)) == 0 &&
		!b.Attacked(E1+shift, them) &&
		!b.Attacked(D1+shift, them) &&
		!b.Attacked(C1+shift, them) {
		*moves = append(*moves, Move{From: E1 + shift, To: C1 + shift, Promo: NoPieceType, Tags: QueenSideCastle})
	}
}
