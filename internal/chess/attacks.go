package chess

// Precomputed attack tables. They are filled once at package init and are
// read-only afterwards, so they can be shared across any number of Boards
// without synchronisation.

type direction int

const (
	north direction = iota
	northEast
	east
	southEast
	south
	southWest
	west
	northWest
	numDirections
)

// File/rank steps for each direction.
var directionSteps = [numDirections][2]int8{
	north:     {0, 1},
	northEast: {1, 1},
	east:      {1, 0},
	southEast: {1, -1},
	south:     {0, -1},
	southWest: {-1, -1},
	west:      {-1, 0},
	northWest: {-1, 1},
}

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnCaptures  [2][64]Bitboard // [Color][Square]

	rayAttacks [numDirections][64]Bitboard
)

func init() {
	initRays()
	initKnightAttacks()
	initKingAttacks()
	initPawnCaptures()
}

func initRays() {
	for sq := A1; sq <= H8; sq++ {
		for dir := north; dir < numDirections; dir++ {
			step := directionSteps[dir]
			f, r := int8(sq.File())+step[0], int8(sq.Rank())+step[1]
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				rayAttacks[dir][sq] |= SquareBB(NewSquare(File(f), Rank(r)))
				f += step[0]
				r += step[1]
			}
		}
	}
}

func initKnightAttacks() {
	jumps := [8][2]int8{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	for sq := A1; sq <= H8; sq++ {
		for _, j := range jumps {
			f, r := int8(sq.File())+j[0], int8(sq.Rank())+j[1]
			if f >= 0 && f < 8 && r >= 0 && r < 8 {
				knightAttacks[sq] |= SquareBB(NewSquare(File(f), Rank(r)))
			}
		}
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		for dir := north; dir < numDirections; dir++ {
			step := directionSteps[dir]
			f, r := int8(sq.File())+step[0], int8(sq.Rank())+step[1]
			if f >= 0 && f < 8 && r >= 0 && r < 8 {
				kingAttacks[sq] |= SquareBB(NewSquare(File(f), Rank(r)))
			}
		}
	}
}

func initPawnCaptures() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnCaptures[White][sq] = (bb << 9 &^ FileABB) | (bb << 7 &^ FileHBB)
		pawnCaptures[Black][sq] = (bb >> 7 &^ FileABB) | (bb >> 9 &^ FileHBB)
	}
}

// rayAttack returns the attack set along one ray from sq, stopping at (and
// including) the first blocker in occ.
func rayAttack(dir direction, sq Square, occ Bitboard) Bitboard {
	attacks := rayAttacks[dir][sq]
	blockers := attacks & occ
	if blockers != 0 {
		var first Square
		if dir <= east || dir == northWest { // positive directions
			first = blockers.First()
		} else {
			first = blockers.Last()
		}
		attacks ^= rayAttacks[dir][first]
	}
	return attacks
}

// BishopAttacks returns the squares a bishop on sq attacks given the
// occupancy occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return rayAttack(northEast, sq, occ) |
		rayAttack(southEast, sq, occ) |
		rayAttack(southWest, sq, occ) |
		rayAttack(northWest, sq, occ)
}

// RookAttacks returns the squares a rook on sq attacks given the
// occupancy occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return rayAttack(north, sq, occ) |
		rayAttack(east, sq, occ) |
		rayAttack(south, sq, occ) |
		rayAttack(west, sq, occ)
}

// QueenAttacks returns the squares a queen on sq attacks given the
// occupancy occ.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnCaptures returns the squares a pawn of the given colour on sq attacks.
func PawnCaptures(c Color, sq Square) Bitboard {
	return pawnCaptures[c][sq]
}
