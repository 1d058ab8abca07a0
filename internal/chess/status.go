package chess

// HasInsufficientMaterial reports whether neither side can possibly deliver
// checkmate. The drawn combinations are king versus king, king and one
// minor piece versus king, and king and bishop versus king and bishop with
// both bishops on squares of the same colour. Any pawn, rook, queen or
// second minor piece rules the draw out.
func (b *Board) HasInsufficientMaterial() bool {
	switch b.AllOccupied().Count() {
	case 2:
		return true
	case 3:
		minors := b.pieces[White][Knight] | b.pieces[White][Bishop] |
			b.pieces[Black][Knight] | b.pieces[Black][Bishop]
		return minors.Count() == 1
	case 4:
		wb := b.pieces[White][Bishop]
		bb := b.pieces[Black][Bishop]
		return wb.Count() == 1 && bb.Count() == 1 &&
			wb.First().IsDark() == bb.First().IsDark()
	default:
		return false
	}
}
