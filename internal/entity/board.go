package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// Mark - is the content of a single cell.
type Mark string

// Board - is one immutable snapshot of the grid, row-major.
type Board [CellCount]Mark

// Coordinate - is the 1-based column and row of a cell.
type Coordinate struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < CellCount
}

// CoordinateOf - converts a cell index into its column and row.
func CoordinateOf(cell int) Coordinate {
	return Coordinate{
		Col: cell%BoardSize + 1,
		Row: cell/BoardSize + 1,
	}
}

// WithMark - returns a copy of the board with the mark set at cell, the receiver is left untouched.
func (that Board) WithMark(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}
