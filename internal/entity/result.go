package entity

const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeWin     Outcome = "win"
	OutcomeDraw    Outcome = "draw"
)

// WinCombos - rows first, then columns, then diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Outcome string

type Result struct {
	Outcome Outcome `json:"outcome"`
	Winner  Mark    `json:"winner,omitempty"`
	Line    []int   `json:"line,omitempty"`
}

// DetermineGameResult - evaluates a board. The first winning combo wins, a full board without one is a draw.
func DetermineGameResult(board Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{
				Outcome: OutcomeWin,
				Winner:  a,
				Line:    []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	if board.IsFull() {
		return Result{Outcome: OutcomeDraw}
	}

	return Result{Outcome: OutcomeOngoing}
}

func (that Result) IsWin() bool {
	return that.Outcome == OutcomeWin
}

func (that Result) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

func (that Result) IsFinished() bool {
	return that.IsWin() || that.IsDraw()
}

// InLine - reports whether the cell belongs to the winning combo.
func (that Result) InLine(cell int) bool {
	for _, c := range that.Line {
		if c == cell {
			return true
		}
	}

	return false
}
