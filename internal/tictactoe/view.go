package tictactoe

import "github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"

type Square struct {
	Index   int         `json:"index"`
	Mark    entity.Mark `json:"mark"`
	Winning bool        `json:"winning"`
}

type MoveEntry struct {
	MoveDescription
	Current bool `json:"current"`
}

// View - is everything a page needs to draw the game, derived from the current state only.
type View struct {
	Rows        [][]Square  `json:"rows"`
	Status      string      `json:"status"`
	CurrentMove int         `json:"current_move"`
	Moves       []MoveEntry `json:"moves"`
	Descending  bool        `json:"descending"`
	Finished    bool        `json:"finished"`
}

func (that *GameController) View() *View {
	board := that.CurrentBoard()
	result := that.Result()

	rows := make([][]Square, entity.BoardSize)
	for row := range rows {
		rows[row] = make([]Square, entity.BoardSize)
		for col := range rows[row] {
			cell := row*entity.BoardSize + col
			rows[row][col] = Square{
				Index:   cell,
				Mark:    board[cell],
				Winning: result.InLine(cell),
			}
		}
	}

	descriptions := that.MoveDescriptions()
	moves := make([]MoveEntry, len(descriptions))
	for i, description := range descriptions {
		moves[i] = MoveEntry{
			MoveDescription: description,
			Current:         description.Move == that.game.CurrentMove,
		}
	}

	return &View{
		Rows:        rows,
		Status:      that.Status(),
		CurrentMove: that.game.CurrentMove,
		Moves:       moves,
		Descending:  that.game.Descending,
		Finished:    result.IsFinished(),
	}
}
