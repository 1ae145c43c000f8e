package tictactoe

import (
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// GameController - mediates every change of a game's timeline.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{game: game}
}

// Play - places the next mark at cell. Returns an error and leaves the game untouched when the move is not allowed.
func (that *GameController) Play(cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	board := that.CurrentBoard()

	if entity.DetermineGameResult(board).IsFinished() {
		return apperror.ErrGameFinished
	}

	if board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	next := board.WithMark(cell, that.NextMark())
	current := that.game.CurrentMove

	// drop the future of the selected move, fresh slices keep old snapshots untouched
	history := make([]entity.Board, current+1, current+2)
	copy(history, that.game.History[:current+1])

	coordinates := make([]entity.Coordinate, current, current+1)
	copy(coordinates, that.game.Coordinates[:current])

	that.game.History = append(history, next)
	that.game.Coordinates = append(coordinates, entity.CoordinateOf(cell))
	that.game.CurrentMove = len(that.game.History) - 1

	return nil
}

// JumpTo - selects a move from the history without changing it.
func (that *GameController) JumpTo(move int) error {
	if move < 0 || move >= len(that.game.History) {
		return fmt.Errorf("%w: move %d", apperror.ErrInvalidMove, move)
	}

	that.game.CurrentMove = move

	return nil
}

func (that *GameController) ToggleOrder() {
	that.game.Descending = !that.game.Descending
}

func (that *GameController) CurrentBoard() entity.Board {
	return that.game.History[that.game.CurrentMove]
}

func (that *GameController) CurrentMove() int {
	return that.game.CurrentMove
}

func (that *GameController) IsXNext() bool {
	return that.game.CurrentMove%2 == 0
}

func (that *GameController) NextMark() entity.Mark {
	if that.IsXNext() {
		return entity.PlayerX
	}
	return entity.PlayerO
}

func (that *GameController) Result() entity.Result {
	return entity.DetermineGameResult(that.CurrentBoard())
}

func (that *GameController) Status() string {
	switch result := that.Result(); {
	case result.IsWin():
		return "Winner: " + string(result.Winner)
	case result.IsDraw():
		return "Draw!"
	default:
		return "Next player: " + string(that.NextMark())
	}
}

func (that *GameController) WinningCells() []int {
	return that.Result().Line
}

// MoveDescription - is one entry of the move list.
type MoveDescription struct {
	Move        int    `json:"move"`
	Description string `json:"description"`
}

// MoveDescriptions - describes every history entry in the selected display order.
func (that *GameController) MoveDescriptions() []MoveDescription {
	moves := make([]MoveDescription, 0, len(that.game.History))

	for move := range that.game.History {
		moves = append(moves, MoveDescription{
			Move:        move,
			Description: that.describe(move),
		})
	}

	if that.game.Descending {
		for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
			moves[i], moves[j] = moves[j], moves[i]
		}
	}

	return moves
}

func (that *GameController) describe(move int) string {
	if move == 0 {
		return "Go to game start"
	}

	coordinate := that.game.Coordinates[move-1]

	return "Go to move #" + strconv.Itoa(move) +
		" Col: " + strconv.Itoa(coordinate.Col) +
		" Row: " + strconv.Itoa(coordinate.Row)
}
