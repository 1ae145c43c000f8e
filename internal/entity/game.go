package entity

import (
	"errors"
	"fmt"
)

var ErrCorruptedGame = errors.New("corrupted game state")

// Game - is the stored state of one session: the move timeline, the selected move and the list order.
type Game struct {
	ID          string       `json:"id"`
	History     []Board      `json:"history"`
	CurrentMove int          `json:"current_move"`
	Coordinates []Coordinate `json:"coordinates"`
	Descending  bool         `json:"descending"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		History:     []Board{{}},
		CurrentMove: 0,
		Coordinates: []Coordinate{},
	}
}

// Validate - checks the invariants a game read from storage must hold.
func (that *Game) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", ErrCorruptedGame)
	}

	if len(that.Coordinates) != len(that.History)-1 {
		return fmt.Errorf("%w: %d coordinates for %d boards", ErrCorruptedGame, len(that.Coordinates), len(that.History))
	}

	if that.CurrentMove < 0 || that.CurrentMove >= len(that.History) {
		return fmt.Errorf("%w: current move %d out of range", ErrCorruptedGame, that.CurrentMove)
	}

	for i, coordinate := range that.Coordinates {
		if coordinate.Col < 1 || coordinate.Col > BoardSize || coordinate.Row < 1 || coordinate.Row > BoardSize {
			return fmt.Errorf("%w: move %d has coordinate %+v", ErrCorruptedGame, i+1, coordinate)
		}
	}

	return nil
}

// Clone - returns a deep copy so that stored history is never shared.
func (that *Game) Clone() *Game {
	clone := *that
	clone.History = append([]Board(nil), that.History...)
	clone.Coordinates = append([]Coordinate{}, that.Coordinates...)

	return &clone
}
