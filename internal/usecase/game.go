package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

// GameUseCase - runs one game operation per call for the given session.
type GameUseCase struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// one event at a time: load, apply and store never interleave
	mu sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo) *GameUseCase {
	return &GameUseCase{
		logger:   logger.With("component", "game-usecase"),
		gameRepo: gameRepo,
	}
}

func (that *GameUseCase) GetGame(ctx context.Context, sessionID string) (*tictactoe.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewGameController(game).View(), nil
}

func (that *GameUseCase) Play(ctx context.Context, sessionID string, cell int) (*tictactoe.View, error) {
	return that.apply(ctx, sessionID, "Play", func(controller *tictactoe.GameController) error {
		return controller.Play(cell)
	})
}

func (that *GameUseCase) JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.View, error) {
	return that.apply(ctx, sessionID, "JumpTo", func(controller *tictactoe.GameController) error {
		return controller.JumpTo(move)
	})
}

func (that *GameUseCase) ToggleOrder(ctx context.Context, sessionID string) (*tictactoe.View, error) {
	return that.apply(ctx, sessionID, "ToggleOrder", func(controller *tictactoe.GameController) error {
		controller.ToggleOrder()
		return nil
	})
}

// apply - a rejected operation is not an error for the caller, the unchanged game is returned and nothing is stored.
func (that *GameUseCase) apply(
	ctx context.Context,
	sessionID, method string,
	operation func(controller *tictactoe.GameController) error,
) (*tictactoe.View, error) {
	log := that.logger.With("method", method, "session", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	controller := tictactoe.NewGameController(game)

	if err = operation(controller); err != nil {
		log.Debug("operation ignored", "error", err)
		return controller.View(), nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return controller.View(), nil
}

func (that *GameUseCase) getOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game = entity.NewGame(sessionID)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "session", sessionID)

	return game, nil
}
