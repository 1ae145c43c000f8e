package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func newTestUseCase() (*GameUseCase, repository.GameRepository) {
	gameRepo := repository.NewMemoryGameRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGameUseCase(logger, gameRepo), gameRepo
}

func TestGameUseCase_GetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a game for a new session", func(t *testing.T) {
		// Given: an empty repository
		useCaseInstance, gameRepo := newTestUseCase()

		// When: the session asks for its game
		view, err := useCaseInstance.GetGame(ctx, "session-1")

		// Then: a fresh game is returned and stored
		require.NoError(t, err)
		assert.Equal(t, "Next player: X", view.Status)
		assert.Equal(t, 0, view.CurrentMove)
		require.Len(t, view.Moves, 1)
		assert.Equal(t, "Go to game start", view.Moves[0].Description)

		stored, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("session-1"), stored)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		// Given: a repository that cannot be reached
		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "session-1").
			Return((*entity.Game)(nil), errRedisDown).
			Once()
		useCaseInstance := NewGameUseCase(slog.New(slog.NewTextHandler(io.Discard, nil)), gameRepo)

		// When: the session asks for its game
		view, err := useCaseInstance.GetGame(ctx, "session-1")

		// Then: the error is propagated
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, view)
		gameRepo.AssertExpectations(t)
	})
}

func TestGameUseCase_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the move", func(t *testing.T) {
		// Given: a new session
		useCaseInstance, gameRepo := newTestUseCase()

		// When: X plays the center
		view, err := useCaseInstance.Play(ctx, "session-1", 4)

		// Then: the view and the stored game reflect the move
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, view.Rows[1][1].Mark)
		assert.Equal(t, "Next player: O", view.Status)

		stored, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Len(t, stored.History, 2)
		assert.Equal(t, []entity.Coordinate{{Col: 2, Row: 2}}, stored.Coordinates)
	})

	t.Run("Sessions do not share games", func(t *testing.T) {
		// Given: two sessions
		useCaseInstance, _ := newTestUseCase()

		// When: only the first one plays
		_, err := useCaseInstance.Play(ctx, "session-1", 0)
		require.NoError(t, err)
		view, err := useCaseInstance.GetGame(ctx, "session-2")

		// Then: the second one still sees an empty board
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, view.Rows[0][0].Mark)
	})

	t.Run("Occupied cell is a silent no-op", func(t *testing.T) {
		// Given: a session where cell 0 is taken
		useCaseInstance, gameRepo := newTestUseCase()
		_, err := useCaseInstance.Play(ctx, "session-1", 0)
		require.NoError(t, err)
		before, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)

		// When: the same cell is clicked again
		view, err := useCaseInstance.Play(ctx, "session-1", 0)

		// Then: no error and nothing changed
		require.NoError(t, err)
		assert.Equal(t, 1, view.CurrentMove)
		after, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Finished game ignores clicks", func(t *testing.T) {
		// Given: X has won in the first column
		useCaseInstance, _ := newTestUseCase()
		for _, cell := range []int{0, 1, 3, 4, 6} {
			_, err := useCaseInstance.Play(ctx, "session-1", cell)
			require.NoError(t, err)
		}

		// When: another cell is clicked
		view, err := useCaseInstance.Play(ctx, "session-1", 8)

		// Then: the game stays won
		require.NoError(t, err)
		assert.Equal(t, "Winner: X", view.Status)
		assert.True(t, view.Finished)
		assert.Equal(t, 5, view.CurrentMove)
		assert.True(t, view.Rows[2][0].Winning)
	})

	t.Run("Returns error if the move cannot be stored", func(t *testing.T) {
		// Given: a repository that fails on write
		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "session-1").
			Return(entity.NewGame("session-1"), nil).
			Once()
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(errRedisDown).
			Once()
		useCaseInstance := NewGameUseCase(slog.New(slog.NewTextHandler(io.Discard, nil)), gameRepo)

		// When: a move is played
		view, err := useCaseInstance.Play(ctx, "session-1", 0)

		// Then: the error is propagated
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, view)
		gameRepo.AssertExpectations(t)
	})

	t.Run("Rejected moves never reach the repository", func(t *testing.T) {
		// Given: a repository that only expects a read
		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "session-1").
			Return(entity.NewGame("session-1"), nil).
			Once()
		useCaseInstance := NewGameUseCase(slog.New(slog.NewTextHandler(io.Discard, nil)), gameRepo)

		// When: an invalid cell is played
		view, err := useCaseInstance.Play(ctx, "session-1", 42)

		// Then: the unchanged view is returned without a write
		require.NoError(t, err)
		assert.Equal(t, 0, view.CurrentMove)
		gameRepo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
		gameRepo.AssertExpectations(t)
	})
}

func TestGameUseCase_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Jumping back and playing truncates the history", func(t *testing.T) {
		// Given: three moves
		useCaseInstance, gameRepo := newTestUseCase()
		for _, cell := range []int{0, 4, 8} {
			_, err := useCaseInstance.Play(ctx, "session-1", cell)
			require.NoError(t, err)
		}

		// When: jumping to move 1 and playing a new move
		view, err := useCaseInstance.JumpTo(ctx, "session-1", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, view.CurrentMove)
		assert.Len(t, view.Moves, 4)

		view, err = useCaseInstance.Play(ctx, "session-1", 2)
		require.NoError(t, err)

		// Then: the original move 2 is gone
		assert.Len(t, view.Moves, 3)
		assert.Equal(t, "Go to move #2 Col: 3 Row: 1", view.Moves[2].Description)

		stored, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Len(t, stored.History, 3)
	})

	t.Run("Out of range is a silent no-op", func(t *testing.T) {
		// Given: a new session
		useCaseInstance, _ := newTestUseCase()

		// When: jumping past the history
		view, err := useCaseInstance.JumpTo(ctx, "session-1", 3)

		// Then: the start is still selected
		require.NoError(t, err)
		assert.Equal(t, 0, view.CurrentMove)
	})
}

func TestGameUseCase_ToggleOrder(t *testing.T) {
	ctx := context.Background()

	// Given: a session with two moves
	useCaseInstance, _ := newTestUseCase()
	for _, cell := range []int{0, 4} {
		_, err := useCaseInstance.Play(ctx, "session-1", cell)
		require.NoError(t, err)
	}

	// When: toggling the order
	view, err := useCaseInstance.ToggleOrder(ctx, "session-1")

	// Then: the list is descending and the preference is kept
	require.NoError(t, err)
	assert.True(t, view.Descending)
	assert.Equal(t, 2, view.Moves[0].Move)
	assert.Equal(t, "Next player: X", view.Status)

	view, err = useCaseInstance.GetGame(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, view.Descending)
}
