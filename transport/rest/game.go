package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	sessionName  = "session"
	sessionIDKey = "id"
)

// operation - runs one game action for the session and returns the resulting view.
type operation func(ctx echo.Context, sessionID string) (*tictactoe.View, error)

type gameHandler struct {
	logger *slog.Logger
	game   gameUseCase
}

func newGameHandler(logger *slog.Logger, game gameUseCase) *gameHandler {
	return &gameHandler{
		logger: logger,
		game:   game,
	}
}

func (that *gameHandler) getGame(ctx echo.Context, sessionID string) (*tictactoe.View, error) {
	return that.game.GetGame(ctx.Request().Context(), sessionID)
}

func (that *gameHandler) play(ctx echo.Context, sessionID string) (*tictactoe.View, error) {
	cell, err := intParam(ctx, "cell")
	if err != nil {
		return nil, err
	}

	return that.game.Play(ctx.Request().Context(), sessionID, cell)
}

func (that *gameHandler) jumpTo(ctx echo.Context, sessionID string) (*tictactoe.View, error) {
	move, err := intParam(ctx, "move")
	if err != nil {
		return nil, err
	}

	return that.game.JumpTo(ctx.Request().Context(), sessionID, move)
}

func (that *gameHandler) toggleOrder(ctx echo.Context, sessionID string) (*tictactoe.View, error) {
	return that.game.ToggleOrder(ctx.Request().Context(), sessionID)
}

// page - renders the game page.
func (that *gameHandler) page(method string, op operation) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		view, err := that.run(ctx, method, op)
		if err != nil {
			return err
		}

		return ctx.Render(http.StatusOK, "index.html", view)
	}
}

// redirect - answers a form post with a redirect back to the page.
func (that *gameHandler) redirect(method string, op operation) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, err := that.run(ctx, method, op); err != nil {
			return err
		}

		return ctx.Redirect(http.StatusSeeOther, "/")
	}
}

func (that *gameHandler) json(method string, op operation) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		view, err := that.run(ctx, method, op)
		if err != nil {
			return err
		}

		return ctx.JSON(http.StatusOK, view)
	}
}

func (that *gameHandler) run(ctx echo.Context, method string, op operation) (*tictactoe.View, error) {
	sessionID, err := that.sessionID(ctx)
	if err != nil {
		return nil, that.internalError(method, err)
	}

	view, err := op(ctx, sessionID)

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return nil, httpErr
	case err != nil:
		return nil, that.internalError(method, err)
	}

	return view, nil
}

// sessionID - returns the id stored in the browser session cookie, a new one is issued on the first visit.
func (that *gameHandler) sessionID(ctx echo.Context) (string, error) {
	userSession, err := session.Get(sessionName, ctx)
	if userSession == nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}

	// an undecodable cookie, for example after a secret rotation, starts a new session
	if err != nil {
		that.logger.Debug("discarding session cookie", "error", err)
	}

	if id, ok := userSession.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	userSession.Values[sessionIDKey] = id
	userSession.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if err = userSession.Save(ctx.Request(), ctx.Response()); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	return id, nil
}

func (that *gameHandler) internalError(method string, err error) error {
	that.logger.Error("game operation failed", "method", method, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error").SetInternal(err)
}

func intParam(ctx echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}

	return value, nil
}
