package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context, sessionID string) (*tictactoe.View, error)
	Play(ctx context.Context, sessionID string, cell int) (*tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.View, error)
	ToggleOrder(ctx context.Context, sessionID string) (*tictactoe.View, error)
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

func New(logger *slog.Logger, sessionSecret string, game gameUseCase) (*Server, error) {
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	log := logger.With("component", "rest")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.Recover())
	e.Use(requestLogger(log))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	ping := NewPingHandler()
	e.GET("/ping", ping.PingHandler)

	handler := newGameHandler(log, game)

	e.GET("/", handler.page("GetGame", handler.getGame))
	e.POST("/play/:cell", handler.redirect("Play", handler.play))
	e.POST("/jump/:move", handler.redirect("JumpTo", handler.jumpTo))
	e.POST("/toggle", handler.redirect("ToggleOrder", handler.toggleOrder))

	api := e.Group("/api/game")
	api.GET("", handler.json("GetGame", handler.getGame))
	api.POST("/play/:cell", handler.json("Play", handler.play))
	api.POST("/jump/:move", handler.json("JumpTo", handler.jumpTo))
	api.POST("/toggle", handler.json("ToggleOrder", handler.toggleOrder))

	return &Server{
		logger: log,
		echo:   e,
	}, nil
}

// Handler - exposes the router, mainly for tests.
func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves on port until ctx is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	that.logger.Info("Shutting down HTTP server")

	if err := that.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Error("request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "error", v.Error)
				return nil
			}

			log.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	})
}
