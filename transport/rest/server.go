package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameReader interface {
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	GetUltimateGame(ctx context.Context, id string) (*entity.UltimateGame, error)
}

// NewRouter serves the health check and read-only views of live sessions.
func NewRouter(logger *slog.Logger, games gameReader) http.Handler {
	handlers := NewGameHandlers(logger, games)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", ping)
	r.Get("/games/{id}", handlers.GetGame)
	r.Get("/ultimate/{id}", handlers.GetUltimateGame)

	return r
}

func Start(ctx context.Context, logger *slog.Logger, port string, games gameReader) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, games),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// requestLogger writes one slog record per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info("request",
					"requestID", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
