package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

type GameHandlers struct {
	logger *slog.Logger
	games  gameReader
}

func NewGameHandlers(logger *slog.Logger, games gameReader) *GameHandlers {
	return &GameHandlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *GameHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *GameHandlers) GetUltimateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetUltimateGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *GameHandlers) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperror.ErrGameNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": apperror.ErrGameNotFound.Error()})
		return
	}

	that.logger.Error("failed to get game", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
