package websocket

import (
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const (
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameBot   = "game:bot"
	actionGameState = "game:state"
	actionGameReset = "game:reset"
	actionGameLeave = "game:leave"
)

const (
	variantClassic  = "classic"
	variantUltimate = "ultimate"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

type ResponsePayload struct {
	Game     *entity.Game         `json:"game,omitempty"`
	Ultimate *entity.UltimateGame `json:"ultimate,omitempty"`
	Board    string               `json:"board,omitempty"`
	Cell     *int                 `json:"cell,omitempty"`
	Status   string               `json:"status,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}

// gameRequest addresses a session. Variant defaults to classic.
type gameRequest struct {
	Variant string `mapstructure:"variant"`
	Mode    string `mapstructure:"mode"`
	GameID  string `mapstructure:"game_id"`
}

// turnRequest carries either Cell for a classic game or the four coordinates of an ultimate move.
type turnRequest struct {
	GameID  string `mapstructure:"game_id"`
	Cell    *int   `mapstructure:"cell"`
	MainRow *int   `mapstructure:"main_row"`
	MainCol *int   `mapstructure:"main_col"`
	SubRow  *int   `mapstructure:"sub_row"`
	SubCol  *int   `mapstructure:"sub_col"`
}

func (that *turnRequest) isUltimate() bool {
	return that.Cell == nil
}

func (that *turnRequest) ultimateMove() (entity.UltimateMove, error) {
	if that.MainRow == nil || that.MainCol == nil || that.SubRow == nil || that.SubCol == nil {
		return entity.UltimateMove{}, errMissingMove
	}

	return entity.UltimateMove{
		MainRow: *that.MainRow,
		MainCol: *that.MainCol,
		SubRow:  *that.SubRow,
		SubCol:  *that.SubCol,
	}, nil
}

var (
	errMissingGameID  = errors.New("game_id is required")
	errMissingMove    = errors.New("cell or main_row, main_col, sub_row and sub_col are required")
	errUnknownVariant = errors.New("unknown variant")
)

func decodePayload(message *Message, target any) error {
	if err := mapstructure.Decode(message.Payload, target); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	return nil
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	if err := conn.WriteJSON(response{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func gamePayload(game *entity.Game) ResponsePayload {
	return ResponsePayload{Game: game, Board: game.Board.String()}
}

func ultimatePayload(game *entity.UltimateGame) ResponsePayload {
	return ResponsePayload{Ultimate: game, Board: game.String()}
}

// clientErrors are reported to the client with their own text. Anything else is logged
// and hidden behind a generic message.
var clientErrors = []error{
	apperror.ErrCellOccupied,
	apperror.ErrIndexOutOfRange,
	apperror.ErrSubBoardAlreadyDecided,
	apperror.ErrWrongSubBoard,
	apperror.ErrNoLegalMove,
	apperror.ErrInvalidGameState,
	apperror.ErrGameNotFound,
	apperror.ErrInvalidMode,
	apperror.ErrInvalidMark,
}

func errorMessage(err error) (string, bool) {
	for _, clientErr := range clientErrors {
		if errors.Is(err, clientErr) {
			return clientErr.Error(), true
		}
	}

	return "internal error", false
}
