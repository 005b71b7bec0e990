package entity

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusDrawn   Status = "drawn"
)

// BotMark is the mark played by the automated opponent of a flat game.
const BotMark = PlayerO

// Game is the flat 3x3 variant. History holds the played cells in order and its length
// equals the number of occupied cells until the game is drawn.
type Game struct {
	ID         string     `json:"id"`
	Board      Board      `json:"board"`
	Turn       Mark       `json:"turn"`
	Winner     Mark       `json:"winner,omitempty"`
	Status     Status     `json:"status"`
	History    []int      `json:"history"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

func NewGame(id string, difficulty Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      Board{},
		Turn:       PlayerX,
		Status:     StatusOngoing,
		History:    []int{},
		Difficulty: difficulty,
	}
}

// MakeTurn places the current mover's mark on cell and advances the state machine.
// On a draw the board is rebuilt from the history, which is then cleared; the outcome stays drawn.
func (that *Game) MakeTurn(cell int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := that.Board.Set(cell, that.Turn); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.History = append(that.History, cell)
	that.UpdateGameState()

	return nil
}

// UpdateGameState classifies the board after the current mover has played.
func (that *Game) UpdateGameState() {
	if winner, ok := that.Board.Winner(); ok {
		that.Winner = winner
		that.Status = StatusWon
		return
	}

	if that.Board.IsFull() {
		that.Winner = PlayerTie
		that.Status = StatusDrawn
		that.settleDraw()
		return
	}

	that.Status = StatusOngoing
	that.Turn = that.Turn.Opponent()
}

// settleDraw clears the board and replays the recorded moves. The replayed board is
// identical to the one it replaces; only the history is dropped.
func (that *Game) settleDraw() {
	that.Board = replayBoard(that.History)
	that.History = []int{}
}

// CanBotMove reports whether the automated opponent is expected to play now.
func (that *Game) CanBotMove() bool {
	return that.IsOngoing() && that.Difficulty.HasBot() && that.Turn == BotMark
}

func (that *Game) ConfirmBotTurn() error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if !that.Difficulty.HasBot() {
		return fmt.Errorf("%w: two player game has no bot", apperror.ErrInvalidGameState)
	}

	if that.Turn != BotMark {
		return fmt.Errorf("%w: it is %s's turn", apperror.ErrInvalidGameState, that.Turn)
	}

	return nil
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

func (that *Game) ConfirmOngoingState() error {
	switch that.Status {
	case StatusOngoing:
		return nil
	case StatusWon, StatusDrawn:
		return fmt.Errorf("%w: game is %s", apperror.ErrInvalidGameState, that.Status)
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrInvalidGameState, that.Status)
	}
}

// ReplayGame rebuilds a game by applying history from an empty board.
func ReplayGame(id string, difficulty Difficulty, history []int) (*Game, error) {
	game := NewGame(id, difficulty)
	for i, cell := range history {
		if err := game.MakeTurn(cell); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i, err)
		}
	}

	return game, nil
}

func replayBoard(history []int) Board {
	var board Board

	mark := PlayerX
	for _, cell := range history {
		board[cell] = mark
		mark = mark.Opponent()
	}

	return board
}
