package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

// Coord addresses a sub-board on the meta-board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type UltimateMove struct {
	MainRow int `json:"main_row"`
	MainCol int `json:"main_col"`
	SubRow  int `json:"sub_row"`
	SubCol  int `json:"sub_col"`
}

// UltimateGame is the nested variant: nine sub-boards and a meta-board recording which of
// them are decided (PlayerX, PlayerO or PlayerTie).
//
// Required is the sub-board the mover must play in; nil lets the mover pick any undecided one.
// With FreeChoice set, a move that sends the opponent into a decided sub-board leaves Required
// nil. Without it the opponent is sent there anyway and may be left with no legal move.
type UltimateGame struct {
	ID         string                      `json:"id"`
	SubBoards  [BoardSide][BoardSide]Board `json:"sub_boards"`
	MetaBoard  Board                       `json:"meta_board"`
	Turn       Mark                        `json:"turn"`
	Required   *Coord                      `json:"required,omitempty"`
	Winner     Mark                        `json:"winner,omitempty"`
	Status     Status                      `json:"status"`
	FreeChoice bool                        `json:"free_choice"`
}

func NewUltimateGame(id string, freeChoice bool) *UltimateGame {
	return &UltimateGame{
		ID:         id,
		Turn:       PlayerX,
		Status:     StatusOngoing,
		FreeChoice: freeChoice,
	}
}

func (that *UltimateGame) MakeTurn(move UltimateMove) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := that.validateMove(move); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	subBoard := &that.SubBoards[move.MainRow][move.MainCol]
	cell, _ := CellIndex(move.SubRow, move.SubCol)
	if err := subBoard.Set(cell, that.Turn); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	meta, _ := CellIndex(move.MainRow, move.MainCol)
	if winner, ok := subBoard.Winner(); ok {
		that.MetaBoard[meta] = winner
	} else if subBoard.IsFull() {
		that.MetaBoard[meta] = PlayerTie
	}

	that.Required = that.nextRequired(move.SubRow, move.SubCol)
	that.Turn = that.Turn.Opponent()
	that.UpdateGameState()

	return nil
}

func (that *UltimateGame) validateMove(move UltimateMove) error {
	meta, err := CellIndex(move.MainRow, move.MainCol)
	if err != nil {
		return fmt.Errorf("sub-board: %w", err)
	}

	cell, err := CellIndex(move.SubRow, move.SubCol)
	if err != nil {
		return fmt.Errorf("cell: %w", err)
	}

	if that.MetaBoard[meta] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrSubBoardAlreadyDecided, move.MainRow, move.MainCol)
	}

	if that.SubBoards[move.MainRow][move.MainCol][cell] != EmptyCell {
		return fmt.Errorf("%w: cell (%d, %d)", apperror.ErrCellOccupied, move.SubRow, move.SubCol)
	}

	if that.Required != nil && (that.Required.Row != move.MainRow || that.Required.Col != move.MainCol) {
		return fmt.Errorf("%w: play in (%d, %d)", apperror.ErrWrongSubBoard, that.Required.Row, that.Required.Col)
	}

	return nil
}

func (that *UltimateGame) nextRequired(row, col int) *Coord {
	if that.FreeChoice && that.isDecided(row, col) {
		return nil
	}

	return &Coord{Row: row, Col: col}
}

func (that *UltimateGame) isDecided(row, col int) bool {
	return that.MetaBoard[row*BoardSide+col] != EmptyCell
}

// UpdateGameState ends the game once the meta-board has a winner or every sub-board is decided.
func (that *UltimateGame) UpdateGameState() {
	if winner, ok := that.MetaBoard.Winner(); ok {
		that.Winner = winner
		that.Status = StatusWon
		return
	}

	if that.MetaBoard.IsFull() {
		that.Winner = PlayerTie
		that.Status = StatusDrawn
		return
	}

	that.Status = StatusOngoing
}

// IsGameOver reports whether the meta-board has a winner or no sub-board is still playable.
func (that *UltimateGame) IsGameOver() bool {
	if _, ok := that.MetaBoard.Winner(); ok {
		return true
	}

	for row := range BoardSide {
		for col := range BoardSide {
			subBoard := that.SubBoards[row][col]
			if _, won := subBoard.Winner(); !won && !subBoard.IsFull() {
				return false
			}
		}
	}

	return true
}

// LegalMoves lists every move the mover may play, sub-boards and cells in ascending order.
// It is empty when the required sub-board has no free cell.
func (that *UltimateGame) LegalMoves() []UltimateMove {
	if !that.IsOngoing() {
		return nil
	}

	moves := make([]UltimateMove, 0, BoardCells)
	for meta := range BoardCells {
		mainRow, mainCol := CellCoords(meta)
		if that.MetaBoard[meta] != EmptyCell {
			continue
		}

		if that.Required != nil && (that.Required.Row != mainRow || that.Required.Col != mainCol) {
			continue
		}

		for _, cell := range that.SubBoards[mainRow][mainCol].EmptyCells() {
			subRow, subCol := CellCoords(cell)
			moves = append(moves, UltimateMove{MainRow: mainRow, MainCol: mainCol, SubRow: subRow, SubCol: subCol})
		}
	}

	return moves
}

func (that *UltimateGame) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *UltimateGame) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

func (that *UltimateGame) ConfirmOngoingState() error {
	switch that.Status {
	case StatusOngoing:
		return nil
	case StatusWon, StatusDrawn:
		return fmt.Errorf("%w: game is %s", apperror.ErrInvalidGameState, that.Status)
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrInvalidGameState, that.Status)
	}
}

func (that UltimateGame) String() string {
	var builder strings.Builder
	for mainRow := range BoardSide {
		for subRow := range BoardSide {
			rows := make([]string, BoardSide)
			for mainCol := range BoardSide {
				subBoard := that.SubBoards[mainRow][mainCol]
				cells := make([]string, BoardSide)
				for subCol := range BoardSide {
					cells[subCol] = subBoard[subRow*BoardSide+subCol].symbol()
				}
				rows[mainCol] = strings.Join(cells, "|")
			}
			builder.WriteString(strings.Join(rows, " || "))
			builder.WriteString("\n")
		}
		if mainRow < BoardSide-1 {
			builder.WriteString(strings.Repeat("=", 23))
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
