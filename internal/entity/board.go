package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

const (
	BoardSide  = 3
	BoardCells = BoardSide * BoardSide
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other player's mark. Marks other than X and O are returned as is.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return m
	}
}

func (m Mark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// Board is a 3x3 grid addressed by index 0..8, row = index/3, col = index%3.
// The same type backs the flat game, the ultimate sub-boards and the ultimate meta-board,
// where PlayerTie records a drawn sub-board.
type Board [BoardCells]Mark

func CellIndex(row, col int) (int, error) {
	if row < 0 || row >= BoardSide || col < 0 || col >= BoardSide {
		return 0, fmt.Errorf("%w: row %d, col %d", apperror.ErrIndexOutOfRange, row, col)
	}

	return row*BoardSide + col, nil
}

func CellCoords(index int) (int, int) {
	return index / BoardSide, index % BoardSide
}

// Set writes mark into an empty cell. Exactly one cell changes on success.
func (that *Board) Set(index int, mark Mark) error {
	if index < 0 || index >= len(that) {
		return fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, index)
	}

	if mark == EmptyCell {
		return fmt.Errorf("%w: cannot clear cell %d", apperror.ErrInvalidMark, index)
	}

	if that[index] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	that[index] = mark

	return nil
}

// Winner returns the mark of the first complete triple. PlayerTie never wins.
func (that *Board) Winner() (Mark, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a.IsPlayer() && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Board) IsDrawn() bool {
	if !that.IsFull() {
		return false
	}

	_, won := that.Winner()

	return !won
}

// EmptyCells lists free cells in ascending index order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// Occupied counts the cells holding a mark.
func (that *Board) Occupied() int {
	return len(that) - len(that.EmptyCells())
}

func (that Board) String() string {
	var builder strings.Builder
	for row := range BoardSide {
		cells := make([]string, BoardSide)
		for col := range BoardSide {
			cells[col] = that[row*BoardSide+col].symbol()
		}
		builder.WriteString(strings.Join(cells, "|"))
		if row < BoardSide-1 {
			builder.WriteString("\n-+-+-\n")
		}
	}

	return builder.String()
}

func (m Mark) symbol() string {
	if m == EmptyCell {
		return " "
	}

	return string(m)
}
