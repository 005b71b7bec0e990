package service

import (
	"math"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0
)

// exhaustiveMove searches the full game tree for mark. Ties between equally scored
// moves go to the lowest cell index.
func exhaustiveMove(board entity.Board, mark entity.Mark) (int, error) {
	bestScore := math.MinInt
	bestMove := -1

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		next := board
		next[cell] = mark

		if score := minimax(next, mark, mark.Opponent()); score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	if bestMove < 0 {
		return 0, apperror.ErrNoLegalMove
	}

	return bestMove, nil
}

// minimax scores board from self's point of view with toMove about to play.
// board is a value copy, so every branch works on its own grid.
func minimax(board entity.Board, self, toMove entity.Mark) int {
	if winner, ok := board.Winner(); ok {
		if winner == self {
			return scoreWin
		}
		return scoreLoss
	}

	if board.IsFull() {
		return scoreDraw
	}

	maximizing := toMove == self

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		next := board
		next[cell] = toMove
		score := minimax(next, self, toMove.Opponent())

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
