package service

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

type BotService interface {
	// ChooseMove picks a cell for mark on board using the tier selected by difficulty.
	ChooseMove(difficulty entity.Difficulty, board entity.Board, mark entity.Mark) (int, error)
	// MakeTurn plays the game's bot move and returns the chosen cell.
	MakeTurn(game *entity.Game) (int, error)
}

type botService struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewBotService builds a bot whose random choices come from seed.
func NewBotService(seed int64) BotService {
	return &botService{
		rand: rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	}
}

func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	if err := game.ConfirmBotTurn(); err != nil {
		return 0, err
	}

	cell, err := that.ChooseMove(game.Difficulty, game.Board, game.Turn)
	if err != nil {
		return 0, fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = game.MakeTurn(cell); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

func (that *botService) ChooseMove(difficulty entity.Difficulty, board entity.Board, mark entity.Mark) (int, error) {
	if !mark.IsPlayer() {
		return 0, fmt.Errorf("%w: bot cannot play %q", apperror.ErrInvalidMark, mark)
	}

	switch difficulty {
	case entity.EasyDifficulty:
		return that.randomMove(board)
	case entity.NormalDifficulty:
		return that.heuristicMove(board, mark)
	case entity.HardDifficulty:
		return exhaustiveMove(board, mark)
	default:
		return 0, fmt.Errorf("%w: no bot for mode %q", apperror.ErrInvalidMode, difficulty.Mode())
	}
}

// randomMove picks uniformly among the empty cells.
func (that *botService) randomMove(board entity.Board) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoLegalMove
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return availableCells[that.rand.Intn(len(availableCells))], nil
}

// heuristicMove wins if it can, blocks if it must, and plays randomly otherwise.
func (that *botService) heuristicMove(board entity.Board, mark entity.Mark) (int, error) {
	if cell, ok := findWinningMove(board, mark); ok {
		return cell, nil
	}

	if cell, ok := findWinningMove(board, mark.Opponent()); ok {
		return cell, nil
	}

	return that.randomMove(board)
}

// findWinningMove returns the free cell of the first triple holding two of mark's cells.
func findWinningMove(board entity.Board, mark entity.Mark) (int, bool) {
	for _, combo := range entity.WinCombos {
		marks, empty, freeCell := 0, 0, 0
		for _, cell := range combo {
			switch board[cell] {
			case mark:
				marks++
			case entity.EmptyCell:
				empty++
				freeCell = cell
			}
		}

		if marks == 2 && empty == 1 {
			return freeCell, true
		}
	}

	return 0, false
}
