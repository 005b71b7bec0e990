package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123", HardDifficulty)

	// Then: X moves first on an empty board
	expectedGame := &Game{
		ID:         "123",
		Board:      Board{},
		Turn:       PlayerX,
		Status:     StatusOngoing,
		History:    []int{},
		Difficulty: HardDifficulty,
	}

	require.Equal(t, expectedGame, game)
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful Turn", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123", NoDifficulty)

		// When: X plays cell 0
		err := game.MakeTurn(0)
		require.NoError(t, err)

		// Then: the mark is placed, recorded and the mover flips
		expectedGame := &Game{
			ID:      "123",
			Board:   Board{PlayerX, "", "", "", "", "", "", "", ""},
			Turn:    PlayerO,
			Status:  StatusOngoing,
			History: []int{0},
		}

		require.Equal(t, expectedGame, game)
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: a game where cell 0 is taken by X
		game := NewGame("123", NoDifficulty)
		require.NoError(t, game.MakeTurn(0))
		before := *game
		before.History = append([]int(nil), game.History...)

		// When: O tries the same cell
		err := game.MakeTurn(0)

		// Then: the move is rejected and nothing changes, including the mover
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, &before, game)
	})

	t.Run("Error on Invalid Cell Index", func(t *testing.T) {
		game := NewGame("123", NoDifficulty)

		for _, cell := range []int{-1, 9, 20} {
			err := game.MakeTurn(cell)

			assert.ErrorIs(t, err, apperror.ErrIndexOutOfRange)
		}
		assert.Equal(t, PlayerX, game.Turn)
		assert.Empty(t, game.History)
	})

	t.Run("Win ends the game with the mover as winner", func(t *testing.T) {
		// Given: X about to complete the top row
		game, err := ReplayGame("123", NoDifficulty, []int{0, 3, 1, 4})
		require.NoError(t, err)

		// When: X plays cell 2
		err = game.MakeTurn(2)

		// Then: X wins and the mover is not flipped
		require.NoError(t, err)
		assert.Equal(t, StatusWon, game.Status)
		assert.Equal(t, PlayerX, game.Winner)
		assert.Equal(t, PlayerX, game.Turn)
		assert.Equal(t, []int{0, 3, 1, 4, 2}, game.History)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a game X has already won
		game, err := ReplayGame("123", NoDifficulty, []int{0, 3, 1, 4, 2})
		require.NoError(t, err)

		// When: O tries to play on
		err = game.MakeTurn(5)

		// Then: ErrInvalidGameState is returned
		require.ErrorIs(t, err, apperror.ErrInvalidGameState)
		assert.Equal(t, EmptyCell, game.Board[5])
	})
}

func TestGame_Draw(t *testing.T) {
	// Given: eight moves with no winner
	//  X | O | X
	//  X | O | O
	//  O | X | .
	history := []int{0, 1, 2, 4, 3, 5, 7, 6}
	game, err := ReplayGame("123", NoDifficulty, history)
	require.NoError(t, err)
	require.True(t, game.IsOngoing())
	boardBefore := game.Board

	// When: X fills the last cell
	err = game.MakeTurn(8)

	// Then: the game is drawn and the board equals the pre-replay board plus the last move
	require.NoError(t, err)
	assert.Equal(t, StatusDrawn, game.Status)
	assert.Equal(t, PlayerTie, game.Winner)
	assert.Equal(t, PlayerX, game.Turn)

	boardBefore[8] = PlayerX
	assert.Equal(t, boardBefore, game.Board)

	// And: the history is cleared by the replay
	assert.Empty(t, game.History)

	// And: the drawn game rejects further moves
	assert.ErrorIs(t, game.MakeTurn(8), apperror.ErrInvalidGameState)
}

func TestGame_HistoryMatchesBoard(t *testing.T) {
	// Given: a sequence that ends with an O win
	game := NewGame("123", NoDifficulty)
	moves := []int{4, 0, 8, 2, 6, 1}

	for i, cell := range moves {
		mover := game.Turn

		// When: each move is applied
		require.NoError(t, game.MakeTurn(cell))

		// Then: history and occupied cells stay in step and the mover alternates
		assert.Len(t, game.History, game.Board.Occupied())
		assert.Equal(t, []Mark{PlayerX, PlayerO}[i%2], mover)

		if game.IsOngoing() {
			assert.Equal(t, mover.Opponent(), game.Turn)
		}
	}

	assert.Equal(t, StatusWon, game.Status)
	assert.Equal(t, PlayerO, game.Winner)
}

func TestGame_ConfirmBotTurn(t *testing.T) {
	t.Run("Bot may play O in a bot game", func(t *testing.T) {
		game, err := ReplayGame("1", EasyDifficulty, []int{4})
		require.NoError(t, err)

		assert.NoError(t, game.ConfirmBotTurn())
		assert.True(t, game.CanBotMove())
	})

	t.Run("Bot may not play X", func(t *testing.T) {
		game := NewGame("1", EasyDifficulty)

		assert.ErrorIs(t, game.ConfirmBotTurn(), apperror.ErrInvalidGameState)
		assert.False(t, game.CanBotMove())
	})

	t.Run("Two player game has no bot", func(t *testing.T) {
		game, err := ReplayGame("1", NoDifficulty, []int{4})
		require.NoError(t, err)

		assert.ErrorIs(t, game.ConfirmBotTurn(), apperror.ErrInvalidGameState)
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrInvalidGameState when game is finished", func(t *testing.T) {
		for _, status := range []Status{StatusWon, StatusDrawn} {
			game := &Game{Status: status}

			assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrInvalidGameState)
			assert.True(t, game.IsFinished())
		}
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown status")
	})
}

func TestGame_RoundTrip(t *testing.T) {
	// Given: a game in progress
	game, err := ReplayGame("abc", NormalDifficulty, []int{4, 0, 8})
	require.NoError(t, err)

	// When: it is serialized and read back
	data, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: the decoded state equals the game that was encoded
	require.Equal(t, game, &decoded)

	// And: replaying its history from an empty board reaches the same state
	replayed, err := ReplayGame(decoded.ID, decoded.Difficulty, decoded.History)
	require.NoError(t, err)
	require.Equal(t, game, replayed)
}

func TestReplayGame_RejectsIllegalHistory(t *testing.T) {
	_, err := ReplayGame("1", NoDifficulty, []int{0, 0})

	require.ErrorIs(t, err, apperror.ErrCellOccupied)
}

func TestParseMode(t *testing.T) {
	tests := map[string]Difficulty{
		"two_player": NoDifficulty,
		"2 Player":   NoDifficulty,
		"Easy":       EasyDifficulty,
		"normal":     NormalDifficulty,
		"HARD":       HardDifficulty,
	}

	for mode, expected := range tests {
		difficulty, err := ParseMode(mode)

		require.NoError(t, err, mode)
		assert.Equal(t, expected, difficulty, mode)
	}

	_, err := ParseMode("impossible")
	assert.ErrorIs(t, err, apperror.ErrInvalidMode)

	assert.Equal(t, ModeTwoPlayer, NoDifficulty.Mode())
	assert.Equal(t, "hard", HardDifficulty.Mode())
}
