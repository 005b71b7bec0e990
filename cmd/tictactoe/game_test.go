package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input ...string) (*lineConsole, *bytes.Buffer) {
	var out bytes.Buffer
	return newLineConsole(strings.NewReader(strings.Join(input, "\n")+"\n"), &out), &out
}

func TestPlayClassic(t *testing.T) {
	t.Run("Two players reach a win", func(t *testing.T) {
		// Given: X completes the top row while O plays the middle row
		console, out := newTestConsole("0", "3", "1", "4", "2", "n")

		// When: the game is played
		err := playClassic(console, service.NewBotService(1), entity.NoDifficulty)

		// Then: X is announced as the winner
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Player X wins!")
	})

	t.Run("Bad input is reported and the game goes on", func(t *testing.T) {
		console, out := newTestConsole("x", "9", "4", "4", "q")

		err := playClassic(console, service.NewBotService(1), entity.NoDifficulty)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "enter a number from 0 to 8")
		assert.Contains(t, out.String(), "index is out of range")
		assert.Contains(t, out.String(), "cell is already occupied")
	})

	t.Run("Hard bot answers every move", func(t *testing.T) {
		console, out := newTestConsole("4")

		err := playClassic(console, service.NewBotService(1), entity.HardDifficulty)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "O plays 0")
	})
}

func TestPlayUltimate(t *testing.T) {
	t.Run("Required sub-board is enforced", func(t *testing.T) {
		// Given: X sends O to sub-board (0,2)
		console, out := newTestConsole("1 1 0 2", "0 0 0 0", "0 2 1 1", "q")

		// When: O first ignores it, then complies
		err := playUltimate(console, true)

		// Then: the wrong move is refused and the right one accepted
		require.NoError(t, err)
		assert.Contains(t, out.String(), "move must be played in the required sub-board")
		assert.Contains(t, out.String(), "X to move in sub-board 1 1")
	})

	t.Run("Malformed moves are refused", func(t *testing.T) {
		console, out := newTestConsole("1 1", "a b c d", "q")

		err := playUltimate(console, true)

		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out.String(), errMoveFormat.Error()))
	})
}

func TestRun_UnknownVariant(t *testing.T) {
	console, _ := newTestConsole()

	err := run(console, "cubic", "hard", 1, true)

	require.ErrorIs(t, err, errUnknownVariant)
}
