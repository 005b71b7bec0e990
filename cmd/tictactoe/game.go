package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
)

const quitCommand = "q"

var (
	errQuit       = errors.New("quit")
	errMoveFormat = errors.New("enter four numbers from 0 to 2")
)

func playClassic(console console, bot service.BotService, difficulty entity.Difficulty) error {
	game := entity.NewGame("local", difficulty)

	for {
		fmt.Fprintf(console, "\n%s\n\n", game.Board)

		if game.IsFinished() {
			fmt.Fprintln(console, outcome(game.Winner))

			again, err := askAgain(console)
			if err != nil || !again {
				return ignoreQuit(err)
			}

			game = entity.NewGame(game.ID, game.Difficulty)
			continue
		}

		if game.CanBotMove() {
			cell, err := bot.MakeTurn(game)
			if err != nil {
				return fmt.Errorf("bot failed to move: %w", err)
			}

			fmt.Fprintf(console, "%s plays %d\n", entity.BotMark, cell)
			continue
		}

		line, err := prompt(console, fmt.Sprintf("%s to move, cell 0-8: ", game.Turn))
		if err != nil {
			return ignoreQuit(err)
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(console, "enter a number from 0 to 8")
			continue
		}

		if err = game.MakeTurn(cell); err != nil {
			fmt.Fprintln(console, err)
		}
	}
}

func playUltimate(console console, freeChoice bool) error {
	game := entity.NewUltimateGame("local", freeChoice)

	for {
		fmt.Fprintf(console, "\n%s\n", game)

		if game.IsFinished() {
			fmt.Fprintln(console, outcome(game.Winner))

			again, err := askAgain(console)
			if err != nil || !again {
				return ignoreQuit(err)
			}

			game = entity.NewUltimateGame(game.ID, game.FreeChoice)
			continue
		}

		where := "any open sub-board"
		if game.Required != nil {
			where = fmt.Sprintf("sub-board %d %d", game.Required.Row, game.Required.Col)
		}

		line, err := prompt(console, fmt.Sprintf("%s to move in %s (main_row main_col sub_row sub_col): ", game.Turn, where))
		if err != nil {
			return ignoreQuit(err)
		}

		move, err := parseUltimateMove(line)
		if err != nil {
			fmt.Fprintln(console, err)
			continue
		}

		if err = game.MakeTurn(move); err != nil {
			fmt.Fprintln(console, err)
		}
	}
}

func parseUltimateMove(line string) (entity.UltimateMove, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return entity.UltimateMove{}, errMoveFormat
	}

	coords := make([]int, len(fields))
	for i, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return entity.UltimateMove{}, fmt.Errorf("%w: %q is not a number", errMoveFormat, field)
		}
		coords[i] = value
	}

	return entity.UltimateMove{MainRow: coords[0], MainCol: coords[1], SubRow: coords[2], SubCol: coords[3]}, nil
}

func prompt(console console, question string) (string, error) {
	fmt.Fprint(console, question)

	line, err := console.ReadLine()
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == quitCommand {
		return "", errQuit
	}

	return line, nil
}

func askAgain(console console) (bool, error) {
	line, err := prompt(console, "play again? (y/n): ")
	if err != nil {
		return false, err
	}

	return strings.EqualFold(line, "y"), nil
}

func outcome(winner entity.Mark) string {
	if winner == entity.PlayerTie {
		return "It's a tie!"
	}

	return fmt.Sprintf("Player %s wins!", winner)
}

// ignoreQuit treats end of input and the quit command as a normal exit.
func ignoreQuit(err error) error {
	if err == nil || errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
