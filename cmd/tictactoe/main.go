package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/service"
	"golang.org/x/term"
)

var errUnknownVariant = errors.New("unknown variant")

func main() {
	variant := flag.String("variant", "classic", "game variant: classic or ultimate")
	mode := flag.String("mode", "hard", "classic opponent: two_player, easy, normal or hard")
	seed := flag.Int64("seed", 0, "seed for the easy and normal opponents, 0 picks one from the clock")
	freeChoice := flag.Bool("free-choice", true, "ultimate: allow any open sub-board when sent to a decided one")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	console, restore, err := openConsole()
	if err != nil {
		logger.Error("failed to open terminal", "error", err)
		os.Exit(1)
	}

	err = run(console, *variant, *mode, *seed, *freeChoice)
	restore()

	if err != nil {
		logger.Error("game aborted", "error", err)
		os.Exit(1)
	}
}

func run(console console, variant, mode string, seed int64, freeChoice bool) error {
	switch variant {
	case "classic":
		difficulty, err := entity.ParseMode(mode)
		if err != nil {
			return err
		}

		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		return playClassic(console, service.NewBotService(seed), difficulty)
	case "ultimate":
		return playUltimate(console, freeChoice)
	default:
		return fmt.Errorf("%w: %q", errUnknownVariant, variant)
	}
}

// console reads one line of input at a time and writes board renderings.
type console interface {
	io.Writer
	ReadLine() (string, error)
}

type lineConsole struct {
	io.Writer
	scanner *bufio.Scanner
}

func newLineConsole(r io.Reader, w io.Writer) *lineConsole {
	return &lineConsole{Writer: w, scanner: bufio.NewScanner(r)}
}

func (that *lineConsole) ReadLine() (string, error) {
	if that.scanner.Scan() {
		return that.scanner.Text(), nil
	}

	if err := that.scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return "", io.EOF
}

// openConsole puts an interactive stdin into raw mode behind a term.Terminal so line editing
// works; piped input is read line by line.
func openConsole() (console, func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return newLineConsole(os.Stdin, os.Stdout), func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	restore := func() {
		_ = term.Restore(fd, state)
	}

	return term.NewTerminal(screen, ""), restore, nil
}
