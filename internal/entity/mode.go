package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

// Difficulty selects the opponent tier of a flat game. NoDifficulty means two human players.
type Difficulty string

const (
	NoDifficulty     Difficulty = ""
	EasyDifficulty   Difficulty = "easy"
	NormalDifficulty Difficulty = "normal"
	HardDifficulty   Difficulty = "hard"
)

const ModeTwoPlayer = "two_player"

// ParseMode maps a mode name to the opponent difficulty. Start screen labels such as
// "2 Player" or "Hard" are accepted too.
func ParseMode(mode string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeTwoPlayer, "2 player", "two-player", "":
		return NoDifficulty, nil
	case string(EasyDifficulty):
		return EasyDifficulty, nil
	case string(NormalDifficulty):
		return NormalDifficulty, nil
	case string(HardDifficulty):
		return HardDifficulty, nil
	default:
		return NoDifficulty, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}
}

func (d Difficulty) Mode() string {
	if d == NoDifficulty {
		return ModeTwoPlayer
	}

	return string(d)
}

func (d Difficulty) HasBot() bool {
	return d != NoDifficulty
}
