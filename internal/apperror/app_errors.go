package apperror

import "errors"

// Move rejections. The game state is left untouched when any of these is returned.
var (
	ErrCellOccupied           = errors.New("cell is already occupied")
	ErrIndexOutOfRange        = errors.New("index is out of range")
	ErrSubBoardAlreadyDecided = errors.New("sub-board is already decided")
	ErrWrongSubBoard          = errors.New("move must be played in the required sub-board")
	ErrNoLegalMove            = errors.New("no legal move available")
	ErrInvalidGameState       = errors.New("operation is not valid in the current game state")
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidMode  = errors.New("invalid game mode")
	ErrInvalidMark  = errors.New("invalid mark")
)
