package core

import "errors"

var (
	ErrGameOver          = errors.New("game is over")
	ErrUnknownAction     = errors.New("unknown action type")
	ErrUnknownNation     = errors.New("unknown nation")
	ErrUnknownTerritory  = errors.New("unknown territory")
	ErrNotAdjacent       = errors.New("territories are not adjacent")
	ErrNotOwned          = errors.New("territory not owned by nation")
	ErrInsufficientFunds = errors.New("insufficient treasury")
	ErrInsufficientArmy  = errors.New("insufficient garrison to move")
	ErrMissingTarget     = errors.New("action requires a target")
)
