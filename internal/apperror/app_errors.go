package apperror

import "errors"

var (
	ErrRoundInProgress = errors.New("round is already in progress")
	ErrNoActiveRound   = errors.New("no active round")
	ErrInvalidMove     = errors.New("invalid move")
	ErrUnknownMode     = errors.New("unknown game mode")
	ErrAutoRound       = errors.New("round resolves automatically in this mode")
)
