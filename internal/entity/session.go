package entity

import (
	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/rps"
)

const (
	StatusIdle    = "idle"
	StatusPlaying = "playing"
)

const (
	ModePlayerVsBot = "player_vs_bot"
	ModeBotVsBot    = "bot_vs_bot"
)

// Result keeps the two moves and the outcome of the latest finished round.
type Result struct {
	Outcome    rps.Outcome `json:"outcome"`
	FirstMove  rps.Move    `json:"first_move"`
	SecondMove rps.Move    `json:"second_move"`
}

type Session struct {
	ID          string  `json:"id"`
	Mode        string  `json:"mode"`
	Status      string  `json:"status"`
	Rounds      int     `json:"rounds"`
	FirstScore  int     `json:"first_score"`
	SecondScore int     `json:"second_score"`
	Ties        int     `json:"ties"`
	LastResult  *Result `json:"last_result,omitempty"`
}

func NewSession(id, mode string) *Session {
	return &Session{
		ID:     id,
		Mode:   mode,
		Status: StatusIdle,
	}
}

// IsValidMode reports whether mode names one of the two playable modes.
func IsValidMode(mode string) bool {
	return mode == ModePlayerVsBot || mode == ModeBotVsBot
}

// StartRound - opens a new round; only one round can run at a time.
func (that *Session) StartRound() error {
	if that.IsPlaying() {
		return apperror.ErrRoundInProgress
	}

	that.Status = StatusPlaying
	that.LastResult = nil

	return nil
}

// ApplyResult - resolves the pair of moves and folds the outcome into the score.
// The round counter always equals the sum of both scores and the ties.
func (that *Session) ApplyResult(first, second rps.Move) (*Result, error) {
	if !that.IsPlaying() {
		return nil, apperror.ErrNoActiveRound
	}

	result := &Result{
		Outcome:    rps.Resolve(first, second),
		FirstMove:  first,
		SecondMove: second,
	}

	switch result.Outcome {
	case rps.OutcomeFirstWin:
		that.FirstScore++
	case rps.OutcomeSecondWin:
		that.SecondScore++
	case rps.OutcomeTie:
		that.Ties++
	}

	that.Rounds++
	that.LastResult = result
	that.Status = StatusIdle

	return result, nil
}

// SwitchMode - records the new mode and starts the scores over.
func (that *Session) SwitchMode(mode string) error {
	if !IsValidMode(mode) {
		return apperror.ErrUnknownMode
	}

	that.Mode = mode
	that.reset()

	return nil
}

// Restart - starts the scores over keeping the current mode.
func (that *Session) Restart() {
	that.reset()
}

func (that *Session) reset() {
	that.Status = StatusIdle
	that.Rounds = 0
	that.FirstScore = 0
	that.SecondScore = 0
	that.Ties = 0
	that.LastResult = nil
}

func (that *Session) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Session) IsIdle() bool {
	return that.Status == StatusIdle
}

func (that *Session) IsPlayerVsBot() bool {
	return that.Mode == ModePlayerVsBot
}

func (that *Session) IsBotVsBot() bool {
	return that.Mode == ModeBotVsBot
}
