// Package rps holds the pure rules of rock paper scissors: the move set,
// the beats relation and the outcome of a single round. It keeps no state.
package rps

import "math/rand"

// Move is one of the three tokens a side can throw in a round.
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// Moves lists every playable move.
var Moves = []Move{MoveRock, MovePaper, MoveScissors}

// Outcome classifies one resolved round from the first side's point of view.
type Outcome string

const (
	OutcomeFirstWin  Outcome = "first_win"
	OutcomeSecondWin Outcome = "second_win"
	OutcomeTie       Outcome = "tie"
)

// beats maps every move to the move it defeats.
var beats = map[Move]Move{
	MoveRock:     MoveScissors,
	MoveScissors: MovePaper,
	MovePaper:    MoveRock,
}

// Resolve - compares two moves and reports which side won the round.
func Resolve(first, second Move) Outcome {
	if first == second {
		return OutcomeTie
	}

	if beats[first] == second {
		return OutcomeFirstWin
	}

	return OutcomeSecondWin
}

// IsValid reports whether the move belongs to the playable set.
func (that Move) IsValid() bool {
	_, ok := beats[that]
	return ok
}

// RandomMove - draws a move uniformly at random.
func RandomMove() Move {
	return Moves[rand.Intn(len(Moves))] //nolint: gosec // it's ok
}
