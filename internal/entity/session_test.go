package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/rps"
)

func TestSession_StartRound(t *testing.T) {
	t.Run("Successful start", func(t *testing.T) {
		// Given: an idle session with a leftover result
		session := NewSession("s1", ModePlayerVsBot)
		session.LastResult = &Result{Outcome: rps.OutcomeTie}

		// When: a round is started
		err := session.StartRound()

		// Then: the session is playing and the old result is gone
		require.NoError(t, err)
		assert.True(t, session.IsPlaying())
		assert.Nil(t, session.LastResult)
	})

	t.Run("Round already in progress", func(t *testing.T) {
		// Given: a session with an open round
		session := NewSession("s1", ModePlayerVsBot)
		require.NoError(t, session.StartRound())

		// When: another round is started
		err := session.StartRound()

		// Then: the start is rejected
		require.ErrorIs(t, err, apperror.ErrRoundInProgress)
		assert.True(t, session.IsPlaying())
	})
}

func TestSession_ApplyResult(t *testing.T) {
	t.Run("First side wins", func(t *testing.T) {
		// Given: a session with an open round
		session := NewSession("s1", ModePlayerVsBot)
		require.NoError(t, session.StartRound())

		// When: rock beats scissors
		result, err := session.ApplyResult(rps.MoveRock, rps.MoveScissors)

		// Then: the first score grows and the session is idle again
		require.NoError(t, err)
		assert.Equal(t, rps.OutcomeFirstWin, result.Outcome)
		assert.Equal(t, 1, session.FirstScore)
		assert.Equal(t, 0, session.SecondScore)
		assert.Equal(t, 0, session.Ties)
		assert.Equal(t, 1, session.Rounds)
		assert.True(t, session.IsIdle())
		assert.Equal(t, result, session.LastResult)
	})

	t.Run("Second side wins", func(t *testing.T) {
		// Given: a session with an open round
		session := NewSession("s1", ModePlayerVsBot)
		require.NoError(t, session.StartRound())

		// When: rock loses to paper
		result, err := session.ApplyResult(rps.MoveRock, rps.MovePaper)

		// Then: the second score grows
		require.NoError(t, err)
		assert.Equal(t, rps.OutcomeSecondWin, result.Outcome)
		assert.Equal(t, 0, session.FirstScore)
		assert.Equal(t, 1, session.SecondScore)
		assert.Equal(t, 1, session.Rounds)
	})

	t.Run("Tie", func(t *testing.T) {
		// Given: a session with an open round
		session := NewSession("s1", ModeBotVsBot)
		require.NoError(t, session.StartRound())

		// When: both sides throw paper
		result, err := session.ApplyResult(rps.MovePaper, rps.MovePaper)

		// Then: only the tie counter grows
		require.NoError(t, err)
		assert.Equal(t, rps.OutcomeTie, result.Outcome)
		assert.Equal(t, 0, session.FirstScore)
		assert.Equal(t, 0, session.SecondScore)
		assert.Equal(t, 1, session.Ties)
		assert.Equal(t, 1, session.Rounds)
	})

	t.Run("No active round", func(t *testing.T) {
		// Given: an idle session
		session := NewSession("s1", ModePlayerVsBot)

		// When: a result arrives anyway
		result, err := session.ApplyResult(rps.MoveRock, rps.MoveScissors)

		// Then: the result is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrNoActiveRound)
		assert.Nil(t, result)
		assert.Equal(t, 0, session.Rounds)
	})

	t.Run("Counters always add up to the round count", func(t *testing.T) {
		// Given: an idle session
		session := NewSession("s1", ModeBotVsBot)

		// When: many random rounds are played
		for i := 0; i < 50; i++ {
			require.NoError(t, session.StartRound())

			_, err := session.ApplyResult(rps.RandomMove(), rps.RandomMove())
			require.NoError(t, err)

			// Then: the counters sum to the round count after every round
			assert.Equal(t, session.Rounds, session.FirstScore+session.SecondScore+session.Ties)
		}

		assert.Equal(t, 50, session.Rounds)
	})
}

func TestSession_SwitchMode(t *testing.T) {
	t.Run("Successful switch", func(t *testing.T) {
		// Given: a session with some history and an open round
		session := playedSession(t)
		require.NoError(t, session.StartRound())

		// When: the mode is switched
		err := session.SwitchMode(ModeBotVsBot)

		// Then: the mode changes and the session starts over
		require.NoError(t, err)
		assert.Equal(t, ModeBotVsBot, session.Mode)
		assertFreshSession(t, session)
	})

	t.Run("Switching to the same mode still starts over", func(t *testing.T) {
		// Given: a session with some history
		session := playedSession(t)

		// When: the current mode is selected again
		err := session.SwitchMode(ModePlayerVsBot)

		// Then: the session starts over anyway
		require.NoError(t, err)
		assert.Equal(t, ModePlayerVsBot, session.Mode)
		assertFreshSession(t, session)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		// Given: a session with some history
		session := playedSession(t)

		// When: a bogus mode is selected
		err := session.SwitchMode("humans_vs_aliens")

		// Then: the switch is rejected and the history survives
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
		assert.Equal(t, ModePlayerVsBot, session.Mode)
		assert.Equal(t, 1, session.Rounds)
	})
}

func TestSession_Restart(t *testing.T) {
	t.Run("Restart keeps the mode", func(t *testing.T) {
		// Given: a bot vs bot session with history and an open round
		session := NewSession("s1", ModeBotVsBot)
		require.NoError(t, session.StartRound())
		_, err := session.ApplyResult(rps.MoveRock, rps.MovePaper)
		require.NoError(t, err)
		require.NoError(t, session.StartRound())

		// When: the game is restarted
		session.Restart()

		// Then: the counters are gone but the mode stays
		assert.Equal(t, ModeBotVsBot, session.Mode)
		assertFreshSession(t, session)
	})
}

// playedSession returns a player vs bot session with exactly one finished round.
func playedSession(t *testing.T) *Session {
	t.Helper()

	session := NewSession("s1", ModePlayerVsBot)
	require.NoError(t, session.StartRound())

	_, err := session.ApplyResult(rps.MoveRock, rps.MoveScissors)
	require.NoError(t, err)

	return session
}

func assertFreshSession(t *testing.T, session *Session) {
	t.Helper()

	assert.True(t, session.IsIdle())
	assert.Equal(t, 0, session.Rounds)
	assert.Equal(t, 0, session.FirstScore)
	assert.Equal(t, 0, session.SecondScore)
	assert.Equal(t, 0, session.Ties)
	assert.Nil(t, session.LastResult)
}
