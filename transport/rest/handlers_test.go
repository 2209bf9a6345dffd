package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/rps-backend/internal/entity"
	"github.com/rocketscienceinc/rps-backend/internal/repository"
	"github.com/rocketscienceinc/rps-backend/internal/rps"
)

type fakeGame struct {
	session *entity.Session
	err     error
}

func (that *fakeGame) CurrentSession(_ context.Context, _ string) (*entity.Session, error) {
	return that.session, that.err
}

func serveRequest(t *testing.T, game gameUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := New(logger, game)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, target, nil)

	server.routes().ServeHTTP(recorder, request)

	return recorder
}

func TestServer_Ping(t *testing.T) {
	// When: the ping endpoint is hit
	recorder := serveRequest(t, &fakeGame{}, "/ping")

	// Then: it answers pong
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestServer_Health(t *testing.T) {
	// When: the health endpoint is hit
	recorder := serveRequest(t, &fakeGame{}, "/healthz")

	// Then: it reports ok
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestServer_GetSession(t *testing.T) {
	t.Run("Returns the session snapshot", func(t *testing.T) {
		// Given: a player with one finished round
		session := entity.NewSession("s1", entity.ModePlayerVsBot)
		require.NoError(t, session.StartRound())
		_, err := session.ApplyResult(rps.MoveRock, rps.MoveScissors)
		require.NoError(t, err)

		// When: the session endpoint is hit
		recorder := serveRequest(t, &fakeGame{session: session}, "/api/players/p1/session")

		// Then: the snapshot comes back as JSON
		assert.Equal(t, http.StatusOK, recorder.Code)

		var got entity.Session
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, "s1", got.ID)
		assert.Equal(t, 1, got.Rounds)
		assert.Equal(t, 1, got.FirstScore)
		require.NotNil(t, got.LastResult)
		assert.Equal(t, rps.OutcomeFirstWin, got.LastResult.Outcome)
	})

	t.Run("Unknown player yields 404", func(t *testing.T) {
		// When: the player is not in storage
		recorder := serveRequest(t, &fakeGame{err: repository.ErrPlayerNotFound}, "/api/players/nobody/session")

		// Then: the endpoint answers not found
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Player without a session yields 404", func(t *testing.T) {
		recorder := serveRequest(t, &fakeGame{err: repository.ErrSessionNotFound}, "/api/players/p1/session")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
