package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/entity"
	"github.com/rocketscienceinc/rps-backend/internal/metrics"
	"github.com/rocketscienceinc/rps-backend/internal/rps"
)

const resolveTimeout = 5 * time.Second

// ResolvedFunc is called after a scheduled bot vs bot round has resolved.
type ResolvedFunc func(playerID string, session *entity.Session)

type GamePlayService interface {
	GetOrCreateSession(ctx context.Context, playerID string) (*entity.Session, error)

	StartRound(ctx context.Context, playerID string) (*entity.Session, error)
	PlayMove(ctx context.Context, playerID string, move rps.Move) (*entity.Session, error)
	ChangeMode(ctx context.Context, playerID, mode string) (*entity.Session, error)
	Restart(ctx context.Context, playerID string) (*entity.Session, error)

	OnRoundResolved(fn ResolvedFunc)
	Close()
}

// pendingRound identifies one scheduled bot vs bot resolution. The token in
// the pending map is the source of truth: a fired timer whose token is no
// longer registered must drop its round on the floor.
type pendingRound struct {
	timer *time.Timer
}

type gamePlayService struct {
	logger *slog.Logger

	playerService  PlayerService
	sessionService SessionService
	botService     BotService

	thinkDelay time.Duration

	// mu serializes every session mutation, including scheduled
	// resolutions, so each event sees a consistent session.
	mu       sync.Mutex
	pending  map[string]*pendingRound
	resolved ResolvedFunc
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, sessionService SessionService, botService BotService, thinkDelay time.Duration) GamePlayService {
	return &gamePlayService{
		logger:         logger,
		playerService:  playerService,
		sessionService: sessionService,
		botService:     botService,
		thinkDelay:     thinkDelay,
		pending:        make(map[string]*pendingRound),
	}
}

func (that *gamePlayService) GetOrCreateSession(ctx context.Context, playerID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.SessionID == "" {
		session, err := that.createSession(ctx, player, entity.ModePlayerVsBot)
		if err != nil {
			return nil, fmt.Errorf("failed to create new session: %w", err)
		}

		return session, nil
	}

	session, err := that.sessionService.GetSessionByID(ctx, player.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *gamePlayService) createSession(ctx context.Context, player *entity.Player, mode string) (*entity.Session, error) {
	session, err := that.sessionService.CreateSession(ctx, player, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return session, nil
}

// StartRound - opens a round. In bot vs bot mode the resolution is scheduled
// after the think delay instead of happening inline.
func (that *gamePlayService) StartRound(ctx context.Context, playerID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, session, err := that.playerSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = session.StartRound(); err != nil {
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	if err = that.sessionService.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if session.IsBotVsBot() {
		that.schedule(player.ID, session.ID)
	}

	return session, nil
}

// PlayMove - resolves the open round against a fresh bot move. Only player
// vs bot sessions accept moves; bot vs bot rounds resolve on their own.
func (that *gamePlayService) PlayMove(ctx context.Context, playerID string, move rps.Move) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !move.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, move)
	}

	_, session, err := that.playerSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if session.IsBotVsBot() {
		return nil, apperror.ErrAutoRound
	}

	botMove := that.botService.PickMove()

	result, err := session.ApplyResult(move, botMove)
	if err != nil {
		return nil, fmt.Errorf("failed to apply result: %w", err)
	}

	if err = that.sessionService.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	metrics.RoundsResolved.WithLabelValues(session.Mode, string(result.Outcome)).Inc()

	return session, nil
}

// ChangeMode - switches the session to the given mode and starts the scores
// over. A resolution still pending from the old mode is cancelled first so it
// can never touch the reset session.
func (that *gamePlayService) ChangeMode(ctx context.Context, playerID, mode string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !entity.IsValidMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	_, session, err := that.playerSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	that.cancel(session.ID)

	if err = session.SwitchMode(mode); err != nil {
		return nil, fmt.Errorf("failed to switch mode: %w", err)
	}

	if err = that.sessionService.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// Restart - starts the scores over in the current mode, cancelling any
// pending resolution.
func (that *gamePlayService) Restart(ctx context.Context, playerID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, session, err := that.playerSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	that.cancel(session.ID)

	session.Restart()

	if err = that.sessionService.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// OnRoundResolved registers the callback used to push scheduled results out.
func (that *gamePlayService) OnRoundResolved(fn ResolvedFunc) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.resolved = fn
}

// Close cancels every pending resolution.
func (that *gamePlayService) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sessionID := range that.pending {
		that.cancel(sessionID)
	}
}

func (that *gamePlayService) playerSession(ctx context.Context, playerID string) (*entity.Player, *entity.Session, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	session, err := that.sessionService.GetSessionByID(ctx, player.SessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return player, session, nil
}

// schedule arms the think-delay timer for a bot vs bot round.
// Must be called with mu held.
func (that *gamePlayService) schedule(playerID, sessionID string) {
	that.cancel(sessionID)

	token := &pendingRound{}
	that.pending[sessionID] = token

	token.timer = time.AfterFunc(that.thinkDelay, func() {
		that.autoResolve(playerID, sessionID, token)
	})

	metrics.PendingResolutions.Inc()
}

// cancel disarms a pending resolution, if any. Must be called with mu held.
func (that *gamePlayService) cancel(sessionID string) {
	token, ok := that.pending[sessionID]
	if !ok {
		return
	}

	token.timer.Stop()
	delete(that.pending, sessionID)

	metrics.PendingResolutions.Dec()
}

func (that *gamePlayService) autoResolve(playerID, sessionID string, token *pendingRound) {
	session, ok := that.resolvePending(sessionID, token)
	if !ok {
		return
	}

	that.notifyResolved(playerID, session)
}

// resolvePending plays out a scheduled bot vs bot round. A token that was
// cancelled, or replaced by a newer round, is dropped without touching the
// session.
func (that *gamePlayService) resolvePending(sessionID string, token *pendingRound) (*entity.Session, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.pending[sessionID] != token {
		return nil, false
	}

	delete(that.pending, sessionID)
	metrics.PendingResolutions.Dec()

	log := that.logger.With("method", "resolvePending", "sessionID", sessionID)

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	session, err := that.sessionService.GetSessionByID(ctx, sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return nil, false
	}

	if !session.IsPlaying() {
		log.Warn("session has no open round, dropping resolution")
		return nil, false
	}

	result, err := session.ApplyResult(that.botService.PickMove(), that.botService.PickMove())
	if err != nil {
		log.Error("failed to apply result", "error", err)
		return nil, false
	}

	if err = that.sessionService.UpdateSession(ctx, session); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, false
	}

	metrics.RoundsResolved.WithLabelValues(session.Mode, string(result.Outcome)).Inc()

	log.Info("round resolved", "outcome", result.Outcome)

	return session, true
}

func (that *gamePlayService) notifyResolved(playerID string, session *entity.Session) {
	that.mu.Lock()
	fn := that.resolved
	that.mu.Unlock()

	if fn != nil {
		fn(playerID, session)
	}
}
