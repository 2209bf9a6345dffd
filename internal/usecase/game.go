package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/rps-backend/internal/entity"
	"github.com/rocketscienceinc/rps-backend/internal/repository"
	"github.com/rocketscienceinc/rps-backend/internal/rps"
)

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)
	GetOrCreateSession(ctx context.Context, playerID string) (*entity.Session, error)
	CurrentSession(ctx context.Context, playerID string) (*entity.Session, error)

	StartRound(ctx context.Context, playerID string) (*entity.Session, error)
	PlayMove(ctx context.Context, playerID string, move rps.Move) (*entity.Session, error)
	ChangeMode(ctx context.Context, playerID, mode string) (*entity.Session, error)
	Restart(ctx context.Context, playerID string) (*entity.Session, error)
}

type playerService interface {
	CreatePlayer(ctx context.Context) (*entity.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*entity.Player, error)
}

type sessionService interface {
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
}

type gamePlayService interface {
	GetOrCreateSession(ctx context.Context, playerID string) (*entity.Session, error)
	StartRound(ctx context.Context, playerID string) (*entity.Session, error)
	PlayMove(ctx context.Context, playerID string, move rps.Move) (*entity.Session, error)
	ChangeMode(ctx context.Context, playerID, mode string) (*entity.Session, error)
	Restart(ctx context.Context, playerID string) (*entity.Session, error)
}

type gameUseCase struct {
	playerService   playerService
	sessionService  sessionService
	gamePlayService gamePlayService
}

func NewGameUseCase(playerService playerService, sessionService sessionService, gamePlayService gamePlayService) GameUseCase {
	return &gameUseCase{
		playerService:   playerService,
		sessionService:  sessionService,
		gamePlayService: gamePlayService,
	}
}

// GetOrCreatePlayer - returns the player for the given ID. An empty or stale
// ID yields a brand-new player, so a client can always reconnect.
func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player, err = that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) GetOrCreateSession(ctx context.Context, playerID string) (*entity.Session, error) {
	session, err := that.gamePlayService.GetOrCreateSession(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}

	return session, nil
}

// CurrentSession - reads the player's session without creating anything.
func (that *gameUseCase) CurrentSession(ctx context.Context, playerID string) (*entity.Session, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	session, err := that.sessionService.GetSessionByID(ctx, player.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *gameUseCase) StartRound(ctx context.Context, playerID string) (*entity.Session, error) {
	session, err := that.gamePlayService.StartRound(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	return session, nil
}

func (that *gameUseCase) PlayMove(ctx context.Context, playerID string, move rps.Move) (*entity.Session, error) {
	session, err := that.gamePlayService.PlayMove(ctx, playerID, move)
	if err != nil {
		return nil, fmt.Errorf("failed to play move: %w", err)
	}

	return session, nil
}

func (that *gameUseCase) ChangeMode(ctx context.Context, playerID, mode string) (*entity.Session, error) {
	session, err := that.gamePlayService.ChangeMode(ctx, playerID, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to change mode: %w", err)
	}

	return session, nil
}

func (that *gameUseCase) Restart(ctx context.Context, playerID string) (*entity.Session, error) {
	session, err := that.gamePlayService.Restart(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to restart session: %w", err)
	}

	return session, nil
}
