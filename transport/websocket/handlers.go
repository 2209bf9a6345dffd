package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/rps"
)

func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.game.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	session, err := that.game.GetOrCreateSession(ctx, player.ID)
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new session")
	}

	that.registerConnection(player.ID, conn)

	payloadResp := Payload{
		Player:  player,
		Session: session,
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID, "sessionID", session.ID)

	return nil
}

func (that *Server) handleStartRound(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleStartRound")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	session, err := that.game.StartRound(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrRoundInProgress) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to start round", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to start round")
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Session: session}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("round started", "sessionID", session.ID)

	return nil
}

func (that *Server) handlePlayMove(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handlePlayMove")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Move == "" {
		log.Error("Move is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Move is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	session, err := that.game.PlayMove(ctx, payloadReq.Player.ID, rps.Move(payloadReq.Move))
	if errors.Is(err, apperror.ErrInvalidMove) ||
		errors.Is(err, apperror.ErrNoActiveRound) ||
		errors.Is(err, apperror.ErrAutoRound) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to play move", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to play move")
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Session: session}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("round resolved", "sessionID", session.ID, "outcome", session.LastResult.Outcome)

	return nil
}

func (that *Server) handleChangeMode(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleChangeMode")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Mode == "" {
		log.Error("Mode is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Mode is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	session, err := that.game.ChangeMode(ctx, payloadReq.Player.ID, payloadReq.Mode)
	if errors.Is(err, apperror.ErrUnknownMode) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to change mode", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to change mode")
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Session: session}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("mode changed", "sessionID", session.ID, "mode", session.Mode)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	session, err := that.game.Restart(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to restart session", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to restart session")
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Session: session}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("session restarted", "sessionID", session.ID)

	return nil
}
