package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/rps-backend/internal/entity"
	"github.com/rocketscienceinc/rps-backend/internal/rps"
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)
	GetOrCreateSession(ctx context.Context, playerID string) (*entity.Session, error)

	StartRound(ctx context.Context, playerID string) (*entity.Session, error)
	PlayMove(ctx context.Context, playerID string, move rps.Move) (*entity.Session, error)
	ChangeMode(ctx context.Context, playerID, mode string) (*entity.Session, error)
	Restart(ctx context.Context, playerID string) (*entity.Session, error)
}

// connection wraps one client socket. Writes are serialized because pushed
// round results can race with handler responses.
type connection struct {
	conn *websocket.Conn

	writeMutex sync.Mutex
}

func (that *connection) writeJSON(message *Message) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := that.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger *slog.Logger
	game   gameUseCase

	upgrader websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[string]*connection

	handlers map[string]func(ctx context.Context, conn *connection, message *Message) error
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	server := &Server{
		logger: logger,
		game:   game,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},

		connections: make(map[string]*connection),
		handlers:    make(map[string]func(context.Context, *connection, *Message) error),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionRoundStart] = server.handleStartRound
	server.handlers[actionRoundMove] = server.handlePlayMove
	server.handlers[actionSessionMode] = server.handleChangeMode
	server.handlers[actionSessionNew] = server.handleNewGame

	return server
}

// Start - runs the WebSocket server until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		if err := srv.Shutdown(context.Background()); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the request and reads messages until the client
// goes away.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{conn: wsConn}
	defer that.closeConnection(conn)

	log.Info("WebSocket connection established", "remote", wsConn.RemoteAddr().String())

	that.handleMessages(ctx, conn)
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}

			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err := that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				log.Error("failed to send error response", "error", err)
			}

			continue
		}

		if err := handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// NotifyRoundResolved pushes the result of a scheduled round to the owning
// player, if they are still connected.
func (that *Server) NotifyRoundResolved(playerID string, session *entity.Session) {
	log := that.logger.With("method", "NotifyRoundResolved", "playerID", playerID)

	that.connectionsMutex.RLock()
	conn, ok := that.connections[playerID]
	that.connectionsMutex.RUnlock()

	if !ok {
		log.Warn("connection not found for player")
		return
	}

	payload := Payload{
		Session: session,
	}

	if err := that.sendMessage(conn, actionRoundResult, payload); err != nil {
		log.Error("failed to push round result", "error", err)
	}
}

func (that *Server) registerConnection(playerID string, conn *connection) {
	that.connectionsMutex.Lock()
	that.connections[playerID] = conn
	that.connectionsMutex.Unlock()
}

func (that *Server) closeConnection(conn *connection) {
	log := that.logger.With("method", "closeConnection")

	that.connectionsMutex.Lock()
	for playerID, existing := range that.connections {
		if existing == conn {
			delete(that.connections, playerID)
			log.Info("player disconnected", "playerID", playerID)
			break
		}
	}
	that.connectionsMutex.Unlock()

	_ = conn.conn.Close()
}

func (that *Server) sendMessage(conn *connection, action string, payload Payload) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := &Message{
		Action:  action,
		Payload: rawPayload,
	}

	return conn.writeJSON(message)
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	payload := Payload{Error: errorMsg}

	if err := that.sendMessage(conn, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
