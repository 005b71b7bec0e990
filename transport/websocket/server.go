package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const (
	readTimeout     = 10 * time.Second
	idleTimeout     = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameManager interface {
	StartGame(ctx context.Context, mode string) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, id string) (*entity.Game, int, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	EndGame(ctx context.Context, id string) error

	StartUltimateGame(ctx context.Context) (*entity.UltimateGame, error)
	ResetUltimateGame(ctx context.Context, id string) (*entity.UltimateGame, error)
	MakeUltimateTurn(ctx context.Context, id string, move entity.UltimateMove) (*entity.UltimateGame, error)
	GetUltimateGame(ctx context.Context, id string) (*entity.UltimateGame, error)
	EndUltimateGame(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, conn *websocket.Conn, message *Message) error

type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	defaultMode string

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

// New builds the websocket server. defaultMode is used by game:new requests that name no mode.
func New(logger *slog.Logger, gameManager gameManager, defaultMode string) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameManager: gameManager,
		defaultMode: defaultMode,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionGameNew:   server.handleNewGame,
		actionGameTurn:  server.handleGameTurn,
		actionGameBot:   server.handleBotTurn,
		actionGameState: server.handleGameState,
		actionGameReset: server.handleGameReset,
		actionGameLeave: server.handleGameLeave,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("WebSocket connection closed")
				return nil
			}

			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if err = that.sendErrorResponse(conn, "", "malformed message"); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, conn, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}
