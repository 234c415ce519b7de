package server

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/controller"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/response"
	"ctchen222/Power-Tic-Tac-Toe/internal/hub/types"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Registrar accepts clients for the hub.
type Registrar interface {
	Register() chan<- *types.RegistrationRequest
	Done() <-chan struct{}
}

// TokenParser resolves a login token to a player id.
type TokenParser interface {
	PlayerIDFromToken(token string) (string, error)
}

type Server struct {
	hub               Registrar
	tokens            TokenParser
	userController    *controller.UserController
	sessionController *controller.SessionController
	upgrader          websocket.Upgrader
	engine            *gin.Engine
}

func NewServer(h Registrar, tokens TokenParser, uc *controller.UserController, sc *controller.SessionController) *Server {
	s := &Server{
		hub:               h,
		tokens:            tokens,
		userController:    uc,
		sessionController: sc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine = s.routes()
	return s
}

// Engine returns the HTTP handler of the server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponse(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", s.userController.Register)
		users.POST("/login", s.userController.Login)
		users.POST("/guest", s.userController.GuestLogin)

		api.GET("/sessions/:id", s.sessionController.Get)
	}

	r.GET("/ws", s.handleWebSocket)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "HTTP request",
			"http.method", c.Request.Method,
			"http.path", c.FullPath(),
			"http.status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// handleWebSocket's only responsibility is to upgrade the connection and
// pass a registration request to the hub. It does not distinguish between
// new and reconnecting players.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	playerID, err := s.resolvePlayerID(c)
	if err != nil {
		slog.WarnContext(ctx, "Rejected websocket token", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid token")
		response.ErrorResponse(c, http.StatusUnauthorized, "invalid token")
		return
	}
	span.SetAttributes(attribute.String("player.id", playerID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	mode := c.Query("mode")
	difficulty := c.Query("difficulty")
	roomID := c.Query("roomId")
	span.SetAttributes(
		attribute.String("game.mode", mode),
		attribute.String("game.difficulty", difficulty),
		attribute.String("room.requested", roomID),
	)

	// The request context ends with this handler; the hub works on after it.
	req := &types.RegistrationRequest{
		Player:     player.NewPlayer(playerID, conn),
		RoomID:     roomID,
		Mode:       mode,
		Difficulty: difficulty,
		Ctx:        context.WithoutCancel(ctx),
	}
	select {
	case s.hub.Register() <- req:
	case <-s.hub.Done():
		slog.WarnContext(ctx, "Hub is stopped, dropping connection", "player.id", playerID)
		span.SetStatus(codes.Error, "Hub is stopped")
		_ = conn.Close()
	case <-c.Request.Context().Done():
		_ = conn.Close()
	}
}

// resolvePlayerID prefers the user behind a login token, then a
// client-supplied playerId, and otherwise makes up a guest id.
func (s *Server) resolvePlayerID(c *gin.Context) (string, error) {
	if token := c.Query("token"); token != "" {
		return s.tokens.PlayerIDFromToken(token)
	}
	if id := c.Query("playerId"); id != "" {
		return id, nil
	}
	return uuid.New().String(), nil
}
