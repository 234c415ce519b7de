package controller

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/api/models"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/response"
	"ctchen222/Power-Tic-Tac-Toe/internal/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/room"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionController serves the stored state of live rooms.
type SessionController struct {
	sessionRepo repository.SessionRepository
}

func NewSessionController(sessionRepo repository.SessionRepository) *SessionController {
	return &SessionController{sessionRepo: sessionRepo}
}

// Get returns the latest snapshot of the room named by the id path parameter.
func (sc *SessionController) Get(c *gin.Context) {
	ctx := c.Request.Context()
	roomID := c.Param("id")

	record, err := sc.sessionRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, "session not found")
			return
		}
		slog.ErrorContext(ctx, "Failed to load session", "room.id", roomID, "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to load session")
		return
	}

	response.SuccessResponse(c, models.SessionResponse{
		RoomID:     record.RoomID,
		Difficulty: record.Difficulty,
		UpdatedAt:  record.UpdatedAt,
		Message:    room.Notice(record.Snapshot),
		State:      room.NewGameState(record.Snapshot),
	})
}
