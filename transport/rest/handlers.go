package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/rps-backend/internal/repository"
)

func (that *Server) handlePing(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGetSession - returns the current session of a player. Useful for
// debugging and for clients that want a snapshot without a socket.
func (that *Server) handleGetSession(c *gin.Context) {
	playerID := c.Param("id")

	session, err := that.game.CurrentSession(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) || errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		that.logger.Error("failed to get session", "playerID", playerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

		return
	}

	c.JSON(http.StatusOK, session)
}
