package http

import (
	"github.com/gin-gonic/gin"

	"reelhub/internal/protocols/websocket"
	"reelhub/internal/repository"
)

// streamUpdates streams storage change events for the caller's favorites
// and the shared leaderboard over a WebSocket connection.
func (s *Server) streamUpdates(c *gin.Context) {
	userID, _ := GetUserID(c)

	streamer := websocket.NewStreamer(s.store)
	streamer.Serve(c, []string{
		repository.FavoritesCollection(userID),
		repository.CollectionLeaderboard,
	})
}
