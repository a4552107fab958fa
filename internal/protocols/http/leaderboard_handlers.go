package http

import (
	"github.com/gin-gonic/gin"

	"reelhub/pkg/models"
)

type addLeaderboardEntryRequest struct {
	ChallengeType string  `json:"challenge_type" binding:"required"`
	Duration      int     `json:"duration" binding:"required"`
	VideosWatched int     `json:"videos_watched"`
	Intensity     float64 `json:"intensity"`
}

// getLeaderboard returns the ranked board. Public: no auth required, so
// usernames on entries are whatever the submitter recorded.
func (s *Server) getLeaderboard(c *gin.Context) {
	timeFilter := c.DefaultQuery("window", models.WindowAll)
	challengeFilter := c.DefaultQuery("challenge", "all")

	board, err := s.boardSvc.Top(c.Request.Context(), timeFilter, challengeFilter, models.LeaderboardDisplayLimit)
	if err != nil {
		c.JSON(500, models.Fail("failed to load leaderboard"))
		return
	}
	c.JSON(200, models.OK(board))
}

// addLeaderboardEntry records a completed challenge on the board
func (s *Server) addLeaderboardEntry(c *gin.Context) {
	var req addLeaderboardEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("challenge_type and duration are required"))
		return
	}

	user, ok := GetUser(c)
	if !ok {
		c.JSON(401, models.Fail("authentication required"))
		return
	}

	entry := &models.LeaderboardEntry{
		Username:      user.Username,
		ChallengeType: req.ChallengeType,
		Duration:      req.Duration,
		VideosWatched: req.VideosWatched,
		Intensity:     req.Intensity,
	}

	saved, err := s.boardSvc.Add(c.Request.Context(), entry)
	if err != nil {
		c.JSON(500, models.Fail("failed to record entry"))
		return
	}
	c.JSON(201, models.OK(saved))
}
