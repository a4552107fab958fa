package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reelhub/internal/core"
	"reelhub/pkg/models"
)

type gamVideoWatchRequest struct {
	Heat models.Heat `json:"heat" binding:"required"`
}

type challengeCompleteRequest struct {
	ChallengeType string `json:"challenge_type" binding:"required"`
	Duration      int    `json:"duration"` // seconds
}

type continuousWatchRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

type incrementStatRequest struct {
	Stat   string `json:"stat" binding:"required"`
	Amount int    `json:"amount"`
}

// getSummary returns stats, unlocked set, level and level progress
func (s *Server) getSummary(c *gin.Context) {
	userID, _ := GetUserID(c)

	summary, err := s.achieveSvc.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, models.Fail("failed to load stats"))
		return
	}
	c.JSON(200, models.OK(summary))
}

// getAchievements returns the catalog with unlock state and progress
func (s *Server) getAchievements(c *gin.Context) {
	userID, _ := GetUserID(c)

	achievements, err := s.achieveSvc.Achievements(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, models.Fail("failed to load achievements"))
		return
	}
	c.JSON(200, models.OK(achievements))
}

// getAchievementProgress returns one achievement's display progress
func (s *Server) getAchievementProgress(c *gin.Context) {
	userID, _ := GetUserID(c)

	progress, err := s.achieveSvc.GetProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrUnknownAchievement) {
			c.JSON(404, models.Fail("unknown achievement"))
			return
		}
		c.JSON(500, models.Fail("failed to compute progress"))
		return
	}
	c.JSON(200, models.OK(gin.H{"id": c.Param("id"), "progress": progress}))
}

// recordGamificationVideoWatch applies a watched video to the stats engine
func (s *Server) recordGamificationVideoWatch(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req gamVideoWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("heat is required"))
		return
	}

	summary, err := s.achieveSvc.RecordVideoWatch(c.Request.Context(), userID, req.Heat)
	if err != nil {
		c.JSON(500, models.Fail("failed to record video watch"))
		return
	}
	c.JSON(200, models.OK(summary))
}

// recordChallengeComplete applies a completed-challenge snapshot to the
// stats engine
func (s *Server) recordChallengeComplete(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req challengeCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("challenge_type is required"))
		return
	}

	summary, err := s.achieveSvc.RecordChallengeComplete(c.Request.Context(), userID, req.ChallengeType, req.Duration)
	if err != nil {
		c.JSON(500, models.Fail("failed to record challenge completion"))
		return
	}
	c.JSON(200, models.OK(summary))
}

// recordContinuousWatch raises the continuous-watch high-water-mark
func (s *Server) recordContinuousWatch(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req continuousWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("minutes is required"))
		return
	}

	summary, err := s.achieveSvc.RecordContinuousWatch(c.Request.Context(), userID, req.Minutes)
	if err != nil {
		c.JSON(500, models.Fail("failed to record watch time"))
		return
	}
	c.JSON(200, models.OK(summary))
}

// incrementStat bumps an arbitrary stat counter
func (s *Server) incrementStat(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req incrementStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("stat is required"))
		return
	}

	summary, err := s.achieveSvc.IncrementStat(c.Request.Context(), userID, req.Stat, req.Amount)
	if err != nil {
		c.JSON(500, models.Fail("failed to increment stat"))
		return
	}
	c.JSON(200, models.OK(summary))
}

// clearNewlyUnlocked acknowledges the transient unlock toast
func (s *Server) clearNewlyUnlocked(c *gin.Context) {
	userID, _ := GetUserID(c)
	s.achieveSvc.ClearNewlyUnlocked(userID)
	c.JSON(200, models.OK(nil))
}

// resetStats wipes the user's stats and unlocked achievements
func (s *Server) resetStats(c *gin.Context) {
	userID, _ := GetUserID(c)

	if err := s.achieveSvc.Reset(c.Request.Context(), userID); err != nil {
		c.JSON(500, models.Fail("failed to reset stats"))
		return
	}
	c.JSON(200, models.OK(nil))
}
