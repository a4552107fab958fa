package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reelhub/internal/core"
	"reelhub/pkg/models"
)

type startChallengeRequest struct {
	Type     string `json:"type" binding:"required"`
	Duration int    `json:"duration"` // seconds, 0 = open-ended
}

type failChallengeRequest struct {
	Reason string `json:"reason"`
}

type videoWatchedRequest struct {
	Heat models.Heat `json:"heat"`
}

type boostRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// getChallengeTypes returns the static challenge catalog
func (s *Server) getChallengeTypes(c *gin.Context) {
	c.JSON(200, models.OK(s.challengeSvc.Types()))
}

// startChallenge begins a new session for the user
func (s *Server) startChallenge(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req startChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("challenge type is required"))
		return
	}

	status, err := s.challengeSvc.Start(userID, req.Type, req.Duration)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnknownChallengeType):
			c.JSON(400, models.Fail("unknown challenge type"))
		case errors.Is(err, core.ErrChallengeInProgress):
			c.JSON(409, models.Fail("a challenge is already in progress"))
		default:
			c.JSON(500, models.Fail("failed to start challenge"))
		}
		return
	}
	c.JSON(201, models.OK(status))
}

// session resolves the caller's live session or writes a 404
func (s *Server) session(c *gin.Context) (*core.ChallengeSession, bool) {
	userID, _ := GetUserID(c)
	session, err := s.challengeSvc.Session(userID)
	if err != nil {
		c.JSON(404, models.Fail("no active challenge"))
		return nil, false
	}
	return session, true
}

// pauseChallenge stops elapsed-time accumulation (no-op unless active)
func (s *Server) pauseChallenge(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	session.Pause()
	c.JSON(200, models.OK(session.Status()))
}

// resumeChallenge restarts the tick (no-op unless paused)
func (s *Server) resumeChallenge(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	session.Resume()
	c.JSON(200, models.OK(session.Status()))
}

// recordVideoWatched counts a finished video within the session
func (s *Server) recordVideoWatched(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var req videoWatchedRequest
	_ = c.ShouldBindJSON(&req) // heat is optional

	session.RecordVideoWatched(req.Heat)
	c.JSON(200, models.OK(session.Status()))
}

// recordSkip counts a skip; non-skippable types fail immediately
func (s *Server) recordSkip(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	if snapshot := session.RecordSkip(); snapshot != nil {
		c.JSON(200, models.OK(snapshot))
		return
	}
	c.JSON(200, models.OK(session.Status()))
}

// completeChallenge freezes the session as successful and returns the
// snapshot. Forwarding it to the stats engine and leaderboard is the
// client's explicit next step.
func (s *Server) completeChallenge(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	snapshot, err := session.Complete()
	if err != nil {
		c.JSON(409, models.Fail(err.Error()))
		return
	}
	c.JSON(200, models.OK(snapshot))
}

// failChallenge freezes the session as failed
func (s *Server) failChallenge(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var req failChallengeRequest
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = "gave_up"
	}

	snapshot, err := session.Fail(req.Reason)
	if err != nil {
		c.JSON(409, models.Fail(err.Error()))
		return
	}
	c.JSON(200, models.OK(snapshot))
}

// endChallenge returns the user to idle, clearing session state
func (s *Server) endChallenge(c *gin.Context) {
	userID, _ := GetUserID(c)
	if err := s.challengeSvc.End(userID); err != nil {
		c.JSON(404, models.Fail("no active challenge"))
		return
	}
	c.JSON(200, models.OK(nil))
}

// boostIntensity applies a one-shot intensity bump
func (s *Server) boostIntensity(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var req boostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("amount is required"))
		return
	}

	session.Meter().Boost(req.Amount)
	c.JSON(200, models.OK(session.Status()))
}

// getChallengeState returns the live session read-model
func (s *Server) getChallengeState(c *gin.Context) {
	userID, _ := GetUserID(c)
	session, err := s.challengeSvc.Session(userID)
	if err != nil {
		c.JSON(200, models.OK(models.ChallengeStatus{State: models.ChallengeIdle}))
		return
	}
	c.JSON(200, models.OK(session.Status()))
}
