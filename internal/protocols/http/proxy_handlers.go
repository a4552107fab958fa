package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"reelhub/pkg/models"
)

// getSubreddits returns the configured subreddit list
func (s *Server) getSubreddits(c *gin.Context) {
	c.JSON(200, models.SubredditsResponse{Subreddits: s.listingSvc.Subreddits()})
}

// getDefaultListing proxies the first configured subreddit's hot listing
func (s *Server) getDefaultListing(c *gin.Context) {
	s.serveListing(c, "")
}

// getListing proxies one subreddit listing page, Reddit-native shape
func (s *Server) getListing(c *gin.Context) {
	s.serveListing(c, c.Param("subreddit"))
}

func (s *Server) serveListing(c *gin.Context, subreddit string) {
	body, err := s.listingSvc.Listing(c.Request.Context(), subreddit, c.Query("after"))
	if err != nil {
		c.JSON(502, models.APIResponse{
			Success:   false,
			Error:     "failed to fetch listing",
			Timestamp: time.Now(),
		})
		return
	}
	c.Data(200, "application/json", body)
}

// getRandomReels returns a shuffled batch of random video items
func (s *Server) getRandomReels(c *gin.Context) {
	reels, err := s.listingSvc.RandomReels(c.Request.Context())
	if err != nil {
		c.JSON(502, models.APIResponse{
			Success:   false,
			Error:     "failed to fetch reels",
			Timestamp: time.Now(),
		})
		return
	}
	c.JSON(200, models.ReelsResponse{Reels: reels})
}
