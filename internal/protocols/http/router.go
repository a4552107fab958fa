// Package http exposes the REST API: the Reddit proxy surface, auth, and the
// user-scoped gamification, favorites and leaderboard endpoints.
package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"reelhub/internal/core"
	"reelhub/internal/storage"
	"reelhub/pkg/config"
)

// Server manages the HTTP REST API server
type Server struct {
	router       *gin.Engine
	config       *config.Config
	authSvc      core.AuthService
	listingSvc   core.ListingService
	favoritesSvc core.FavoritesService
	challengeSvc core.ChallengeService
	achieveSvc   core.AchievementService
	boardSvc     core.LeaderboardService
	store        storage.Store
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	authSvc core.AuthService,
	listingSvc core.ListingService,
	favoritesSvc core.FavoritesService,
	challengeSvc core.ChallengeService,
	achieveSvc core.AchievementService,
	boardSvc core.LeaderboardService,
	store storage.Store,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	s := &Server{
		router:       router,
		config:       cfg,
		authSvc:      authSvc,
		listingSvc:   listingSvc,
		favoritesSvc: favoritesSvc,
		challengeSvc: challengeSvc,
		achieveSvc:   achieveSvc,
		boardSvc:     boardSvc,
		store:        store,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		// Proxy routes (public, Reddit-native passthrough for listings)
		api.GET("/subreddits", s.getSubreddits)
		api.GET("/reddit", s.getDefaultListing)
		api.GET("/reddit/:subreddit", s.getListing)
		api.GET("/reels/random", s.getRandomReels)

		// Leaderboard (public read, authenticated write)
		api.GET("/leaderboard", s.getLeaderboard)
		api.POST("/leaderboard", AuthMiddleware(s.authSvc), s.addLeaderboardEntry)

		// Challenge catalog is public; everything session-scoped needs auth
		api.GET("/challenges/types", s.getChallengeTypes)

		protected := api.Group("", AuthMiddleware(s.authSvc))
		{
			// Favorites
			protected.GET("/favorites", s.listFavorites)
			protected.POST("/favorites", s.addFavorite)
			protected.DELETE("/favorites/:id", s.removeFavorite)

			// Challenge session verbs
			challenges := protected.Group("/challenges")
			{
				challenges.POST("/start", s.startChallenge)
				challenges.POST("/pause", s.pauseChallenge)
				challenges.POST("/resume", s.resumeChallenge)
				challenges.POST("/video", s.recordVideoWatched)
				challenges.POST("/skip", s.recordSkip)
				challenges.POST("/complete", s.completeChallenge)
				challenges.POST("/fail", s.failChallenge)
				challenges.POST("/end", s.endChallenge)
				challenges.POST("/boost", s.boostIntensity)
				challenges.GET("/state", s.getChallengeState)
			}

			// Gamification engine
			gamification := protected.Group("/gamification")
			{
				gamification.GET("/summary", s.getSummary)
				gamification.GET("/achievements", s.getAchievements)
				gamification.GET("/achievements/:id/progress", s.getAchievementProgress)
				gamification.POST("/video-watch", s.recordGamificationVideoWatch)
				gamification.POST("/challenge-complete", s.recordChallengeComplete)
				gamification.POST("/continuous-watch", s.recordContinuousWatch)
				gamification.POST("/increment", s.incrementStat)
				gamification.POST("/newly-unlocked/clear", s.clearNewlyUnlocked)
				gamification.POST("/reset", s.resetStats)
			}

			// Storage change stream
			protected.GET("/ws/updates", s.streamUpdates)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
