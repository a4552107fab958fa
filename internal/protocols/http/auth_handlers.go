package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reelhub/internal/core"
	"reelhub/pkg/models"
)

// register creates a new user account
func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("username and password are required"))
		return
	}

	user, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrUsernameTaken) {
			c.JSON(409, models.Fail("username already taken"))
			return
		}
		c.JSON(400, models.Fail(err.Error()))
		return
	}

	c.JSON(201, models.OK(user))
}

// login authenticates and returns a JWT token
func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.Fail("username and password are required"))
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(401, models.Fail("invalid username or password"))
		return
	}

	c.JSON(200, models.OK(resp))
}
