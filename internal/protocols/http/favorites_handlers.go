package http

import (
	"github.com/gin-gonic/gin"

	"reelhub/pkg/models"
)

// listFavorites returns the user's saved items, newest first
func (s *Server) listFavorites(c *gin.Context) {
	userID, _ := GetUserID(c)

	favorites, err := s.favoritesSvc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, models.Fail("failed to list favorites"))
		return
	}
	c.JSON(200, models.OK(favorites))
}

// addFavorite saves an item
func (s *Server) addFavorite(c *gin.Context) {
	userID, _ := GetUserID(c)

	var fav models.Favorite
	if err := c.ShouldBindJSON(&fav); err != nil {
		c.JSON(400, models.Fail("invalid favorite payload"))
		return
	}

	if err := s.favoritesSvc.Add(c.Request.Context(), userID, &fav); err != nil {
		c.JSON(400, models.Fail(err.Error()))
		return
	}
	c.JSON(201, models.OK(fav))
}

// removeFavorite deletes a saved item by id
func (s *Server) removeFavorite(c *gin.Context) {
	userID, _ := GetUserID(c)

	if err := s.favoritesSvc.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(400, models.Fail(err.Error()))
		return
	}
	c.JSON(200, models.OK(nil))
}
