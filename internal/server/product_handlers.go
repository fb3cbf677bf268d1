package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martrack-dev/martrack/internal/models"
)

func (s *Server) listProducts(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	products := []models.Product{}
	err := s.db.
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("stores.user_id = ?", user.ID).
		Order("products.created_at").
		Find(&products).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
