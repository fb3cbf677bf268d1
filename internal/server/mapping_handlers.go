package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martrack-dev/martrack/internal/models"
)

// CreateMappingRequest links two products that represent the same item
// on different marketplaces
type CreateMappingRequest struct {
	Product1ID string `json:"product1_id" binding:"required"`
	Product2ID string `json:"product2_id" binding:"required"`
}

// ownsProduct reports whether the product belongs to one of the user's stores
func (s *Server) ownsProduct(userID int, productID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Product{}).
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("products.id = ? AND stores.user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *Server) listMappings(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	mappings := []models.Mapping{}
	if err := s.db.Where("user_id = ?", user.ID).Order("created_at").Find(&mappings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list mappings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mappings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mappings": mappings})
}

func (s *Server) createMapping(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateMappingRequest
	if !s.bindJSON(c, &req) {
		return
	}

	if req.Product1ID == req.Product2ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot map a product to itself"})
		return
	}

	for _, productID := range []string{req.Product1ID, req.Product2ID} {
		owns, err := s.ownsProduct(user.ID, productID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to check product ownership")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mapping"})
			return
		}
		if !owns {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
	}

	mapping := models.Mapping{
		UserID:     user.ID,
		Product1ID: req.Product1ID,
		Product2ID: req.Product2ID,
	}
	if err := s.db.Create(&mapping).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create mapping")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mapping"})
		return
	}

	c.JSON(http.StatusCreated, mapping)
}

func (s *Server) deleteMapping(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id := c.Param("id")

	var mapping models.Mapping
	if err := s.db.Where("id = ? AND user_id = ?", id, user.ID).First(&mapping).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
		return
	}

	if err := s.db.Delete(&mapping).Error; err != nil {
		s.logger.Error().Err(err).Str("mapping_id", mapping.ID).Msg("Failed to delete mapping")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete mapping"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mapping deleted"})
}
