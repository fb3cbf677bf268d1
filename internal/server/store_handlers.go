package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martrack-dev/martrack/internal/models"
	"github.com/martrack-dev/martrack/internal/secrets"
)

// AddStoreRequest represents a request to connect a marketplace store
type AddStoreRequest struct {
	Type     string `json:"type" binding:"required,oneof=wb ozon"`
	APIToken string `json:"api_token" binding:"required"`
}

func (s *Server) listStores(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	stores := []models.Store{}
	if err := s.db.Where("user_id = ?", user.ID).Order("created_at").Find(&stores).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list stores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stores"})
		return
	}

	c.JSON(http.StatusOK, stores)
}

func (s *Server) addStore(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req AddStoreRequest
	if !s.bindJSON(c, &req) {
		return
	}

	// Marketplace credentials are never stored in the clear
	encrypted, err := secrets.Encrypt(req.APIToken, s.config.Server.EncryptionKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encrypt store API token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add store"})
		return
	}

	store := models.Store{
		UserID:   user.ID,
		Type:     req.Type,
		APIToken: encrypted,
	}
	if err := s.db.Create(&store).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add store"})
		return
	}

	s.logger.Info().Str("store_id", store.ID).Str("type", store.Type).Int("user_id", user.ID).Msg("Store connected")
	c.JSON(http.StatusCreated, store)
}

func (s *Server) deleteStore(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id := c.Param("id")

	var store models.Store
	if err := s.db.Where("id = ? AND user_id = ?", id, user.ID).First(&store).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	// Products pulled from the store go with it
	if err := s.db.Where("store_id = ?", store.ID).Delete(&models.Product{}).Error; err != nil {
		s.logger.Error().Err(err).Str("store_id", store.ID).Msg("Failed to delete store products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}

	if err := s.db.Delete(&store).Error; err != nil {
		s.logger.Error().Err(err).Str("store_id", store.ID).Msg("Failed to delete store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}
