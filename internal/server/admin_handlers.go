package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martrack-dev/martrack/internal/models"
)

// AdminStats holds entity counts for the admin dashboard charts
type AdminStats struct {
	Users    int64 `json:"users"`
	Stores   int64 `json:"stores"`
	Products int64 `json:"products"`
	Mappings int64 `json:"mappings"`
}

func (s *Server) adminStats(c *gin.Context) {
	var stats AdminStats

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &stats.Users},
		{&models.Store{}, &stats.Stores},
		{&models.Product{}, &stats.Products},
		{&models.Mapping{}, &stats.Mappings},
	}

	for _, entry := range counts {
		if err := s.db.Model(entry.model).Count(entry.dst).Error; err != nil {
			s.logger.Error().Err(err).Msg("Failed to count entities")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get statistics"})
			return
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminListUsers(c *gin.Context) {
	users := []models.User{}
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) adminDeleteUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Cascade: the user's stores, their products, and their mappings
	var storeIDs []string
	if err := s.db.Model(&models.Store{}).Where("user_id = ?", user.ID).Pluck("id", &storeIDs).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to collect user stores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if len(storeIDs) > 0 {
		if err := s.db.Where("store_id IN ?", storeIDs).Delete(&models.Product{}).Error; err != nil {
			s.logger.Error().Err(err).Msg("Failed to delete user products")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
	}

	if err := s.db.Where("user_id = ?", user.ID).Delete(&models.Store{}).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete user stores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if err := s.db.Where("user_id = ?", user.ID).Delete(&models.Mapping{}).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete user mappings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if err := s.db.Delete(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	s.logger.Info().Int("user_id", user.ID).Msg("User deleted by admin")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (s *Server) adminListStores(c *gin.Context) {
	stores := []models.Store{}
	if err := s.db.Order("created_at").Find(&stores).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list stores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (s *Server) adminDeleteStore(c *gin.Context) {
	id := c.Param("id")

	var store models.Store
	if err := s.db.Where("id = ?", id).First(&store).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	if err := s.db.Where("store_id = ?", store.ID).Delete(&models.Product{}).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete store products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}

	if err := s.db.Delete(&store).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}

func (s *Server) adminListProducts(c *gin.Context) {
	products := []models.Product{}
	if err := s.db.Order("created_at").Find(&products).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) adminDeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := s.db.Delete(&product).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (s *Server) adminListMappings(c *gin.Context) {
	mappings := []models.Mapping{}
	if err := s.db.Order("created_at").Find(&mappings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list mappings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mappings"})
		return
	}
	c.JSON(http.StatusOK, mappings)
}

func (s *Server) adminDeleteMapping(c *gin.Context) {
	id := c.Param("id")

	var mapping models.Mapping
	if err := s.db.Where("id = ?", id).First(&mapping).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
		return
	}

	if err := s.db.Delete(&mapping).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete mapping")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete mapping"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mapping deleted"})
}
