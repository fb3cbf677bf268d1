package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/martrack-dev/martrack/internal/auth"
	"github.com/martrack-dev/martrack/internal/models"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest represents an admin panel login request
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDetail represents user information returned in auth responses
type UserDetail struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// AuthResponse represents a login/register response
type AuthResponse struct {
	Token string     `json:"token"`
	User  UserDetail `json:"user"`
}

// AdminLoginResponse represents an admin login response
type AdminLoginResponse struct {
	Token string `json:"token"`
	Admin struct {
		Username string `json:"username"`
	} `json:"admin"`
}

// fieldErrors converts validator errors into a field -> message map so the
// frontend can render per-field feedback. Returns nil for non-validation
// errors.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "email":
			out[field] = "Must be a valid email address"
		case "min":
			out[field] = "Must be at least " + fe.Param() + " characters"
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}

func (s *Server) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := fieldErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if !s.bindJSON(c, &req) {
		return
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check existing user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	s.logger.Info().Str("email", user.Email).Msg("User registered")
	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  UserDetail{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if !s.bindJSON(c, &req) {
		return
	}

	var user models.User
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error().Err(err).Msg("Failed to look up user")
		}
		// Same response whether the account exists or not
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  UserDetail{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) adminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if !s.bindJSON(c, &req) {
		return
	}

	if s.config.Admin.Password == "" {
		s.logger.Error().Msg("Admin login attempted but ADMIN_PASSWORD is not configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if req.Username != s.config.Admin.Username || req.Password != s.config.Admin.Password {
		s.logger.Warn().Str("username", req.Username).Msg("Failed admin login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateAdminToken(req.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	s.logger.Info().Str("username", req.Username).Msg("Admin logged in")

	resp := AdminLoginResponse{Token: token}
	resp.Admin.Username = req.Username
	c.JSON(http.StatusOK, resp)
}
