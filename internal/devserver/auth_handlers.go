package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopd-dev/shopd/internal/auth"
	"github.com/shopd-dev/shopd/internal/models"
)

// SetupRequest represents the first-run setup request
type SetupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login response. The role is returned exactly as
// stored, which is uppercase.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// RegisterRequest represents a customer registration request
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// setupFirstAdmin creates the first admin account. Only works while no users
// exist; the JWT secret is generated and persisted here.
func (s *Server) setupFirstAdmin(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"details": "Setup already completed"}})
		return
	}

	// Generate JWT secret (64 hex characters = 32 bytes of randomness)
	jwtSecretBytes := make([]byte, 32)
	if _, err := rand.Read(jwtSecretBytes); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate JWT secret")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to initialize system"}})
		return
	}
	jwtSecret := hex.EncodeToString(jwtSecretBytes)

	conf := &models.Config{JWTSecret: jwtSecret}
	if err := s.db.Create(conf).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to initialize system"}})
		return
	}

	auth.InitializeJWT(jwtSecret)

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to create user"}})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create admin user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to create user"}})
		return
	}

	token, err := auth.GenerateToken(user.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to generate token"}})
		return
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("First admin user created")

	respondData(c, http.StatusOK, LoginResponse{
		Token:    token,
		Role:     user.Role,
		ID:       user.ID,
		FullName: user.FullName,
	})
}

// login authenticates with email and password
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid email or password"}})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Account is deactivated"}})
		return
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid email or password"}})
		return
	}

	token, err := auth.GenerateToken(user.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to generate token"}})
		return
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User logged in")

	respondData(c, http.StatusOK, LoginResponse{
		Token:    token,
		Role:     user.Role,
		ID:       user.ID,
		FullName: user.FullName,
	})
}

// register creates a customer account
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to create user"}})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.db.Create(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"details": "Email is already registered"}})
		return
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	respondData(c, http.StatusCreated, user)
}

// getProfile returns the authenticated user's account record
func (s *Server) getProfile(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"details": "Unauthorized"}})
		return
	}

	var user models.User
	if err := s.db.Where("id = ?", sessionData.UserID).First(&user).Error; err != nil {
		s.logger.Error().Err(err).Int("user_id", sessionData.UserID).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	respondData(c, http.StatusOK, user)
}
