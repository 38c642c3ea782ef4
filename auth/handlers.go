package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/config"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("user with this email already exists")

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=user seller"`
	ShopName string `json:"shop_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUser hashes the password and stores a new account.
func CreateUser(db *gorm.DB, name, email, password string, role models.Role) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return models.User{}, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{Name: name, Email: email, PasswordHash: hash, Role: role, IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// POST /auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error(), "code": "invalid_input"})
			return
		}

		user, err := CreateUser(db.WithContext(c.Request.Context()), req.Name, req.Email, req.Password, models.Role(req.Role))
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "conflict"})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("❌ Registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User registration failed", "code": "internal"})
			return
		}

		if req.Role == string(models.RoleSeller) && req.ShopName != "" {
			db.Model(&user).Update("shop_name", req.ShopName)
		}

		log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("👤 User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": user.ID})
	}
}

// POST /auth/login
func Login(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error(), "code": "invalid_input"})
			return
		}

		var user models.User
		err := db.WithContext(c.Request.Context()).
			Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
			First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "code": "internal"})
			return
		}
		if err != nil || !CheckPassword(user.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "unauthenticated"})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled", "code": "forbidden"})
			return
		}

		token, err := IssueToken([]byte(cfg.JWTSecret), user, cfg.JWTExpiresIn)
		if err != nil {
			log.Error().Err(err).Msg("❌ Failed to issue token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token", "code": "internal"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, token, int(cfg.JWTExpiresIn.Seconds()), "/", "", cfg.CookieSecure, true)
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user, "token": token})
	}
}

// POST /auth/logout
func Logout(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, "", -1, "/", "", cfg.CookieSecure, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
