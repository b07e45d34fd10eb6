package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"iconstore-backend/config"
	"iconstore-backend/dtos"
	"iconstore-backend/models"
	"iconstore-backend/utils"
)

type AuthHandler struct {
	DB *gorm.DB
}

func (h *AuthHandler) nativeOnly(c *gin.Context) bool {
	if config.AuthMode() != config.AuthModeNative {
		respondError(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
			"Local accounts are disabled, use the identity provider")
		return false
	}
	return true
}

func (h *AuthHandler) createUser(c *gin.Context, email, password, name, role string) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	if err := h.DB.Where("email = ?", normalized).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, CodeEmailExists, "Email is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to create user")
		return
	}

	user := models.User{
		Email:        normalized,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if !h.nativeOnly(c) {
		return
	}
	var dto dtos.RegisterRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}
	h.createUser(c, dto.Email, dto.Password, dto.Name, models.RoleUser)
}

// RegisterAdmin creates an ADMIN account when the shared bootstrap secret
// matches. With no secret configured the endpoint is effectively disabled.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	if !h.nativeOnly(c) {
		return
	}
	var dto dtos.AdminRegisterRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}
	secret := os.Getenv("ADMIN_BOOTSTRAP_SECRET")
	if secret == "" || dto.BootstrapSecret != secret {
		respondError(c, http.StatusForbidden, CodeForbidden, "Invalid bootstrap secret")
		return
	}
	h.createUser(c, dto.Email, dto.Password, dto.Name, models.RoleAdmin)
}

func (h *AuthHandler) Login(c *gin.Context) {
	if !h.nativeOnly(c) {
		return
	}
	var dto dtos.LoginRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(dto.Email))).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// AdminLogin authenticates an ADMIN account. Any non-admin account is
// rejected with the same 401 as a wrong password, so the endpoint does not
// reveal whether an email belongs to a regular user.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	if !h.nativeOnly(c) {
		return
	}
	var dto dtos.LoginRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	var user models.User
	err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(dto.Email))).First(&user).Error
	if err != nil || user.Role != models.RoleAdmin || user.PasswordHash == "" {
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid admin credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid admin credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Handshake gives federated clients an idempotent way to materialize a local
// user row for their verified identity. An existing row keeps its role, so
// repeated handshakes never demote an admin. In native mode it just echoes
// the account for the token.
func (h *AuthHandler) Handshake(c *gin.Context) {
	userID, _ := c.Get("user_id")
	email, _ := c.Get("user_email")
	role, _ := c.Get("user_role")

	if config.AuthMode() == config.AuthModeNative {
		if id, ok := userID.(uuid.UUID); ok {
			var user models.User
			if err := h.DB.Where("id = ?", id).First(&user).Error; err == nil {
				c.JSON(http.StatusOK, gin.H{"user": user})
				return
			}
		}
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "Unknown account")
		return
	}

	claimEmail, _ := email.(string)
	claimEmail = strings.ToLower(strings.TrimSpace(claimEmail))
	if claimEmail == "" {
		respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "Token has no email claim")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", claimEmail).First(&user).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"user": user})
		return
	}

	claimRole, _ := role.(string)
	if claimRole == "" {
		claimRole = models.RoleUser
	}
	user = models.User{Email: claimEmail, Role: claimRole}
	if err := h.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to create user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetProfile reflects the verified token claims. In native mode the local
// user record is attached when it exists.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")
	email, _ := c.Get("user_email")
	role, _ := c.Get("user_role")

	if id, ok := userID.(uuid.UUID); ok && config.AuthMode() == config.AuthModeNative {
		var user models.User
		if err := h.DB.Where("id = ?", id).First(&user).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"user": user})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":    userID,
		"email": email,
		"role":  role,
	}})
}
