package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/outlaw-hq/admin-api/internal/cache"
	"github.com/outlaw-hq/admin-api/internal/config"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	"github.com/outlaw-hq/admin-api/internal/logging"
	"github.com/outlaw-hq/admin-api/internal/middleware"
)

const (
	maxLoginAttempts  = 5
	loginAttemptsTTL  = 15 * time.Minute
	adminTokenExpires = 24 * time.Hour
)

type AuthHandler struct {
	config *config.Config
	cache  *cache.Cache
}

func NewAuthHandler(cfg *config.Config, cch *cache.Cache) *AuthHandler {
	return &AuthHandler{config: cfg, cache: cch}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx := c.Request.Context()

	if attempts, err := h.cache.LoginAttempts(ctx, email); err == nil && attempts >= maxLoginAttempts {
		httperr.Write(c, http.StatusTooManyRequests, "too_many_attempts", "Too many login attempts, try again later.")
		return
	}

	if email != strings.ToLower(h.config.AdminEmail) {
		h.failLogin(c, email)
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(h.config.AdminPasswordHash),
		[]byte(req.Password),
	); err != nil {
		h.failLogin(c, email)
		return
	}

	if err := h.cache.ClearLoginAttempts(ctx, email); err != nil {
		logging.WithRequestID(middleware.RequestID(c)).
			Warn("failed to clear login attempts", zap.Error(err))
	}

	token, err := h.generateToken(email)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Cannot login.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"email":   email,
			"role":    "admin",
			"isAdmin": true,
		},
		"message": "Admin login successful",
	})
}

func (h *AuthHandler) failLogin(c *gin.Context, email string) {
	if err := h.cache.BumpLoginAttempts(c.Request.Context(), email, loginAttemptsTTL); err != nil {
		logging.WithRequestID(middleware.RequestID(c)).
			Warn("failed to bump login attempts", zap.Error(err))
	}
	httperr.Unauthorized(c, "invalid_credentials", "Invalid admin credentials!")
}

// Logout denylists the current token id until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)
	exp := c.GetInt64(middleware.ContextTokenExp)

	if jti != "" {
		ttl := time.Until(time.Unix(exp, 0))
		if err := h.cache.RevokeToken(c.Request.Context(), jti, ttl); err != nil {
			httperr.Internal(c, "failed_to_logout", "Cannot logout.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   "admin",
		"email": email,
		"role":  "admin",
		"jti":   uuid.NewString(),
		"exp":   now.Add(adminTokenExpires).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
