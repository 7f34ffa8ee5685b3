package handlers

import (
	"github.com/Bithika-Jain/Project-Exhibition/internal/config"
	"github.com/Bithika-Jain/Project-Exhibition/internal/middleware"
	"github.com/Bithika-Jain/Project-Exhibition/internal/services"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, &cfg.LDAP, &cfg.JWT),
	}
}

// Signup registers an account with a student or faculty profile
// POST /signup/
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// Login authenticates with username/password
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// Me returns the authenticated account and its role profiles
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	current, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, current)
}

// Logout acknowledges a client-side token discard. Tokens are stateless,
// nothing is revoked server-side.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "logged out"})
}
