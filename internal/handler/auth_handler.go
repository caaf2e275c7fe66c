package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/auth"
	"github.com/techmaintain/parts-service/internal/notify"
)

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type forgotPasswordInput struct {
	Email string `json:"email"`
}

type AuthHandler struct {
	provider auth.Provider
	gateway  notify.Gateway
	resetURL string
	logger   *zap.Logger
}

func NewAuthHandler(provider auth.Provider, gateway notify.Gateway, resetURL string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		gateway:  gateway,
		resetURL: resetURL,
		logger:   logger,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username and password are required",
		})
		return
	}

	token, err := h.provider.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}

		h.logger.Error("Failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input forgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if !strings.Contains(input.Email, "@") || !strings.Contains(input.Email, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email"})
		return
	}

	notification := notify.BuildPasswordRecovery(input.Email, h.resetURL)
	if err := h.gateway.Send(c.Request.Context(), notification); err != nil {
		h.logger.Error("Failed to send recovery email",
			zap.String("recipient", input.Email),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send recovery email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recovery email sent"})
}
