package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auth-api/internal/apperr"
	"auth-api/internal/domain"
	"auth-api/internal/service"
)

const (
	refreshCookieName   = "refreshToken"
	refreshCookieMaxAge = 30 * 24 * 60 * 60 // 30 days, matching the token ttl
)

// Handler wires HTTP routes to the auth service.
type Handler struct {
	auth       service.AuthService
	logger     *logrus.Logger
	production bool
}

func NewHandler(auth service.AuthService, logger *logrus.Logger, production bool) *Handler {
	return &Handler{
		auth:       auth,
		logger:     logger,
		production: production,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"errors": "URI Not Found"})
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// AuthDataResponse is the public slice of an account returned on success.
type AuthDataResponse struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// AuthResponse is the success envelope for register and login. The refresh
// token travels in an http-only cookie, never in the body.
type AuthResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	Data        AuthDataResponse `json:"data"`
	AccessToken string           `json:"accessToken"`
}

func (h *Handler) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperr.NewBodyRequired())
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.renderAuth(c, "Register user success", result)
}

func (h *Handler) login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperr.NewBodyRequired())
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.renderAuth(c, "Login user success", result)
}

func (h *Handler) renderAuth(c *gin.Context, message string, result *domain.AuthResult) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, result.RefreshToken, refreshCookieMaxAge, "/", "", h.production, true)

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: message,
		Data: AuthDataResponse{
			Name:     result.Name,
			Username: result.Username,
		},
		AccessToken: result.AccessToken,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status, body := apperr.Classify(err, h.production)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"errors": body})
}
