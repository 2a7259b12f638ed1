package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wallet-api/internal/service"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	UserID(token string) (string, error)
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	accounts service.AccountService
	tokens   TokenVerifier
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, accounts service.AccountService, tokens TokenVerifier, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:    users,
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterRoutes mounts every endpoint below basePath, e.g. "/api/v1".
func (h *Handler) RegisterRoutes(router *gin.Engine, basePath string) {
	router.Use(requestLogger(h.logger), corsMiddleware())

	api := router.Group(strings.TrimSuffix(basePath, "/"))
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		user := api.Group("/user")
		user.POST("/signup", h.signup)
		user.POST("/signin", h.signin)
		user.GET("/bulk", h.bulk)
		user.PUT("", h.authMiddleware(), h.update)
		user.PUT("/", h.authMiddleware(), h.update)

		account := api.Group("/account", h.authMiddleware())
		account.GET("/balance", h.balance)
	}
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

// internalError logs err and answers with a body that carries no detail.
func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.WithError(err).WithFields(logrus.Fields{
		"op":     op,
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
