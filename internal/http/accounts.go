package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet-api/internal/service"
)

func (h *Handler) balance(c *gin.Context) {
	account, err := h.accounts.Balance(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			return
		}
		h.internalError(c, "balance", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": account.Balance})
}
