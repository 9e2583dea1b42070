package public

import (
	"errors"

	"github.com/tribute-next/internal/http/response"
	"github.com/tribute-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBalance 获取当前余额
func (h *Handler) GetBalance(c *gin.Context) {
	balance, err := h.BalanceService.GetBalance()
	if err != nil {
		if errors.Is(err, service.ErrBalanceNotFound) {
			respondError(c, response.CodeNotFound, "Balance is not initialized", nil)
			return
		}
		respondError(c, response.CodeInternal, "Balance is not available", err)
		return
	}
	response.Success(c, gin.H{"amount": balance.Amount})
}
