package public

import (
	"errors"
	"strconv"

	handlershared "github.com/tribute-next/internal/http/handlers/shared"
	"github.com/tribute-next/internal/http/response"
	"github.com/tribute-next/internal/repository"
	"github.com/tribute-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RedeemRequest 兑换请求
type RedeemRequest struct {
	GiftID               string `json:"gift_id" binding:"required"`
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryInstructions string `json:"delivery_instructions"`
	PreferredTime        string `json:"preferred_time"`
}

// Redeem 兑换礼物
func (h *Handler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.RedemptionService.Redeem(c.Request.Context(), service.RedeemInput{
		GiftID:               req.GiftID,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		PreferredTime:        req.PreferredTime,
	})
	if err != nil {
		respondRedeemError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Gift redeemed", result)
}

// GetOrder 按订单号查询订单
func (h *Handler) GetOrder(c *gin.Context) {
	reference := c.Param("reference")
	order, err := h.RedemptionService.GetOrderByReference(reference)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "Order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Order lookup failed", err)
		return
	}
	response.Success(c, order)
}

// ListOrders 分页查询订单
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.RedemptionService.ListOrders(repository.GiftOrderListFilter{
		Page:     page,
		PageSize: pageSize,
		GiftType: c.Query("gift_type"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Order lookup failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, orders, pagination)
}
