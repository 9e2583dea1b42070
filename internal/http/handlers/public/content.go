package public

import (
	"github.com/tribute-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetPage 获取页面内容（首屏/相册/留言/时间线）
func (h *Handler) GetPage(c *gin.Context) {
	content, err := h.ContentService.GetPage(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "Page content is not available", err)
		return
	}
	response.Success(c, content)
}
