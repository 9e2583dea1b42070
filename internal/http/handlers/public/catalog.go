package public

import (
	"github.com/tribute-next/internal/catalog"
	"github.com/tribute-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CatalogCategoryPayload 礼物目录单个分类
type CatalogCategoryPayload struct {
	Category string               `json:"category"`
	Gifts    []catalog.GiftOption `json:"gifts"`
}

// GetCatalog 获取礼物目录（按分类分组）
func (h *Handler) GetCatalog(c *gin.Context) {
	categories := make([]CatalogCategoryPayload, 0, len(catalog.Categories()))
	for _, category := range catalog.Categories() {
		categories = append(categories, CatalogCategoryPayload{
			Category: category,
			Gifts:    catalog.ByCategory(category),
		})
	}
	response.Success(c, gin.H{"categories": categories})
}
