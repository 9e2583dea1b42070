package catalog

import (
	"strings"

	"github.com/tribute-next/internal/constants"
	"github.com/tribute-next/internal/models"

	"github.com/shopspring/decimal"
)

// GiftOption 礼物目录条目（编译期固定，不可变）
type GiftOption struct {
	ID           string       `json:"id"`            // 目录内唯一标识
	Category     string       `json:"category"`      // 分类（FLOWERS/CHOCOLATES/PLUSHIES）
	Name         string       `json:"name"`          // 展示名称
	BackendValue string       `json:"backend_value"` // 写入订单的 gift_type 值
	Price        models.Money `json:"price"`         // 兑换价格
	RequireTime  *bool        `json:"require_time,omitempty"` // 期望送达时间是否必填（nil 跟随全局配置）
}

var giftOptions = []GiftOption{
	{ID: "single-rose", Category: constants.GiftCategoryFlowers, Name: "Single Rose", BackendValue: "single rose", Price: money(100)},
	{ID: "rose-bouquet-3", Category: constants.GiftCategoryFlowers, Name: "3 Rose Bouquet", BackendValue: "3 rose bouquet", Price: money(300)},
	{ID: "dozen-roses", Category: constants.GiftCategoryFlowers, Name: "Dozen Roses", BackendValue: "dozen roses", Price: money(1000)},
	{ID: "chocolate-box", Category: constants.GiftCategoryChocolates, Name: "Chocolate Box", BackendValue: "chocolate box", Price: money(250)},
	{ID: "truffle-collection", Category: constants.GiftCategoryChocolates, Name: "Truffle Collection", BackendValue: "truffle collection", Price: money(500)},
	{ID: "teddy-bear", Category: constants.GiftCategoryPlushies, Name: "Teddy Bear", BackendValue: "teddy bear", Price: money(400)},
	{ID: "bunny-plushie", Category: constants.GiftCategoryPlushies, Name: "Bunny Plushie", BackendValue: "bunny plushie", Price: money(350)},
}

// Find 按 ID 查找礼物，未找到返回 nil
func Find(id string) *GiftOption {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil
	}
	for i := range giftOptions {
		if giftOptions[i].ID == trimmed {
			option := giftOptions[i]
			return &option
		}
	}
	return nil
}

// All 返回全部礼物（副本，调用方可自由修改）
func All() []GiftOption {
	options := make([]GiftOption, len(giftOptions))
	copy(options, giftOptions)
	return options
}

// ByCategory 返回指定分类下的礼物
func ByCategory(category string) []GiftOption {
	normalized := strings.ToUpper(strings.TrimSpace(category))
	options := make([]GiftOption, 0, len(giftOptions))
	for _, option := range giftOptions {
		if option.Category == normalized {
			options = append(options, option)
		}
	}
	return options
}

// Categories 返回目录展示用的分类顺序
func Categories() []string {
	categories := make([]string, len(constants.SupportedGiftCategories))
	copy(categories, constants.SupportedGiftCategories)
	return categories
}

// RequiresPreferredTime 计算礼物的期望送达时间策略
func (g GiftOption) RequiresPreferredTime(globalDefault bool) bool {
	if g.RequireTime != nil {
		return *g.RequireTime
	}
	return globalDefault
}

func money(v int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(v))
}
