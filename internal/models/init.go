package models

import (
	"strings"

	"github.com/tribute-next/internal/logger"

	"github.com/shopspring/decimal"
)

// InitDefaultBalance 初始化余额行（仅在表为空时创建）
func InitDefaultBalance(openingAmount string) error {
	var count int64
	DB.Model(&Balance{}).Count(&count)
	if count > 0 {
		return nil
	}

	amount := decimal.Zero
	trimmed := strings.TrimSpace(openingAmount)
	if trimmed != "" {
		parsed, err := decimal.NewFromString(trimmed)
		if err != nil {
			logger.Warnw("opening_balance_parse_failed", "value", trimmed, "error", err)
		} else if parsed.IsNegative() {
			logger.Warnw("opening_balance_negative_ignored", "value", trimmed)
		} else {
			amount = parsed
		}
	}

	balance := Balance{Amount: NewMoneyFromDecimal(amount)}
	if err := DB.Create(&balance).Error; err != nil {
		return err
	}

	logger.Infow("default_balance_created", "amount", balance.Amount.String())
	return nil
}
