package models

import "time"

// Balance 余额表（全站仅一行，兑换成功后扣减）
type Balance struct {
	ID        uint      `gorm:"primarykey" json:"id"`                          // 主键
	Amount    Money     `gorm:"type:decimal(12,2);not null" json:"amount"`     // 当前余额
	UpdatedAt time.Time `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (Balance) TableName() string {
	return "balances"
}
