package models

import "time"

// GiftOrder 礼物兑换订单表（只追加，创建后不更新不删除）
type GiftOrder struct {
	ID                   uint      `gorm:"primarykey" json:"id"`                                   // 主键
	Reference            string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"` // 订单号
	GiftType             string    `gorm:"type:varchar(120);not null;index" json:"gift_type"`      // 礼物后端标识
	DeliveryAddress      string    `gorm:"type:varchar(500);not null" json:"delivery_address"`     // 送达地址
	DeliveryInstructions string    `gorm:"type:varchar(1000)" json:"delivery_instructions"`        // 送达备注
	PreferredTime        string    `gorm:"type:varchar(200)" json:"preferred_time"`                // 期望送达时间
	Price                Money     `gorm:"type:decimal(12,2);not null" json:"price"`               // 兑换价格
	BalanceBefore        Money     `gorm:"type:decimal(12,2);not null" json:"balance_before"`      // 扣减前余额
	BalanceAfter         Money     `gorm:"type:decimal(12,2);not null" json:"balance_after"`       // 预期扣减后余额
	CreatedAt            time.Time `gorm:"index" json:"created_at"`                                // 创建时间
}

// TableName 指定表名
func (GiftOrder) TableName() string {
	return "gift_orders"
}
