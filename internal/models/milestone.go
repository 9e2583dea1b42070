package models

import (
	"time"

	"gorm.io/gorm"
)

// Milestone 时间线里程碑
type Milestone struct {
	ID          uint           `gorm:"primarykey" json:"id"`                      // 主键
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`   // 标题
	Description string         `gorm:"type:varchar(1000)" json:"description"`     // 描述
	OccurredAt  *time.Time     `gorm:"index" json:"occurred_at"`                  // 发生时间（可为空）
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`         // 排序
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                   // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除
}

// TableName 指定表名
func (Milestone) TableName() string {
	return "milestones"
}
