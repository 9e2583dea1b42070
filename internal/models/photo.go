package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo 相册照片
type Photo struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Image     string         `gorm:"type:varchar(500);not null" json:"image"` // 图片路径
	Caption   string         `gorm:"type:varchar(200)" json:"caption"`        // 图片说明
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`     // 是否展示
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`       // 排序
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除
}

// TableName 指定表名
func (Photo) TableName() string {
	return "photos"
}
