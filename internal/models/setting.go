package models

// Setting 站点设置表（键值对存储），页面文案等可改内容放在这里覆盖配置默认值。
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`  // 设置键
	ValueJSON JSON   `gorm:"type:json" json:"value"` // 设置值
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
