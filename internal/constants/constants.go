package constants

// 礼物分类常量
const (
	GiftCategoryFlowers    = "FLOWERS"
	GiftCategoryChocolates = "CHOCOLATES"
	GiftCategoryPlushies   = "PLUSHIES"
)

// 支持的礼物分类顺序（用于目录展示）
var SupportedGiftCategories = []string{
	GiftCategoryFlowers,
	GiftCategoryChocolates,
	GiftCategoryPlushies,
}

// 通知渠道常量
const (
	NotifyChannelEmail    = "email"
	NotifyChannelWhatsApp = "whatsapp"
)

// 队列常量
const (
	QueueDefault             = "default"
	TaskNotificationDispatch = "notification:dispatch"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault  = "tn"
	CacheKeyPageContent = "page_content"
)

// 设置键常量
const (
	SettingKeySiteContent    = "site_content"
	SettingFieldHeroTitle    = "hero_title"
	SettingFieldHeroSubtitle = "hero_subtitle"
	SettingFieldNote         = "note"
)
