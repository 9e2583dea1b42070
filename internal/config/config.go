package config

import (
	"fmt"
	"strings"

	"github.com/tribute-next/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Redeem   RedeemConfig   `mapstructure:"redeem"`
	Site     SiteConfig     `mapstructure:"site"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// NotifyConfig 订单通知配置
type NotifyConfig struct {
	Email    EmailNotifyConfig    `mapstructure:"email"`
	WhatsApp WhatsAppNotifyConfig `mapstructure:"whatsapp"`
}

// EmailNotifyConfig 邮件通知配置（Resend 风格 HTTP API）
type EmailNotifyConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	APIKey    string `mapstructure:"api_key"`
	Endpoint  string `mapstructure:"endpoint"`
	From      string `mapstructure:"from"`
	Recipient string `mapstructure:"recipient"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// WhatsAppNotifyConfig WhatsApp 通知配置（Meta Graph API）
type WhatsAppNotifyConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	AccessToken   string `mapstructure:"access_token"`
	PhoneNumberID string `mapstructure:"phone_number_id"`
	Recipient     string `mapstructure:"recipient"`
	APIVersion    string `mapstructure:"api_version"`
	TimeoutMS     int    `mapstructure:"timeout_ms"`
}

// RedeemConfig 礼物兑换配置
type RedeemConfig struct {
	RequirePreferredTime bool                  `mapstructure:"require_preferred_time"` // 期望送达时间是否必填
	DefaultAddress       string                `mapstructure:"default_address"`        // 地址缺省占位值
	OpeningBalance       string                `mapstructure:"opening_balance"`        // 初始化余额（十进制字符串）
	RateLimit            RedeemRateLimitConfig `mapstructure:"rate_limit"`
}

// RedeemRateLimitConfig 兑换接口限流配置
type RedeemRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// SiteConfig 页面内容配置
type SiteConfig struct {
	HeroTitle        string `mapstructure:"hero_title"`
	HeroSubtitle     string `mapstructure:"hero_subtitle"`
	Note             string `mapstructure:"note"`
	ContentCacheTTLS int    `mapstructure:"content_cache_ttl_seconds"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("./")    // 备用路径
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	// 设置默认值（可选）
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "app.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/tribute.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "tn")
	viper.SetDefault("queue.enabled", true)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-CSRF-Token",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("notify.email.enabled", false)
	viper.SetDefault("notify.email.api_key", "")
	viper.SetDefault("notify.email.endpoint", "https://api.resend.com/emails")
	viper.SetDefault("notify.email.from", "Gift Orders <onboarding@resend.dev>")
	viper.SetDefault("notify.email.recipient", "")
	viper.SetDefault("notify.email.timeout_ms", 15000)
	viper.SetDefault("notify.whatsapp.enabled", false)
	viper.SetDefault("notify.whatsapp.access_token", "")
	viper.SetDefault("notify.whatsapp.phone_number_id", "")
	viper.SetDefault("notify.whatsapp.recipient", "")
	viper.SetDefault("notify.whatsapp.api_version", "v17.0")
	viper.SetDefault("notify.whatsapp.timeout_ms", 15000)
	viper.SetDefault("redeem.require_preferred_time", true)
	viper.SetDefault("redeem.default_address", "Our special place")
	viper.SetDefault("redeem.opening_balance", "500")
	viper.SetDefault("redeem.rate_limit.window_seconds", 60)
	viper.SetDefault("redeem.rate_limit.max_requests", 10)
	viper.SetDefault("site.hero_title", "To My Dearest")
	viper.SetDefault("site.hero_subtitle", "A little corner of the internet, just for you")
	viper.SetDefault("site.note", "")
	viper.SetDefault("site.content_cache_ttl_seconds", 60)

	// 环境变量支持
	viper.SetEnvPrefix("TN")
	viper.AutomaticEnv()                                   // 自动读取环境变量
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // 将 . 替换为 _ (例如 server.port -> TN_SERVER_PORT)

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}
