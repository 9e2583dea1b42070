package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/tribute-next/internal/constants"
)

const (
	defaultGraphAPIBase    = "https://graph.facebook.com"
	defaultGraphAPIVersion = "v17.0"
)

// WhatsAppConfig WhatsApp 通知配置（Meta Graph API）
type WhatsAppConfig struct {
	AccessToken   string `json:"access_token"`    // 访问令牌
	PhoneNumberID string `json:"phone_number_id"` // 发送方号码 ID
	Recipient     string `json:"recipient"`       // 固定收件号码
	APIVersion    string `json:"api_version"`
	BaseURL       string `json:"base_url"` // 便于测试替换
	TimeoutMS     int    `json:"timeout_ms"`
}

func (c *WhatsAppConfig) normalize() {
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	c.PhoneNumberID = strings.TrimSpace(c.PhoneNumberID)
	c.Recipient = strings.TrimSpace(c.Recipient)
	c.APIVersion = strings.TrimSpace(c.APIVersion)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.APIVersion == "" {
		c.APIVersion = defaultGraphAPIVersion
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultGraphAPIBase
	}
}

// ValidateWhatsAppConfig 校验 WhatsApp 配置（缺少令牌或收件号码直接失败，不发起请求）
func ValidateWhatsAppConfig(cfg *WhatsAppConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return fmt.Errorf("%w: access_token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PhoneNumberID) == "" {
		return fmt.Errorf("%w: phone_number_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Recipient) == "" {
		return fmt.Errorf("%w: recipient is required", ErrConfigInvalid)
	}
	return nil
}

// WhatsAppNotifier WhatsApp 通知渠道
type WhatsAppNotifier struct {
	cfg WhatsAppConfig
}

// NewWhatsAppNotifier 创建 WhatsApp 通知渠道
func NewWhatsAppNotifier(cfg WhatsAppConfig) (*WhatsAppNotifier, error) {
	cfg.normalize()
	if err := ValidateWhatsAppConfig(&cfg); err != nil {
		return nil, err
	}
	return &WhatsAppNotifier{cfg: cfg}, nil
}

// Channel 返回渠道标识
func (n *WhatsAppNotifier) Channel() string {
	return constants.NotifyChannelWhatsApp
}

// Send 发送订单通知消息
func (n *WhatsAppNotifier) Send(ctx context.Context, msg Message) error {
	endpoint := fmt.Sprintf("%s/%s/%s/messages", n.cfg.BaseURL, n.cfg.APIVersion, n.cfg.PhoneNumberID)
	params := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                n.cfg.Recipient,
		"type":              "text",
		"text": map[string]string{
			"body": textSummary(msg),
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + n.cfg.AccessToken,
	}
	if _, err := postJSON(ctx, endpoint, headers, params, normalizeTimeout(n.cfg.TimeoutMS)); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}
