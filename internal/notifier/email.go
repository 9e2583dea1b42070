package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/tribute-next/internal/constants"
)

const defaultEmailEndpoint = "https://api.resend.com/emails"

// EmailConfig 邮件通知配置（Resend 风格 HTTP API）
type EmailConfig struct {
	APIKey    string `json:"api_key"`   // API 密钥
	Endpoint  string `json:"endpoint"`  // 发送接口地址
	From      string `json:"from"`      // 发件人
	Recipient string `json:"recipient"` // 固定收件地址
	TimeoutMS int    `json:"timeout_ms"`
}

func (c *EmailConfig) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Endpoint = strings.TrimRight(strings.TrimSpace(c.Endpoint), "/")
	c.From = strings.TrimSpace(c.From)
	c.Recipient = strings.TrimSpace(c.Recipient)
	if c.Endpoint == "" {
		c.Endpoint = defaultEmailEndpoint
	}
	if c.From == "" {
		c.From = "Gift Orders <onboarding@resend.dev>"
	}
}

// ValidateEmailConfig 校验邮件配置（缺少密钥或收件人直接失败，不发起请求）
func ValidateEmailConfig(cfg *EmailConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Recipient) == "" {
		return fmt.Errorf("%w: recipient is required", ErrConfigInvalid)
	}
	return nil
}

// EmailNotifier 邮件通知渠道
type EmailNotifier struct {
	cfg EmailConfig
}

// NewEmailNotifier 创建邮件通知渠道
func NewEmailNotifier(cfg EmailConfig) (*EmailNotifier, error) {
	cfg.normalize()
	if err := ValidateEmailConfig(&cfg); err != nil {
		return nil, err
	}
	return &EmailNotifier{cfg: cfg}, nil
}

// Channel 返回渠道标识
func (n *EmailNotifier) Channel() string {
	return constants.NotifyChannelEmail
}

// Send 发送订单通知邮件
func (n *EmailNotifier) Send(ctx context.Context, msg Message) error {
	params := map[string]interface{}{
		"from":    n.cfg.From,
		"to":      []string{n.cfg.Recipient},
		"subject": fmt.Sprintf("New Gift Order: %s", msg.GiftType),
		"html":    buildEmailHTML(msg),
	}
	headers := map[string]string{
		"Authorization": "Bearer " + n.cfg.APIKey,
	}
	if _, err := postJSON(ctx, n.cfg.Endpoint, headers, params, normalizeTimeout(n.cfg.TimeoutMS)); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

func buildEmailHTML(msg Message) string {
	var b strings.Builder
	b.WriteString("<h2>New Gift Order!</h2>")
	fmt.Fprintf(&b, "<p><strong>Gift:</strong> %s</p>", html.EscapeString(msg.GiftType))
	fmt.Fprintf(&b, "<p><strong>Deliver to:</strong> %s</p>", html.EscapeString(msg.DeliveryAddress))
	if strings.TrimSpace(msg.PreferredTime) != "" {
		fmt.Fprintf(&b, "<p><strong>Preferred time:</strong> %s</p>", html.EscapeString(msg.PreferredTime))
	}
	if strings.TrimSpace(msg.DeliveryInstructions) != "" {
		fmt.Fprintf(&b, "<p><strong>Instructions:</strong> %s</p>", html.EscapeString(msg.DeliveryInstructions))
	}
	if strings.TrimSpace(msg.Reference) != "" {
		fmt.Fprintf(&b, "<p><strong>Reference:</strong> %s</p>", html.EscapeString(msg.Reference))
	}
	return b.String()
}
