package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid = errors.New("notifier config invalid")
	ErrSendFailed    = errors.New("notifier send failed")
)

const defaultTimeoutMS = 15000

// Message 订单通知内容（由订单构造，不落库）
type Message struct {
	Reference            string `json:"reference"`
	GiftType             string `json:"gift_type"`
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
	PreferredTime        string `json:"preferred_time"`
}

// Notifier 通知渠道接口
type Notifier interface {
	Channel() string
	Send(ctx context.Context, msg Message) error
}

// textSummary 构造纯文本订单摘要（WhatsApp 等聊天渠道使用）
func textSummary(msg Message) string {
	var b strings.Builder
	b.WriteString("New Gift Order!\n\n")
	fmt.Fprintf(&b, "Gift: %s\n", msg.GiftType)
	fmt.Fprintf(&b, "Deliver to: %s\n", msg.DeliveryAddress)
	if strings.TrimSpace(msg.PreferredTime) != "" {
		fmt.Fprintf(&b, "Preferred time: %s\n", msg.PreferredTime)
	}
	if strings.TrimSpace(msg.DeliveryInstructions) != "" {
		fmt.Fprintf(&b, "Instructions: %s\n", msg.DeliveryInstructions)
	}
	if strings.TrimSpace(msg.Reference) != "" {
		fmt.Fprintf(&b, "Reference: %s\n", msg.Reference)
	}
	return b.String()
}

func normalizeTimeout(timeoutMS int) time.Duration {
	if timeoutMS <= 0 {
		timeoutMS = defaultTimeoutMS
	}
	return time.Duration(timeoutMS) * time.Millisecond
}

func postJSON(ctx context.Context, endpoint string, headers map[string]string, params interface{}, timeout time.Duration) ([]byte, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if readErr != nil {
		return nil, readErr
	}
	return respBody, nil
}
