package push

import (
	"SchoolCare/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// fcmRequest FCM 组播请求体
type fcmRequest struct {
	RegistrationIDs []string          `json:"registration_ids"`
	Notification    fcmNotification   `json:"notification"`
	Data            map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// fcmResponse FCM 带 per-token 结果的响应
type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

type FCMGateway struct {
	client   *resty.Client
	endpoint string
	enabled  bool
}

// NewFCMGateway 构造推送网关
// server_key 缺省时只关闭推送通道，站内通知不受影响
func NewFCMGateway(cfg config.PushConfig) *FCMGateway {
	if cfg.ServerKey == "" {
		log.Warn("Push gateway disabled: no server key configured, push channel is off")
		return &FCMGateway{enabled: false}
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10
	}

	client := resty.New().
		SetTimeout(time.Duration(timeout)*time.Second).
		SetHeader("Authorization", "key="+cfg.ServerKey).
		SetHeader("Content-Type", "application/json")

	return &FCMGateway{
		client:   client,
		endpoint: endpoint,
		enabled:  true,
	}
}

func (g *FCMGateway) Enabled() bool {
	return g.enabled
}

// SendMulticast 对一个用户的全部设备 token 做一次组播
func (g *FCMGateway) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*MulticastResult, error) {
	if !g.enabled {
		log.WarnContext(ctx, "Push gateway not configured, skip push delivery")
		return &MulticastResult{}, nil
	}
	if len(tokens) == 0 {
		return &MulticastResult{}, nil
	}

	reqBody := fcmRequest{
		RegistrationIDs: tokens,
		Notification:    fcmNotification{Title: title, Body: body},
		Data:            data,
	}

	var respBody fcmResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(g.endpoint)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("push provider returned %s", resp.Status())
	}

	result := &MulticastResult{
		SuccessCount: respBody.Success,
		FailureCount: respBody.Failure,
		Results:      make([]TokenResult, 0, len(respBody.Results)),
	}
	for i, r := range respBody.Results {
		if i >= len(tokens) {
			break
		}
		result.Results = append(result.Results, TokenResult{
			Token: tokens[i],
			Error: r.Error,
		})
	}

	return result, nil
}
