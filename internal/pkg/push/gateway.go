package push

import "context"

// 供应商上报的失效 token 错误码，命中即应从用户注册集合中剔除
const (
	ErrCodeNotRegistered       = "NotRegistered"
	ErrCodeInvalidRegistration = "InvalidRegistration"
	ErrCodeMismatchSenderID    = "MismatchSenderId"
)

// TokenResult 单个设备 token 的投递结果
type TokenResult struct {
	Token string
	Error string // 空串表示成功
}

// MulticastResult 一次组播调用的汇总结果
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Results      []TokenResult
}

// StaleTokens 过滤出应被剔除的失效 token
func (r *MulticastResult) StaleTokens() []string {
	var stale []string
	for _, res := range r.Results {
		if IsStaleTokenError(res.Error) {
			stale = append(stale, res.Token)
		}
	}
	return stale
}

// IsStaleTokenError 判断错误码是否代表 token 已失效
func IsStaleTokenError(code string) bool {
	switch code {
	case ErrCodeNotRegistered, ErrCodeInvalidRegistration, ErrCodeMismatchSenderID:
		return true
	}
	return false
}

// Gateway 推送网关抽象
// 未配置凭据时 Enabled 返回 false，SendMulticast 降级为空操作
type Gateway interface {
	Enabled() bool
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*MulticastResult, error)
}
