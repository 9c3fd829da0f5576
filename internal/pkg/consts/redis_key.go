package consts

const (
	UserPushTokensKey    = "user:push:tokens:"
	NotifyCompletedKey   = "notify:jobs:completed"
	TokenBlacklistPrefix = "auth:token:blacklist:"
)

const (
	LowStockAlertLock = "inventory:lowstock:lock:"
)
