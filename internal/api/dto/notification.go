package dto

// NotificationDTO 消息中心列表项，内容文案由客户端按 type 渲染
type NotificationDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	EntityID    string `json:"entity_id"`
	EntityModel string `json:"entity_model"`
	ActorID     uint64 `json:"actor_id"`
	ActorName   string `json:"actor_name"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}
