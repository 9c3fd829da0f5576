package dto

type SendMessageDTO struct {
	RecipientID uint64 `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required,max=2000"`
}

type MessageDTO struct {
	ID          string `json:"id"`
	SenderID    uint64 `json:"sender_id"`
	RecipientID uint64 `json:"recipient_id"`
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at"`
}
