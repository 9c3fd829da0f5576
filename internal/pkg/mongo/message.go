package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message 家长与校医之间的私信明细
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    uint64             `bson:"sender_id" json:"senderId"`       // 发送者 UID
	RecipientID uint64             `bson:"recipient_id" json:"recipientId"` // 接收者 UID
	Content     string             `bson:"content" json:"content"`          // 文本内容
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`     // 发送时间
}
