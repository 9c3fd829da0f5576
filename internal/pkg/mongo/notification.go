package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification 站内通知模型，一条事件对应每个收件人各一条记录
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID       string             `bson:"job_id" json:"jobId"`               // 扇出任务ID，与 recipient_id 组成幂等键
	RecipientID uint64             `bson:"recipient_id" json:"recipientId"`   // 通知接收者ID
	Type        string             `bson:"type" json:"type"`                  // 通知类型
	EntityID    string             `bson:"entity_id" json:"entityId"`         // 关联的实体ID (活动、事件等)
	EntityModel string             `bson:"entity_model" json:"entityModel"`   // 实体种类，客户端深链用
	ActorID     uint64             `bson:"actor_id,omitempty" json:"actorId"` // 动作发起者ID (系统触发为0)
	IsRead      bool               `bson:"is_read" json:"isRead"`             // 是否已读
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`       // 创建时间
}
