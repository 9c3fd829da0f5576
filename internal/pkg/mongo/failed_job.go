package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FailedJob 重试耗尽后的死信任务，保留给运维排查，不自动静默丢弃
type FailedJob struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID    string             `bson:"job_id" json:"jobId"`
	Payload  string             `bson:"payload" json:"payload"` // 原始任务 JSON
	Error    string             `bson:"error" json:"error"`     // 最后一次失败原因
	Attempts int                `bson:"attempts" json:"attempts"`
	FailedAt time.Time          `bson:"failed_at" json:"failedAt"`
}
