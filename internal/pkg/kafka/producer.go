package kafka

import (
	"SchoolCare/internal/api/config"
	"SchoolCare/internal/pkg/notify"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// JobProducer 通知任务生产者，同步发送保证落盘后才返回
type JobProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewJobProducer(cfg *config.Config) (*JobProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}

	return &JobProducer{
		producer: producer,
		topic:    cfg.KafkaNotifyProducer.Topic,
	}, nil
}

// Enqueue 入队一条扇出任务，返回分配的任务ID
// 队列不可用时错误上抛，由调用方决定是否吞掉
func (p *JobProducer) Enqueue(ctx context.Context, payload *notify.JobPayload) (string, error) {
	if payload.JobID == "" {
		payload.JobID = uuid.New().String()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(payload.JobID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return "", err
	}

	log.InfoContext(ctx, "Notification job enqueued",
		"job_id", payload.JobID,
		"type", payload.Type,
		"recipients", len(payload.RecipientIDs),
		"partition", partition,
		"offset", offset,
	)
	return payload.JobID, nil
}

func (p *JobProducer) Close() error {
	return p.producer.Close()
}
