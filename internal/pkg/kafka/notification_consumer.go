package kafka

import (
	"SchoolCare/internal/api/config"
	"SchoolCare/internal/pkg/consts"
	"SchoolCare/internal/pkg/mongo"
	"SchoolCare/internal/pkg/notify"
	"SchoolCare/internal/service"
	"context"
	log "log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	redisv9 "github.com/redis/go-redis/v9"
)

const (
	defaultConcurrency = 10
	defaultMaxAttempts = 3
	defaultBackoffBase = 5 * time.Second
	defaultCompleted   = 1000
)

// NotificationJobsHandler 通知任务的唯一消费者
// 按批拉取，批内并发处理，重试耗尽的任务写入死信集合后提交位点
type NotificationJobsHandler struct {
	dispatch      service.NotificationDispatchService
	failedJobRepo mongo.FailedJobRepo
	rdb           *redisv9.Client

	concurrency   int
	maxAttempts   int
	backoffBase   time.Duration
	completedKeep int64
}

func NewNotificationJobsHandler(
	dispatch service.NotificationDispatchService,
	failedJobRepo mongo.FailedJobRepo,
	rdb *redisv9.Client,
	notifyCfg config.NotifyConfig,
) *NotificationJobsHandler {
	h := &NotificationJobsHandler{
		dispatch:      dispatch,
		failedJobRepo: failedJobRepo,
		rdb:           rdb,
		concurrency:   notifyCfg.Concurrency,
		maxAttempts:   notifyCfg.MaxAttempts,
		backoffBase:   time.Duration(notifyCfg.BackoffBaseSeconds) * time.Second,
		completedKeep: int64(notifyCfg.CompletedRetention),
	}

	if h.concurrency <= 0 {
		h.concurrency = defaultConcurrency
	}
	if h.maxAttempts <= 0 {
		h.maxAttempts = defaultMaxAttempts
	}
	if h.backoffBase <= 0 {
		h.backoffBase = defaultBackoffBase
	}
	if h.completedKeep <= 0 {
		h.completedKeep = defaultCompleted
	}

	return h
}

func (s *NotificationJobsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer setup")
	return nil
}

func (s *NotificationJobsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer cleanup")
	return nil
}

func (s *NotificationJobsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("notification jobs consume claim")
	s.pullMessageBatch(session, claim)
	log.Info("notification jobs consume claim end")
	return nil
}

// pullMessageBatch 攒一批消息后并发处理，批大小即任务并发上限
func (s *NotificationJobsHandler) pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) {
	batch := make([]*sarama.ConsumerMessage, 0, s.concurrency)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					s.processBatch(session, batch)
				}
				return
			}
			batch = append(batch, msg)
			if len(batch) >= s.concurrency {
				s.processBatch(session, batch)
				batch = make([]*sarama.ConsumerMessage, 0, s.concurrency)
				ticker.Reset(1 * time.Second)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(session, batch)
				batch = make([]*sarama.ConsumerMessage, 0, s.concurrency)
			}
		case <-session.Context().Done():
			return
		}
	}
}

// processBatch 并发处理一批任务，全部到达终态后统一提交位点
// 单条任务的重试在本方法内完成：指数退避，超出上限进死信
func (s *NotificationJobsHandler) processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage) {
	var wg sync.WaitGroup
	var aborted atomic.Bool

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			if !s.processWithRetry(session.Context(), m) {
				aborted.Store(true)
			}
		}(msg)
	}

	wg.Wait()

	// 任一任务因会话结束未到终态时不提交位点，等待重新投递
	if aborted.Load() {
		log.Warn("batch aborted before terminal state, offsets not committed")
		return
	}

	if len(messages) > 0 {
		lastMsg := messages[len(messages)-1]
		session.MarkMessage(lastMsg, "")
		session.Commit()
	}
}

// processWithRetry 返回任务是否到达终态（成功或进入死信）
func (s *NotificationJobsHandler) processWithRetry(ctx context.Context, m *sarama.ConsumerMessage) bool {
	var job notify.JobPayload
	if err := json.Unmarshal(m.Value, &job); err != nil {
		// 解不开的消息重试也没有意义，直接进死信
		log.ErrorContext(ctx, "unmarshal notification job error", "err", err)
		s.deadLetter(ctx, &job, string(m.Value), 0, err)
		return true
	}

	delay := s.backoffBase
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = s.dispatch.Dispatch(ctx, &job)
		if lastErr == nil {
			s.recordCompleted(ctx, job.JobID)
			return true
		}

		log.ErrorContext(ctx, "process notification job error",
			"job_id", job.JobID, "attempt", attempt, "err", lastErr)

		if attempt == s.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			// 会话结束，任务未到终态
			return false
		case <-time.After(delay):
		}
		delay *= 2
	}

	s.deadLetter(ctx, &job, string(m.Value), s.maxAttempts, lastErr)
	return true
}

// deadLetter 重试耗尽，任务转入死信集合供运维排查
func (s *NotificationJobsHandler) deadLetter(ctx context.Context, job *notify.JobPayload, raw string, attempts int, cause error) {
	failed := &mongo.FailedJob{
		JobID:    job.JobID,
		Payload:  raw,
		Error:    errors.Wrap(cause, "notification job failed").Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}
	if err := s.failedJobRepo.Insert(ctx, failed); err != nil {
		log.ErrorContext(ctx, "save dead letter error", "job_id", job.JobID, "err", err)
	}
}

// recordCompleted 已完成任务的有界审计痕迹
func (s *NotificationJobsHandler) recordCompleted(ctx context.Context, jobID string) {
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, consts.NotifyCompletedKey, jobID)
	pipe.LTrim(ctx, consts.NotifyCompletedKey, 0, s.completedKeep-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.WarnContext(ctx, "record completed job error", "job_id", jobID, "err", err)
	}
}
