package job

import (
	"SchoolCare/internal/pkg/logger"
	"SchoolCare/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// FailedJobRetentionJob 定期修剪死信集合，只保留最近的固定条数
type FailedJobRetentionJob struct {
	failedJobRepo mongo.FailedJobRepo
	keep          int64
}

func NewFailedJobRetentionJob(failedJobRepo mongo.FailedJobRepo, keep int64) *FailedJobRetentionJob {
	if keep <= 0 {
		keep = 1000
	}
	return &FailedJobRetentionJob{
		failedJobRepo: failedJobRepo,
		keep:          keep,
	}
}

func (s *FailedJobRetentionJob) Run() {
	traceID := "job-retention-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	deleted, err := s.failedJobRepo.TrimToNewest(ctx, s.keep)
	if err != nil {
		log.ErrorContext(ctx, "trim failed jobs error", "err", err)
		return
	}

	log.InfoContext(ctx, "FailedJobRetentionJob finished", "deleted", deleted, "keep", s.keep)
}
