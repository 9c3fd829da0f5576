package job

import (
	"SchoolCare/internal/pkg/logger"
	"SchoolCare/internal/repository"
	"SchoolCare/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// MedicationReminderJob 每天提醒校医当日需执行的送药安排
type MedicationReminderJob struct {
	medicationRepo repository.MedicationRepo
	notifier       service.NotifierService
}

func NewMedicationReminderJob(medicationRepo repository.MedicationRepo, notifier service.NotifierService) *MedicationReminderJob {
	return &MedicationReminderJob{
		medicationRepo: medicationRepo,
		notifier:       notifier,
	}
}

func (s *MedicationReminderJob) Run() {
	traceID := "job-medication-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	requests, err := s.medicationRepo.GetScheduledDueOn(ctx, time.Now())
	if err != nil {
		log.ErrorContext(ctx, "scan due medication requests error", "err", err)
		return
	}

	log.InfoContext(ctx, "MedicationReminderJob processing", "request_count", len(requests))

	for _, req := range requests {
		s.notifier.MedicationDue(ctx, req)
	}
}
