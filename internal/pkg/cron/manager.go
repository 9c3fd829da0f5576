package cron

import (
	"SchoolCare/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine                *cron.Cron
	medicationReminderJob *job.MedicationReminderJob
	failedJobRetentionJob *job.FailedJobRetentionJob
}

func NewCronManager(medicationReminderJob *job.MedicationReminderJob, failedJobRetentionJob *job.FailedJobRetentionJob) *Manager {
	return &Manager{
		engine:                cron.New(cron.WithSeconds()),
		medicationReminderJob: medicationReminderJob,
		failedJobRetentionJob: failedJobRetentionJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 早上七点提醒校医当日送药安排
	if _, err := s.engine.AddJob("0 0 7 * * *", s.medicationReminderJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.failedJobRetentionJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
