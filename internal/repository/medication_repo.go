package repository

import (
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MedicationRepo interface {
	GetRequestById(ctx context.Context, id uint64) (*model.MedicationRequest, error)
	CreateRequest(ctx context.Context, req *model.MedicationRequest) error
	ScheduleRequest(ctx context.Context, id, nurseID uint64, start, end time.Time) (int64, error)
	GetScheduledDueOn(ctx context.Context, day time.Time) ([]*model.MedicationRequest, error)
}

type MedicationRepoImpl struct {
	db *gorm.DB
}

func NewMedicationRepo(db *gorm.DB) MedicationRepo {
	return &MedicationRepoImpl{db: db}
}

func (s *MedicationRepoImpl) GetRequestById(ctx context.Context, id uint64) (*model.MedicationRequest, error) {
	req := &model.MedicationRequest{}
	result := s.db.WithContext(ctx).First(req, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return req, nil
}

func (s *MedicationRepoImpl) CreateRequest(ctx context.Context, req *model.MedicationRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

// ScheduleRequest 只允许待处理状态流转，返回影响行数
func (s *MedicationRepoImpl) ScheduleRequest(ctx context.Context, id, nurseID uint64, start, end time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.MedicationRequest{}).
		Where("id = ? AND status = ?", id, consts.MedicationStatusPending).
		Updates(map[string]any{
			"status":     consts.MedicationStatusScheduled,
			"nurse_id":   nurseID,
			"start_date": start,
			"end_date":   end,
		})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetScheduledDueOn 当天处于执行期内的已安排用药申请，供每日提醒任务扫描
func (s *MedicationRepoImpl) GetScheduledDueOn(ctx context.Context, day time.Time) ([]*model.MedicationRequest, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var requests []*model.MedicationRequest
	result := s.db.WithContext(ctx).
		Where("status = ? AND start_date < ? AND end_date >= ?", consts.MedicationStatusScheduled, dayEnd, dayStart).
		Find(&requests)

	if result.Error != nil {
		return nil, result.Error
	}
	return requests, nil
}
