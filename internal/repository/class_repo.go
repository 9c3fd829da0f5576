package repository

import (
	"SchoolCare/internal/model"
	"context"

	"gorm.io/gorm"
)

type ClassRepo interface {
	GetClassIDsByGradeLevels(ctx context.Context, gradeLevels []int) ([]uint64, error)
}

type ClassRepoImpl struct {
	db *gorm.DB
}

func NewClassRepo(db *gorm.DB) ClassRepo {
	return &ClassRepoImpl{db: db}
}

// GetClassIDsByGradeLevels 活动面向年级到班级的第一跳解析
func (s *ClassRepoImpl) GetClassIDsByGradeLevels(ctx context.Context, gradeLevels []int) ([]uint64, error) {
	var ids []uint64
	result := s.db.WithContext(ctx).
		Model(&model.SchoolClass{}).
		Where("grade_level IN ?", gradeLevels).
		Pluck("id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}
