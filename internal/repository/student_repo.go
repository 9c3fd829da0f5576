package repository

import (
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type StudentRepo interface {
	GetStudentById(ctx context.Context, id uint64) (*model.Student, error)
	GetActiveParentIDsByClassIDs(ctx context.Context, classIDs []uint64) ([]uint64, error)
	GetParentIDByStudentId(ctx context.Context, studentID uint64) (*uint64, error)
}

type StudentRepoImpl struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepo {
	return &StudentRepoImpl{db: db}
}

func (s *StudentRepoImpl) GetStudentById(ctx context.Context, id uint64) (*model.Student, error) {
	student := &model.Student{}
	result := s.db.WithContext(ctx).First(student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return student, nil
}

// GetActiveParentIDsByClassIDs 班级到家长的第二跳解析
// 只取在读且已绑定家长的学生，未绑定家长的学生直接跳过
func (s *StudentRepoImpl) GetActiveParentIDsByClassIDs(ctx context.Context, classIDs []uint64) ([]uint64, error) {
	var ids []uint64
	result := s.db.WithContext(ctx).
		Model(&model.Student{}).
		Distinct("parent_id").
		Where("class_id IN ? AND status = ? AND parent_id IS NOT NULL", classIDs, consts.StudentStatusActive).
		Pluck("parent_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// GetParentIDByStudentId 未绑定家长时返回 nil，不作为错误
func (s *StudentRepoImpl) GetParentIDByStudentId(ctx context.Context, studentID uint64) (*uint64, error) {
	student, err := s.GetStudentById(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}
	return student.ParentID, nil
}
