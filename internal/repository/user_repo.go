package repository

import (
	"SchoolCare/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserIDsByRole(ctx context.Context, roleName string) ([]uint64, error)
	CreateUser(ctx context.Context, user *model.User, roleName string) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Preload("UserRoles.Role").
		First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Preload("UserRoles.Role").
		Where("username = ?", username).
		First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

// GetUserIDsByRole 按角色检索用户ID，用于面向某个角色群体的通知扇出
func (s *UserRepoImpl) GetUserIDsByRole(ctx context.Context, roleName string) ([]uint64, error) {
	var ids []uint64
	result := s.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", roleName).
		Pluck("user_roles.user_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// CreateUser 事务内创建用户并绑定角色
func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User, roleName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role model.Role
		if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
			return err
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		return tx.Create(&model.UserRole{UserID: user.ID, RoleID: role.ID}).Error
	})
}
