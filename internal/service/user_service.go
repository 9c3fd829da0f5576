package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"SchoolCare/internal/pkg/redis"
	"SchoolCare/internal/pkg/security"
	"SchoolCare/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	RegisterDeviceToken(ctx context.Context, userID uint64, token string) error
	UnregisterDeviceToken(ctx context.Context, userID uint64, token string) error
}

type UserServiceImpl struct {
	userRepo  repository.UserRepo
	tokenRepo repository.DeviceTokenRepo
}

func NewUserService(userRepo repository.UserRepo, tokenRepo repository.DeviceTokenRepo) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserExist
	}

	user := &model.User{}
	if err := copier.Copy(user, regDTO); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}
	user.Username = &regDTO.Username
	user.Password = &passwordHash

	return s.userRepo.CreateUser(ctx, user, regDTO.Role)
}

func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, loginDTO.Username)
	if err != nil {
		return "", err
	}
	if user == nil || user.IsDelete {
		return "", ErrUserNotFound
	}
	if user.IsBan {
		return "", ErrUserBan
	}
	if user.Password == nil {
		return "", ErrPasswordIncorrect
	}
	if err := security.CheckPasswordHash(loginDTO.Password, *user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}

	return security.GenerateToken(user.ID, roleNames(user))
}

// Logout 将 token 签名拉黑，有效期对齐 token 剩余生命周期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistPrefix+signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	userDTO.Roles = roleNames(user)
	return userDTO, nil
}

func (s *UserServiceImpl) RegisterDeviceToken(ctx context.Context, userID uint64, token string) error {
	return s.tokenRepo.AddToken(ctx, userID, token)
}

func (s *UserServiceImpl) UnregisterDeviceToken(ctx context.Context, userID uint64, token string) error {
	return s.tokenRepo.RemoveTokens(ctx, userID, []string{token})
}

func roleNames(user *model.User) []string {
	names := make([]string, 0, len(user.UserRoles))
	for _, ur := range user.UserRoles {
		names = append(names, ur.Role.Name)
	}
	return names
}
