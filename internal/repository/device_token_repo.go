package repository

import (
	"SchoolCare/internal/pkg/consts"
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DeviceTokenRepo 用户设备推送 token 的注册集合
// 注册、注销、剔除全部走集合原子操作，并发修剪不会互相覆盖
type DeviceTokenRepo interface {
	GetTokens(ctx context.Context, userID uint64) ([]string, error)
	AddToken(ctx context.Context, userID uint64, token string) error
	RemoveTokens(ctx context.Context, userID uint64, tokens []string) error
}

type DeviceTokenRepoImpl struct {
	rdb *redis.Client
}

func NewDeviceTokenRepo(rdb *redis.Client) DeviceTokenRepo {
	return &DeviceTokenRepoImpl{rdb: rdb}
}

func tokenKey(userID uint64) string {
	return consts.UserPushTokensKey + strconv.FormatUint(userID, 10)
}

func (s *DeviceTokenRepoImpl) GetTokens(ctx context.Context, userID uint64) ([]string, error) {
	return s.rdb.SMembers(ctx, tokenKey(userID)).Result()
}

// AddToken 幂等注册，同一 token 重复注册无副作用
func (s *DeviceTokenRepoImpl) AddToken(ctx context.Context, userID uint64, token string) error {
	return s.rdb.SAdd(ctx, tokenKey(userID), token).Err()
}

// RemoveTokens 幂等剔除，token 不在集合中时静默通过
func (s *DeviceTokenRepoImpl) RemoveTokens(ctx context.Context, userID uint64, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(tokens))
	for _, t := range tokens {
		members = append(members, t)
	}
	return s.rdb.SRem(ctx, tokenKey(userID), members...).Err()
}
