package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrUserExist             = errors.New("用户已存在")
	ErrPasswordIncorrect     = errors.New("密码错误")
	ErrUserBan               = errors.New("用户已被封禁")
	ErrStudentNotFound       = errors.New("学生不存在")
	ErrStudentNotLinked      = errors.New("该学生未绑定当前家长")
	ErrCampaignNotFound      = errors.New("活动不存在")
	ErrCampaignNotDraft      = errors.New("活动不在草稿状态")
	ErrMedicationNotFound    = errors.New("用药申请不存在")
	ErrMedicationNotPending  = errors.New("用药申请不在待处理状态")
	ErrInventoryNotFound     = errors.New("库存物品不存在")
	ErrInventoryInsufficient = errors.New("库存数量不足")
	ErrNotificationNotFound  = errors.New("通知不存在")
	ErrTargetUserInvalid     = errors.New("目标用户无效")
	UnauthorizedError        = errors.New("权限不足")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrUserNotFound:          NotFound,
	ErrUserExist:             BadRequest,
	ErrPasswordIncorrect:     Unauthorized,
	ErrUserBan:               Unauthorized,
	ErrStudentNotFound:       NotFound,
	ErrStudentNotLinked:      Unauthorized,
	ErrCampaignNotFound:      NotFound,
	ErrCampaignNotDraft:      BadRequest,
	ErrMedicationNotFound:    NotFound,
	ErrMedicationNotPending:  BadRequest,
	ErrInventoryNotFound:     NotFound,
	ErrInventoryInsufficient: BadRequest,
	ErrNotificationNotFound:  NotFound,
	ErrTargetUserInvalid:     BadRequest,
	UnauthorizedError:        Unauthorized,
	UnExpectedError:          InternalServerError,
}
