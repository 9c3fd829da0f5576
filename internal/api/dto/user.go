package dto

// RegisterDTO 注册请求，角色由管理端指定
type RegisterDTO struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=6,max=64"`
	FullName string  `json:"full_name" binding:"required,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Role     string  `json:"role" binding:"required,oneof=PARENT NURSE MANAGER ADMIN"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenDTO struct {
	Token string `json:"token"`
}

type UserDTO struct {
	ID       uint64   `json:"id"`
	Username *string  `json:"username"`
	FullName string   `json:"full_name"`
	Phone    *string  `json:"phone"`
	Roles    []string `json:"roles"`
}

// DeviceTokenDTO 移动端推送 token 注册/注销请求
type DeviceTokenDTO struct {
	Token string `json:"token" binding:"required,max=512"`
}
