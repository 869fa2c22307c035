package models

import (
	"time"
)

// 舞者角色
const (
	DanceRoleLeader   = "leader"
	DanceRoleFollower = "follower"
	DanceRoleBoth     = "both"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 用户状态
const (
	UserStatusNormal = 0
	UserStatusMuted  = 1
	UserStatusBanned = 2
)

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"not null" json:"username"` // Username can be modified
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"` // Hash
	Avatar        string     `gorm:"default:🕺" json:"avatar"`
	Bio           string     `gorm:"size:200" json:"bio"`
	DanceRole     string     `gorm:"size:20;default:'both'" json:"dance_role"`    // leader, follower, both
	DanceYears    int        `gorm:"default:0" json:"dance_years"`                // 舞龄（年）
	Role          string     `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	Status        int        `gorm:"default:0" json:"status"`                     // 0:正常, 1:禁言, 2:封禁
	PunishExpires *time.Time `json:"punish_expires"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	// No DeletedAt for hard delete
}
