package models

import (
	"time"
)

// Studio 舞蹈工作室/场地目录条目
type Studio struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	City        string    `gorm:"size:50;not null;index" json:"city"`
	Address     string    `gorm:"size:200" json:"address"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	DanceStyles string    `gorm:"size:200" json:"dance_styles"` // 逗号分隔，如 "lindy hop,balboa"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
