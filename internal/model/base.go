package model

import (
	"time"

	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ClampPercent 将百分比限制在 [0,100]
func ClampPercent(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
