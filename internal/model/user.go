package model

// swagger:model User
type User struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;unique;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ProgressTarget 用户每月学习时长目标（小时）
type ProgressTarget struct {
	BaseModel
	UserID        uint     `gorm:"uniqueIndex;not null" json:"userId"`
	MonthlyTarget *float64 `json:"monthlyTarget"`
}

func (ProgressTarget) TableName() string {
	return "progress_targets"
}
