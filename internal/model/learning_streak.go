package model

import "time"

// LearningStreak 每日学习时长记录
type LearningStreak struct {
	BaseModel
	UserID     uint      `gorm:"index:idx_learning_streak_user_date;not null" json:"userId"`
	Date       time.Time `gorm:"index:idx_learning_streak_user_date;not null" json:"date"`
	HoursSpent float64   `gorm:"default:0" json:"hoursSpent"`
}

func (LearningStreak) TableName() string {
	return "learning_streak"
}
