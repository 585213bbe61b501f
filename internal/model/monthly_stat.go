package model

import "time"

// MonthlyStat 每个用户每个自然月一行，Month 为当月第一天。
// 不做软删除：(user_id, month) 唯一索引要求被删除的行真正消失。
type MonthlyStat struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UserID         uint      `gorm:"uniqueIndex:idx_monthly_stats_user_month;not null" json:"userId"`
	Month          time.Time `gorm:"uniqueIndex:idx_monthly_stats_user_month;not null" json:"month"`
	ActiveCourses  int       `gorm:"default:0" json:"activeCourses"`
	Certifications int       `gorm:"default:0" json:"certifications"`
	SkillsMastered int       `gorm:"default:0" json:"skillsMastered"`
	LearningHours  float64   `gorm:"default:0" json:"learningHours"`
	CompletedGoals int       `gorm:"default:0" json:"completedGoals"`
	TotalGoals     int       `gorm:"default:0" json:"totalGoals"`
}

func (MonthlyStat) TableName() string {
	return "monthly_stats"
}

// MonthStart 返回 t 所在自然月（按 t 自身时区判断）第一天的 UTC 零点，作为 month 列的取值
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
