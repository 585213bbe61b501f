package model

import "time"

// ProficiencyRecord skill_progress 关联 skills、skill_categories 后的只读行
type ProficiencyRecord struct {
	SkillID          uint      `json:"skillId"`
	UserID           uint      `json:"userId"`
	SkillName        string    `json:"skillName"`
	Category         SkillType `json:"category"`
	CategoryName     string    `json:"categoryName"`
	RecordedDate     time.Time `json:"recordedDate"`
	ProficiencyLevel float64   `json:"proficiencyLevel"`
}

// SkillWithCategory skills 关联分类后的只读行
type SkillWithCategory struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"userId"`
	Name             string    `json:"name"`
	Category         SkillType `json:"category"`
	CategoryName     string    `json:"categoryName"`
	ProficiencyLevel float64   `json:"proficiencyLevel"`
}
