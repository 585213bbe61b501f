package model

import (
	"time"

	"gorm.io/gorm"
)

type SkillType string

const (
	SkillTechnical SkillType = "technical"
	SkillSoft      SkillType = "soft"
)

// SkillTypes 报表中固定展示的技能分类
var SkillTypes = []SkillType{SkillTechnical, SkillSoft}

type SkillCategory struct {
	BaseModel
	Name string    `gorm:"size:100;not null" json:"name"`
	Type SkillType `gorm:"size:20;not null;index" json:"type"`
}

func (SkillCategory) TableName() string {
	return "skill_categories"
}

type Skill struct {
	BaseModel
	UserID           uint          `gorm:"index;not null" json:"userId"`
	CategoryID       uint          `gorm:"index;not null" json:"categoryId"`
	Category         SkillCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Name             string        `gorm:"size:100;not null" json:"name"`
	ProficiencyLevel float64       `gorm:"default:0" json:"proficiencyLevel"`
}

func (Skill) TableName() string {
	return "skills"
}

func (s *Skill) BeforeSave(tx *gorm.DB) error {
	s.ProficiencyLevel = ClampPercent(s.ProficiencyLevel)
	return nil
}

// SkillProgress 技能熟练度的历史快照
type SkillProgress struct {
	BaseModel
	SkillID          uint      `gorm:"index;not null" json:"skillId"`
	UserID           uint      `gorm:"index;not null" json:"userId"`
	RecordedDate     time.Time `gorm:"index;not null" json:"recordedDate"`
	ProficiencyLevel float64   `gorm:"not null" json:"proficiencyLevel"`
}

func (SkillProgress) TableName() string {
	return "skill_progress"
}

func (p *SkillProgress) BeforeSave(tx *gorm.DB) error {
	p.ProficiencyLevel = ClampPercent(p.ProficiencyLevel)
	return nil
}
