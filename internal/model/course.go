package model

import "gorm.io/gorm"

type CourseStatus string

const (
	CourseActive    CourseStatus = "active"
	CourseCompleted CourseStatus = "completed"
	CoursePaused    CourseStatus = "paused"
)

type Course struct {
	BaseModel
	UserID   uint         `gorm:"index;not null" json:"userId"`
	Title    string       `gorm:"size:255;not null" json:"title"`
	Status   CourseStatus `gorm:"size:20;default:'active'" json:"status"`
	Progress float64      `gorm:"default:0" json:"progress"`
	Rating   *float64     `json:"rating"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	c.Progress = ClampPercent(c.Progress)
	return nil
}
