package model

import "time"

type CertificationStatus string

const (
	CertActive   CertificationStatus = "active"
	CertExpiring CertificationStatus = "expiring"
	CertExpired  CertificationStatus = "expired"
)

type Certification struct {
	BaseModel
	UserID       uint                `gorm:"index;not null" json:"userId"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Issuer       string              `gorm:"size:255;not null" json:"issuer"`
	IssueDate    time.Time           `gorm:"not null" json:"issueDate"`
	ExpiryDate   *time.Time          `json:"expiryDate"`
	CredentialID string              `gorm:"size:100" json:"credentialId"`
	Status       CertificationStatus `gorm:"size:20;default:'active'" json:"status"`
	ImageURL     string              `gorm:"size:255" json:"imageUrl"`
}

func (Certification) TableName() string {
	return "certifications"
}
