package analytics

import (
	"math"

	"skilltracker_backend/internal/model"
	"skilltracker_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	reasonMissingDate     = "missing_date"
	reasonNegativeHours   = "negative_hours"
	reasonNotANumber      = "not_a_number"
	reasonOutOfRange      = "out_of_range"
	reasonUnknownCategory = "unknown_category"
)

// 单条非法记录只剔除并记录日志，不影响整份报表
func (a *Assembler) drop(kind, reason string, userID uint, fields ...zap.Field) {
	monitoring.DroppedRecords.WithLabelValues(kind, reason).Inc()
	a.log.Warn("dropped analytics record",
		append([]zap.Field{
			zap.String("kind", kind),
			zap.String("reason", reason),
			zap.Uint("user_id", userID),
		}, fields...)...,
	)
}

func (a *Assembler) validActivity(kind string, records []model.LearningStreak) []model.LearningStreak {
	out := make([]model.LearningStreak, 0, len(records))
	for _, r := range records {
		switch {
		case r.Date.IsZero():
			a.drop(kind, reasonMissingDate, r.UserID, zap.Uint("record_id", r.ID))
		case math.IsNaN(r.HoursSpent) || math.IsInf(r.HoursSpent, 0):
			a.drop(kind, reasonNotANumber, r.UserID, zap.Uint("record_id", r.ID))
		case r.HoursSpent < 0:
			a.drop(kind, reasonNegativeHours, r.UserID, zap.Uint("record_id", r.ID), zap.Float64("hours", r.HoursSpent))
		default:
			out = append(out, r)
		}
	}
	return out
}

func validLevel(v float64) (bool, string) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false, reasonNotANumber
	}
	if v < 0 || v > 100 {
		return false, reasonOutOfRange
	}
	return true, ""
}

func (a *Assembler) validProficiency(kind string, records []model.ProficiencyRecord) []model.ProficiencyRecord {
	out := make([]model.ProficiencyRecord, 0, len(records))
	for _, r := range records {
		if r.RecordedDate.IsZero() {
			a.drop(kind, reasonMissingDate, r.UserID, zap.Uint("skill_id", r.SkillID))
			continue
		}
		if ok, reason := validLevel(r.ProficiencyLevel); !ok {
			a.drop(kind, reason, r.UserID, zap.Uint("skill_id", r.SkillID), zap.Float64("level", r.ProficiencyLevel))
			continue
		}
		out = append(out, r)
	}
	return out
}

func (a *Assembler) validSkills(kind string, skills []model.SkillWithCategory) []model.SkillWithCategory {
	out := make([]model.SkillWithCategory, 0, len(skills))
	for _, s := range skills {
		if ok, reason := validLevel(s.ProficiencyLevel); !ok {
			a.drop(kind, reason, s.UserID, zap.Uint("skill_id", s.ID), zap.Float64("level", s.ProficiencyLevel))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (a *Assembler) validCertifications(kind string, certs []model.Certification) []model.Certification {
	out := make([]model.Certification, 0, len(certs))
	for _, c := range certs {
		if c.IssueDate.IsZero() {
			a.drop(kind, reasonMissingDate, c.UserID, zap.Uint("certification_id", c.ID))
			continue
		}
		out = append(out, c)
	}
	return out
}
