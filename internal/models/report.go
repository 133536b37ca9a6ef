package models

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/autocv/internal/feedback"
	"alfredoptarigan/autocv/internal/resume"
)

// ReportEvidence is the evidence persisted with a report.
type ReportEvidence struct {
	MissingSections resume.MissingSections `json:"missing_sections"`
	SkillGaps       []string               `json:"skill_gaps"`
	WeakBullets     []string               `json:"weak_bullets"`
	ATSIssues       []string               `json:"ats_issues"`
	Dimensions      map[string][]string    `json:"dimensions,omitempty"`
}

type Report struct {
	ID             uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	Filename       string                   `gorm:"type:text;not null" json:"filename"`
	TargetRole     *string                  `gorm:"type:text" json:"target_role"`
	OverallScore   float64                  `gorm:"not null" json:"overall_score"`
	SubScores      map[string]float64       `gorm:"type:jsonb;serializer:json" json:"sub_scores"`
	Feedback       feedback.Report          `gorm:"type:jsonb;serializer:json" json:"feedback"`
	BulletRewrites []feedback.BulletRewrite `gorm:"type:jsonb;serializer:json" json:"bullet_rewrites"`
	Evidence       ReportEvidence           `gorm:"type:jsonb;serializer:json" json:"evidence"`
	CreatedAt      time.Time                `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
