package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizSubmission is the persisted record of one completed quiz session.
// Answers, profile and course suggestions are stored as JSON documents, the
// same shape the original submissions table used.
type QuizSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;not null" json:"first_name"`
	Email     string    `gorm:"column:email;not null;index" json:"email"`
	City      string    `gorm:"column:city;not null" json:"city"`
	Province  string    `gorm:"column:province" json:"province,omitempty"`
	Region    string    `gorm:"column:region" json:"region,omitempty"`
	Country   string    `gorm:"column:country;default:Italy" json:"country"`

	GDPRConsent bool `gorm:"column:gdpr_consent;not null" json:"gdpr_consent"`

	Answers          datatypes.JSON `gorm:"column:answers;not null" json:"answers"`
	ProfileResult    datatypes.JSON `gorm:"column:profile_result;not null" json:"profile_result"`
	SuggestedCourses datatypes.JSON `gorm:"column:suggested_courses" json:"suggested_courses,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (QuizSubmission) TableName() string { return "quiz_submissions" }
