package models

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProfile holds the contact fields extracted from the resume.
// Mutable only before the interview starts; frozen once the session is
// active.
type CandidateProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// MissingFields reports which required fields are still unset, in a
// fixed order.
func (p CandidateProfile) MissingFields() []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

func (p CandidateProfile) Complete() bool {
	return len(p.MissingFields()) == 0
}

type Candidate struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Email       string       `gorm:"type:text;not null" json:"email"`
	Phone       string       `gorm:"type:text;not null" json:"phone"`
	ResumeID    *uuid.UUID   `gorm:"type:uuid" json:"resume_id,omitempty"`
	StartedAt   time.Time    `gorm:"type:timestamp;not null" json:"started_at"`
	Questions   QuestionList `gorm:"type:jsonb;not null" json:"questions"`
	Answers     AnswerList   `gorm:"type:jsonb;not null" json:"answers"`
	Score       *int         `gorm:"type:integer" json:"score,omitempty"`
	Summary     *string      `gorm:"type:text" json:"summary,omitempty"`
	CompletedAt *time.Time   `gorm:"type:timestamp" json:"completed_at,omitempty"`
	CreatedAt   time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}

func (c *Candidate) Profile() CandidateProfile {
	return CandidateProfile{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func (c *Candidate) Completed() bool {
	return c.CompletedAt != nil
}
