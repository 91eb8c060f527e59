package services

import (
	"errors"
	"testing"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
)

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.CandidateProfile
	}{
		{
			name: "all fields present",
			text: "Jane Doe\njane.doe@example.com\n555-123-4567\n\nExperience\nSenior Engineer at Acme",
			expected: models.CandidateProfile{
				Name:  "Jane Doe",
				Email: "jane.doe@example.com",
				Phone: "555-123-4567",
			},
		},
		{
			name: "name found but email absent",
			text: "Jane Doe\n555-123-4567\n\nExperience\nSenior Engineer at Acme",
			expected: models.CandidateProfile{
				Name:  "Jane Doe",
				Phone: "555-123-4567",
			},
		},
		{
			name: "first line is not a name",
			text: "Curriculum Vitae 2024\nJane Doe\njane@example.com",
			expected: models.CandidateProfile{
				Email: "jane@example.com",
			},
		},
		{
			name: "first line is an email address",
			text: "jane@example.com\nJane Doe",
			expected: models.CandidateProfile{
				Email: "jane@example.com",
			},
		},
		{
			name: "parenthesized phone",
			text: "Jane Doe\n(555) 123-4567",
			expected: models.CandidateProfile{
				Name:  "Jane Doe",
				Phone: "(555) 123-4567",
			},
		},
		{
			name: "international phone",
			text: "Jane Doe\n+1 555 123 4567",
			expected: models.CandidateProfile{
				Name:  "Jane Doe",
				Phone: "+1 555 123 4567",
			},
		},
		{
			name:     "empty text yields empty profile",
			text:     "",
			expected: models.CandidateProfile{},
		},
		{
			name: "leading blank lines skipped before name",
			text: "\n\n  Jane Doe\njane@example.com",
			expected: models.CandidateProfile{
				Name:  "Jane Doe",
				Email: "jane@example.com",
			},
		},
	}

	parser := NewResumeParserService(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.ExtractFields(tt.text)
			if got != tt.expected {
				t.Errorf("ExtractFields() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseUnsupportedContentType(t *testing.T) {
	parser := NewResumeParserService(nil)

	_, err := parser.Parse("/tmp/resume.txt", "text/plain")
	var formatErr *apperrors.UnsupportedFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestMissingFieldsOrder(t *testing.T) {
	tests := []struct {
		name     string
		profile  models.CandidateProfile
		expected []string
	}{
		{"complete", models.CandidateProfile{Name: "J", Email: "j@x.com", Phone: "555"}, nil},
		{"all missing", models.CandidateProfile{}, []string{"name", "email", "phone"}},
		{"email missing", models.CandidateProfile{Name: "J", Phone: "555"}, []string{"email"}},
		{"name and phone missing", models.CandidateProfile{Email: "j@x.com"}, []string{"name", "phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.MissingFields()
			if len(got) != len(tt.expected) {
				t.Fatalf("MissingFields() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("MissingFields() = %v, want %v", got, tt.expected)
				}
			}
		})
	}
}
