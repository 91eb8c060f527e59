package models

type SessionStage string

const (
	StageUpload         SessionStage = "upload"
	StageInfoCollection SessionStage = "info-collection"
	StageInterview      SessionStage = "interview"
	StageCompleted      SessionStage = "completed"
)

// SessionSnapshot is a read-only copy of the in-progress session
// handed to the HTTP layer. Invariants while the session is active:
// CurrentQuestionIndex is a valid index into Questions, len(Answers)
// equals CurrentQuestionIndex, and TimeRemainingSeconds >= 0.
type SessionSnapshot struct {
	CandidateID          string           `json:"candidate_id,omitempty"`
	Stage                SessionStage     `json:"stage"`
	Profile              CandidateProfile `json:"profile"`
	MissingFields        []string         `json:"missing_fields,omitempty"`
	CurrentQuestionIndex int              `json:"current_question_index"`
	Questions            []Question       `json:"questions"`
	Answers              []Answer         `json:"answers"`
	IsActive             bool             `json:"is_active"`
	IsPaused             bool             `json:"is_paused"`
	TimeRemainingSeconds int              `json:"time_remaining_seconds"`
	FinalScore           *int             `json:"final_score,omitempty"`
	Summary              string           `json:"summary,omitempty"`
	LastError            string           `json:"last_error,omitempty"`
}

// CurrentQuestion returns the question the candidate is answering, or
// nil outside an active interview.
func (s *SessionSnapshot) CurrentQuestion() *Question {
	if !s.IsActive || s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.CurrentQuestionIndex]
	return &q
}
