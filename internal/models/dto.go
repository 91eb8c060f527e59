package models

type UploadResumeResponse struct {
	ResumeID      string          `json:"resume_id"`
	OriginalName  string          `json:"original_name"`
	Session       SessionSnapshot `json:"session"`
	MissingFields []string        `json:"missing_fields,omitempty"`
}

type SubmitProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SubmitAnswerRequest struct {
	Text string `json:"text"`
}

type SubmitAnswerResponse struct {
	Answer  Answer          `json:"answer"`
	Session SessionSnapshot `json:"session"`
}

type StageDraftRequest struct {
	Text string `json:"text"`
}

type CandidateSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Score       *int    `json:"score,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

type CandidateListResponse struct {
	Candidates []CandidateSummary `json:"candidates"`
	Total      int                `json:"total"`
}
