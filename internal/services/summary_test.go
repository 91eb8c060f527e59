package services

import (
	"context"
	"errors"
	"testing"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
)

// seqGeminiService replays a scripted sequence of responses, one per
// GenerateText call.
type seqGeminiService struct {
	responses []string
	errs      []error
	calls     int
}

func (s *seqGeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 768), nil
}

func (s *seqGeminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (s *seqGeminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return s.GenerateText(ctx, prompt, temperature)
}

const goodSummary = "Jane demonstrated strong React fundamentals and clear communication throughout the interview. Recommended for the next round."

func interviewAnswers() []models.Answer {
	return []models.Answer{
		{QuestionIndex: 0, QuestionText: "Q1", AnswerText: "A1", Score: 8, Feedback: "Good."},
		{QuestionIndex: 1, QuestionText: "Q2", AnswerText: "A2", Score: 7, Feedback: "Fine."},
	}
}

func TestSummarizeReturnsModelText(t *testing.T) {
	gemini := &seqGeminiService{responses: []string{"  " + goodSummary + "\n"}}
	generator := NewSummaryGenerator(gemini, "Full Stack Developer (React/Node.js)", 3)

	summary, err := generator.Summarize(context.Background(), "Jane Doe", 83, interviewAnswers())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != goodSummary {
		t.Errorf("expected trimmed summary %q, got %q", goodSummary, summary)
	}
}

func TestSummarizeRetriesShortSummary(t *testing.T) {
	gemini := &seqGeminiService{responses: []string{"Too short.", goodSummary}}
	generator := NewSummaryGenerator(gemini, "Full Stack Developer (React/Node.js)", 3)

	summary, err := generator.Summarize(context.Background(), "Jane Doe", 83, interviewAnswers())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != goodSummary {
		t.Errorf("expected retry to return %q, got %q", goodSummary, summary)
	}
	if gemini.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", gemini.calls)
	}
}

func TestSummarizePersistentlyShortIsMalformed(t *testing.T) {
	gemini := &seqGeminiService{responses: []string{"Too short.", "Still short.", "Nope."}}
	generator := NewSummaryGenerator(gemini, "Full Stack Developer (React/Node.js)", 3)

	_, err := generator.Summarize(context.Background(), "Jane Doe", 83, interviewAnswers())
	var malformedErr *apperrors.MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if gemini.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", gemini.calls)
	}
}

func TestSummarizeRetriesTransportFailure(t *testing.T) {
	gemini := &seqGeminiService{
		errs:      []error{errors.New("overloaded"), nil},
		responses: []string{"", goodSummary},
	}
	generator := NewSummaryGenerator(gemini, "Full Stack Developer (React/Node.js)", 3)

	summary, err := generator.Summarize(context.Background(), "Jane Doe", 83, interviewAnswers())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != goodSummary {
		t.Errorf("expected %q, got %q", goodSummary, summary)
	}
}

func TestSummarizeExhaustedRetriesIsConfigurationError(t *testing.T) {
	failure := errors.New("overloaded")
	gemini := &seqGeminiService{errs: []error{failure, failure, failure}}
	generator := NewSummaryGenerator(gemini, "Full Stack Developer (React/Node.js)", 3)

	_, err := generator.Summarize(context.Background(), "Jane Doe", 83, interviewAnswers())
	var configErr *apperrors.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
