package services

import (
	"context"
	"errors"
	"testing"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
)

func testQuestion() models.Question {
	return models.Question{
		Text:             "What is the virtual DOM?",
		Difficulty:       models.DifficultyEasy,
		TimeLimitSeconds: 20,
	}
}

func TestEvaluateBlankAnswerShortCircuits(t *testing.T) {
	gemini := &fakeGeminiService{response: `{"score": 9, "feedback": "should never be used"}`}
	evaluator := NewAnswerEvaluator(gemini, "Full Stack Developer (React/Node.js)", 3)

	for _, blank := range []string{"", "   ", "\n\t "} {
		evaluation, err := evaluator.Evaluate(context.Background(), testQuestion(), blank)
		if err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", blank, err)
		}
		if evaluation.Score != 0 {
			t.Errorf("Evaluate(%q): expected score 0, got %d", blank, evaluation.Score)
		}
		if evaluation.Feedback != NoAnswerFeedback {
			t.Errorf("Evaluate(%q): expected feedback %q, got %q", blank, NoAnswerFeedback, evaluation.Feedback)
		}
	}

	if gemini.textCalls != 0 {
		t.Errorf("blank answers must not reach the model, got %d calls", gemini.textCalls)
	}
}

func TestEvaluateParsesModelVerdict(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		wantScore    int
		wantFeedback string
	}{
		{
			name:         "plain json",
			response:     `{"score": 8, "feedback": "Good grasp of reconciliation."}`,
			wantScore:    8,
			wantFeedback: "Good grasp of reconciliation.",
		},
		{
			name:         "markdown fenced",
			response:     "```json\n{\"score\": 6, \"feedback\": \"Partially correct.\"}\n```",
			wantScore:    6,
			wantFeedback: "Partially correct.",
		},
		{
			name:         "fractional score rounds",
			response:     `{"score": 7.6, "feedback": "Close to complete."}`,
			wantScore:    8,
			wantFeedback: "Close to complete.",
		},
		{
			name:         "score above range clamps to ten",
			response:     `{"score": 14, "feedback": "Over-enthusiastic grader."}`,
			wantScore:    10,
			wantFeedback: "Over-enthusiastic grader.",
		},
		{
			name:         "negative score clamps to zero",
			response:     `{"score": -3, "feedback": "Off topic."}`,
			wantScore:    0,
			wantFeedback: "Off topic.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := &fakeGeminiService{response: tt.response}
			evaluator := NewAnswerEvaluator(gemini, "Full Stack Developer (React/Node.js)", 3)

			evaluation, err := evaluator.Evaluate(context.Background(), testQuestion(), "the virtual DOM is a lightweight copy")
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if evaluation.Score != tt.wantScore {
				t.Errorf("expected score %d, got %d", tt.wantScore, evaluation.Score)
			}
			if evaluation.Feedback != tt.wantFeedback {
				t.Errorf("expected feedback %q, got %q", tt.wantFeedback, evaluation.Feedback)
			}
		})
	}
}

func TestEvaluateEmptyFeedbackIsMalformed(t *testing.T) {
	gemini := &fakeGeminiService{response: `{"score": 8, "feedback": "  "}`}
	evaluator := NewAnswerEvaluator(gemini, "Full Stack Developer (React/Node.js)", 3)

	_, err := evaluator.Evaluate(context.Background(), testQuestion(), "an answer")
	var malformedErr *apperrors.MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestEvaluateTransportFailure(t *testing.T) {
	gemini := &fakeGeminiService{err: errors.New("deadline exceeded")}
	evaluator := NewAnswerEvaluator(gemini, "Full Stack Developer (React/Node.js)", 3)

	_, err := evaluator.Evaluate(context.Background(), testQuestion(), "an answer")
	var configErr *apperrors.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{10, 10},
		{7.5, 8},
		{7.4, 7},
		{-1, 0},
		{11, 10},
	}

	for _, tt := range tests {
		if got := clampScore(tt.in); got != tt.want {
			t.Errorf("clampScore(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
