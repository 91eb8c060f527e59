package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
)

type fakeGeminiService struct {
	response  string
	err       error
	textCalls int
}

func (f *fakeGeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 768), nil
}

func (f *fakeGeminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.textCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGeminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

const validQuestionsJSON = `[
	{"text": "What is the virtual DOM?", "difficulty": "easy", "time_limit": 20},
	{"text": "What does useState return?", "difficulty": "easy", "time_limit": 20},
	{"text": "How does the Node.js event loop work?", "difficulty": "medium", "time_limit": 60},
	{"text": "Explain Express middleware ordering.", "difficulty": "medium", "time_limit": 60},
	{"text": "Design a rate limiter for a public API.", "difficulty": "hard", "time_limit": 120},
	{"text": "How would you debug a memory leak in production?", "difficulty": "hard", "time_limit": 120}
]`

func TestGenerateQuestionsFromModelResponse(t *testing.T) {
	gemini := &fakeGeminiService{
		response: "Here are the questions:\n```json\n" + validQuestionsJSON + "\n```",
	}
	provider := NewQuestionProvider(gemini, nil, "Full Stack Developer (React/Node.js)", 3)

	questions, err := provider.GenerateQuestions(context.Background())
	if err != nil {
		t.Fatalf("GenerateQuestions failed: %v", err)
	}

	if len(questions) != QuestionCount {
		t.Fatalf("expected %d questions, got %d", QuestionCount, len(questions))
	}
	for i, q := range questions {
		if q.Difficulty != questionPlan[i].Difficulty {
			t.Errorf("question %d: expected difficulty %s, got %s", i+1, questionPlan[i].Difficulty, q.Difficulty)
		}
		if q.TimeLimitSeconds != questionPlan[i].TimeLimitSeconds {
			t.Errorf("question %d: expected limit %d, got %d", i+1, questionPlan[i].TimeLimitSeconds, q.TimeLimitSeconds)
		}
	}
	if questions[0].Text != "What is the virtual DOM?" {
		t.Errorf("unexpected first question text: %q", questions[0].Text)
	}
}

func TestGenerateQuestionsTransportFailure(t *testing.T) {
	gemini := &fakeGeminiService{err: errors.New("connection refused")}
	provider := NewQuestionProvider(gemini, nil, "Full Stack Developer (React/Node.js)", 3)

	_, err := provider.GenerateQuestions(context.Background())
	var configErr *apperrors.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestGenerateQuestionsUnparsableResponse(t *testing.T) {
	gemini := &fakeGeminiService{response: "I cannot generate questions right now."}
	provider := NewQuestionProvider(gemini, nil, "Full Stack Developer (React/Node.js)", 3)

	_, err := provider.GenerateQuestions(context.Background())
	var malformedErr *apperrors.MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestValidateQuestions(t *testing.T) {
	valid := func() []questionPayload {
		payload := make([]questionPayload, 0, QuestionCount)
		for i, plan := range questionPlan {
			payload = append(payload, questionPayload{
				Text:       "Question " + string(rune('A'+i)),
				Difficulty: string(plan.Difficulty),
				TimeLimit:  plan.TimeLimitSeconds,
			})
		}
		return payload
	}

	tests := []struct {
		name    string
		mutate  func([]questionPayload) []questionPayload
		wantErr string
	}{
		{
			name:   "valid payload",
			mutate: func(p []questionPayload) []questionPayload { return p },
		},
		{
			name:    "too few questions",
			mutate:  func(p []questionPayload) []questionPayload { return p[:4] },
			wantErr: "expected 6 questions, got 4",
		},
		{
			name:    "too many questions",
			mutate:  func(p []questionPayload) []questionPayload { return append(p, p[0]) },
			wantErr: "expected 6 questions, got 7",
		},
		{
			name: "empty text",
			mutate: func(p []questionPayload) []questionPayload {
				p[2].Text = ""
				return p
			},
			wantErr: "question 3 has empty text",
		},
		{
			name: "unknown difficulty",
			mutate: func(p []questionPayload) []questionPayload {
				p[0].Difficulty = "trivial"
				return p
			},
			wantErr: `unknown difficulty "trivial"`,
		},
		{
			name: "difficulty out of order",
			mutate: func(p []questionPayload) []questionPayload {
				p[1].Difficulty = "hard"
				return p
			},
			wantErr: "question 2 must be easy, got hard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := validateQuestions(tt.mutate(valid()))

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(questions) != QuestionCount {
					t.Fatalf("expected %d questions, got %d", QuestionCount, len(questions))
				}
				return
			}

			var malformedErr *apperrors.MalformedResponseError
			if !errors.As(err, &malformedErr) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateQuestionsNormalizesTimeLimits(t *testing.T) {
	payload := make([]questionPayload, 0, QuestionCount)
	for i, plan := range questionPlan {
		payload = append(payload, questionPayload{
			Text:       "Question " + string(rune('A'+i)),
			Difficulty: string(plan.Difficulty),
			TimeLimit:  999,
		})
	}

	questions, err := validateQuestions(payload)
	if err != nil {
		t.Fatalf("validateQuestions failed: %v", err)
	}
	for i, q := range questions {
		if q.TimeLimitSeconds != questionPlan[i].TimeLimitSeconds {
			t.Errorf("question %d: limit not normalized, got %d", i+1, q.TimeLimitSeconds)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object",
			input:    `{"score": 8}`,
			expected: `{"score": 8}`,
		},
		{
			name:     "fenced object",
			input:    "```json\n{\"score\": 8}\n```",
			expected: `{"score": 8}`,
		},
		{
			name:     "array of objects",
			input:    `[{"a": 1}, {"b": 2}]`,
			expected: `[{"a": 1}, {"b": 2}]`,
		},
		{
			name:     "prose around object",
			input:    `Sure! Here it is: {"score": 8} Hope that helps.`,
			expected: `{"score": 8}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if strings.TrimSpace(got) != strings.TrimSpace(tt.expected) {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGenerateQuestionsRejectsWrongShape(t *testing.T) {
	gemini := &fakeGeminiService{
		response: `[{"text": "only one", "difficulty": "easy", "time_limit": 20}]`,
	}
	provider := NewQuestionProvider(gemini, nil, "Full Stack Developer (React/Node.js)", 3)

	_, err := provider.GenerateQuestions(context.Background())
	var malformedErr *apperrors.MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}
