package services

import (
	"context"
	"math"
	"strings"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
)

// NoAnswerFeedback is returned for blank answers without calling the
// collaborator.
const NoAnswerFeedback = "No answer provided."

// Evaluation is the evaluator's verdict on a single answer.
type Evaluation struct {
	Score    int
	Feedback string
}

type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question models.Question, answerText string) (*Evaluation, error)
}

type geminiAnswerEvaluator struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	jobProfile    string
	maxRetries    int
}

func NewAnswerEvaluator(geminiService GeminiService, jobProfile string, maxRetries int) AnswerEvaluator {
	return &geminiAnswerEvaluator{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		jobProfile:    jobProfile,
		maxRetries:    maxRetries,
	}
}

type evaluationPayload struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Evaluate implements AnswerEvaluator.
func (e *geminiAnswerEvaluator) Evaluate(ctx context.Context, question models.Question, answerText string) (*Evaluation, error) {
	// Blank answers never reach the collaborator.
	if strings.TrimSpace(answerText) == "" {
		return &Evaluation{Score: 0, Feedback: NoAnswerFeedback}, nil
	}

	prompt := e.promptBuilder.BuildAnswerEvaluationPrompt(e.jobProfile, question, answerText)

	response, err := e.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, e.maxRetries)
	if err != nil {
		return nil, apperrors.NewConfigurationError("answer evaluation", err)
	}

	var payload evaluationPayload
	if err := parseJSONResponse(response, &payload); err != nil {
		return nil, apperrors.NewMalformedResponseError("answer evaluation", err.Error())
	}

	if strings.TrimSpace(payload.Feedback) == "" {
		return nil, apperrors.NewMalformedResponseError("answer evaluation", "empty feedback")
	}

	return &Evaluation{
		Score:    clampScore(payload.Score),
		Feedback: strings.TrimSpace(payload.Feedback),
	}, nil
}

// clampScore rounds fractional scores and bounds them to [0,10].
func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 10 {
		return 10
	}
	return rounded
}
