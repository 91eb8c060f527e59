package services

import (
	"context"
	"fmt"
	"log"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
)

// QuestionCount is the fixed number of questions per interview.
const QuestionCount = 6

// questionPlan is the contractual difficulty/time structure: the
// provider may generate any text, but the sequence is always two easy,
// two medium, two hard with these limits.
var questionPlan = []struct {
	Difficulty       models.Difficulty
	TimeLimitSeconds int
}{
	{models.DifficultyEasy, 20},
	{models.DifficultyEasy, 20},
	{models.DifficultyMedium, 60},
	{models.DifficultyMedium, 60},
	{models.DifficultyHard, 120},
	{models.DifficultyHard, 120},
}

type QuestionProvider interface {
	GenerateQuestions(ctx context.Context) ([]models.Question, error)
}

type geminiQuestionProvider struct {
	geminiService GeminiService
	qdrantService QdrantService
	promptBuilder *PromptBuilder
	jobProfile    string
	maxRetries    int
}

// NewQuestionProvider creates the Gemini-backed provider. qdrantService
// may be nil, in which case questions are generated from the job
// profile alone.
func NewQuestionProvider(
	geminiService GeminiService,
	qdrantService QdrantService,
	jobProfile string,
	maxRetries int,
) QuestionProvider {
	return &geminiQuestionProvider{
		geminiService: geminiService,
		qdrantService: qdrantService,
		promptBuilder: NewPromptBuilder(),
		jobProfile:    jobProfile,
		maxRetries:    maxRetries,
	}
}

type questionPayload struct {
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
	TimeLimit  int    `json:"time_limit"`
}

// GenerateQuestions implements QuestionProvider.
func (p *geminiQuestionProvider) GenerateQuestions(ctx context.Context) ([]models.Question, error) {
	ragContext := p.retrieveContext(ctx)

	prompt := p.promptBuilder.BuildQuestionGenerationPrompt(p.jobProfile, ragContext)

	response, err := p.geminiService.GenerateTextWithRetry(ctx, prompt, 0.7, p.maxRetries)
	if err != nil {
		return nil, apperrors.NewConfigurationError("question generation", err)
	}

	var payload []questionPayload
	if err := parseJSONResponse(response, &payload); err != nil {
		return nil, apperrors.NewMalformedResponseError("question generation", err.Error())
	}

	return validateQuestions(payload)
}

// retrieveContext pulls job profile and rubric chunks from the
// knowledge collection. Best effort: retrieval failures only degrade
// the prompt, never the transition.
func (p *geminiQuestionProvider) retrieveContext(ctx context.Context) string {
	if p.qdrantService == nil {
		return ""
	}

	var allResults []SearchResult
	for _, docType := range []string{"job_profile", "interview_rubric"} {
		query := p.promptBuilder.BuildRetrievalQuery(docType, p.jobProfile)

		embedding, err := p.geminiService.GenerateEmbedding(ctx, query)
		if err != nil {
			log.Printf("⚠️  Failed to embed retrieval query for %s: %v\n", docType, err)
			continue
		}

		results, err := p.qdrantService.SearchSimilar(ctx, embedding, docType, 3)
		if err != nil {
			log.Printf("⚠️  Failed to search for %s: %v\n", docType, err)
			continue
		}
		allResults = append(allResults, results...)
	}

	return FormatRAGContext(allResults)
}

// validateQuestions enforces the contract: exactly six questions in
// difficulty order easy,easy,medium,medium,hard,hard. Time limits are
// normalized to the contractual values; anything else about the shape
// is a hard failure.
func validateQuestions(payload []questionPayload) ([]models.Question, error) {
	if len(payload) != QuestionCount {
		return nil, apperrors.NewMalformedResponseError("question generation",
			fmt.Sprintf("expected %d questions, got %d", QuestionCount, len(payload)))
	}

	questions := make([]models.Question, 0, QuestionCount)
	for i, q := range payload {
		if q.Text == "" {
			return nil, apperrors.NewMalformedResponseError("question generation",
				fmt.Sprintf("question %d has empty text", i+1))
		}

		difficulty := models.Difficulty(q.Difficulty)
		if !difficulty.Valid() {
			return nil, apperrors.NewMalformedResponseError("question generation",
				fmt.Sprintf("question %d has unknown difficulty %q", i+1, q.Difficulty))
		}

		expected := questionPlan[i]
		if difficulty != expected.Difficulty {
			return nil, apperrors.NewMalformedResponseError("question generation",
				fmt.Sprintf("question %d must be %s, got %s", i+1, expected.Difficulty, difficulty))
		}

		questions = append(questions, models.Question{
			Text:             q.Text,
			Difficulty:       difficulty,
			TimeLimitSeconds: expected.TimeLimitSeconds,
		})
	}

	return questions, nil
}
