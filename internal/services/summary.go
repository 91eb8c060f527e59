package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
)

// minSummaryLength rejects truncated or junk summaries.
const minSummaryLength = 50

type SummaryGenerator interface {
	Summarize(ctx context.Context, candidateName string, finalScore int, answers []models.Answer) (string, error)
}

type geminiSummaryGenerator struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	jobProfile    string
	maxRetries    int
}

func NewSummaryGenerator(geminiService GeminiService, jobProfile string, maxRetries int) SummaryGenerator {
	return &geminiSummaryGenerator{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		jobProfile:    jobProfile,
		maxRetries:    maxRetries,
	}
}

// Summarize implements SummaryGenerator.
func (g *geminiSummaryGenerator) Summarize(ctx context.Context, candidateName string, finalScore int, answers []models.Answer) (string, error) {
	prompt := g.promptBuilder.BuildSummaryPrompt(g.jobProfile, candidateName, finalScore, answers)

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		response, err := g.geminiService.GenerateText(ctx, prompt, 0.5)
		if err != nil {
			if ctx.Err() != nil {
				return "", apperrors.NewConfigurationError("summary generation",
					fmt.Errorf("context cancelled: %w", ctx.Err()))
			}
			if attempt < g.maxRetries {
				log.Printf("⚠️  Summary attempt %d failed: %v. Retrying...\n", attempt, err)
				continue
			}
			return "", apperrors.NewConfigurationError("summary generation", err)
		}

		summary := strings.TrimSpace(response)
		if len(summary) < minSummaryLength {
			// Likely truncated; retry rather than store a junk summary.
			if attempt < g.maxRetries {
				log.Printf("⚠️  Summary attempt %d too short (%d chars). Retrying...\n", attempt, len(summary))
				continue
			}
			return "", apperrors.NewMalformedResponseError("summary generation",
				fmt.Sprintf("summary too short (%d chars, need %d)", len(summary), minSummaryLength))
		}

		return summary, nil
	}

	return "", apperrors.NewConfigurationError("summary generation",
		fmt.Errorf("failed after %d attempts", g.maxRetries))
}
