package services

import (
	"math"

	"github.com/raj921/ai-interview-bots/internal/models"
)

// CalculateFinalScore maps per-answer scores (each 0-10) to a 0-100
// composite: round(sum / (n*10) * 100). An empty answer set scores 0.
func CalculateFinalScore(answers []models.Answer) int {
	if len(answers) == 0 {
		return 0
	}

	total := 0
	for _, answer := range answers {
		total += answer.Score
	}

	maxScore := len(answers) * 10
	return int(math.Round(float64(total) / float64(maxScore) * 100))
}
