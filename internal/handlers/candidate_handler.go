package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/raj921/ai-interview-bots/internal/models"
	"github.com/raj921/ai-interview-bots/internal/repositories"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
}

func NewCandidateHandler(candidateRepo repositories.CandidateRepository) *CandidateHandler {
	return &CandidateHandler{candidateRepo: candidateRepo}
}

// HandleList handles GET /candidates. By default only finished
// interviews are listed, sorted by score; ?all=true includes
// in-progress candidates.
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.CandidateFilter{
		Search:        c.Query("search"),
		CompletedOnly: c.Query("all") != "true",
	}

	switch c.Query("sort", "score") {
	case "name":
		filter.Sort = repositories.SortByName
	case "date":
		filter.Sort = repositories.SortByDate
	case "score":
		filter.Sort = repositories.SortByScore
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid sort: expected one of score, name, date",
		})
	}

	candidates, err := h.candidateRepo.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list candidates",
		})
	}

	summaries := make([]models.CandidateSummary, 0, len(candidates))
	for _, candidate := range candidates {
		summary := models.CandidateSummary{
			ID:    candidate.ID.String(),
			Name:  candidate.Name,
			Email: candidate.Email,
			Phone: candidate.Phone,
			Score: candidate.Score,
		}
		if candidate.CompletedAt != nil {
			completed := candidate.CompletedAt.Format(time.RFC3339)
			summary.CompletedAt = &completed
		}
		summaries = append(summaries, summary)
	}

	return c.JSON(models.CandidateListResponse{
		Candidates: summaries,
		Total:      len(summaries),
	})
}

// HandleGetCandidate handles GET /candidates/:id, returning the full
// transcript with per-question scores and feedback.
func (h *CandidateHandler) HandleGetCandidate(c *fiber.Ctx) error {
	idParam := c.Params("id")
	candidateID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "candidate not found",
		})
	}

	return c.JSON(candidate)
}
