package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raj921/ai-interview-bots/internal/models"
)

type CandidateSort string

const (
	SortByScore CandidateSort = "score"
	SortByName  CandidateSort = "name"
	SortByDate  CandidateSort = "date"
)

type CandidateFilter struct {
	Search        string
	Sort          CandidateSort
	CompletedOnly bool
}

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	Complete(id uuid.UUID, answers models.AnswerList, score int, summary string, completedAt time.Time) error
	List(filter CandidateFilter) ([]models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

// Complete finalizes a candidate record. A missing row is an error: by
// the time an interview completes the candidate must already exist.
func (r *candidateRepository) Complete(id uuid.UUID, answers models.AnswerList, score int, summary string, completedAt time.Time) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"answers":      answers,
			"score":        score,
			"summary":      summary,
			"completed_at": completedAt,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to finalize candidate: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate %s not found on completion", id)
	}

	return nil
}

func (r *candidateRepository) List(filter CandidateFilter) ([]models.Candidate, error) {
	query := r.db.Model(&models.Candidate{})

	if filter.CompletedOnly {
		query = query.Where("completed_at IS NOT NULL")
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR email ILIKE ? OR phone LIKE ?",
			pattern, pattern, pattern,
		)
	}

	switch filter.Sort {
	case SortByScore:
		query = query.Order("score DESC NULLS LAST")
	case SortByName:
		query = query.Order("name ASC")
	case SortByDate:
		query = query.Order("completed_at DESC NULLS LAST")
	default:
		// Insertion order.
		query = query.Order("created_at ASC")
	}

	var candidates []models.Candidate
	if err := query.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, nil
}
