package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is immutable once generated. A session holds exactly six:
// two easy, two medium, two hard, in that order.
type Question struct {
	Text             string     `json:"text"`
	Difficulty       Difficulty `json:"difficulty"`
	TimeLimitSeconds int        `json:"time_limit_seconds"`
}

// Answer is created exactly once per question, append-only, ordered by
// QuestionIndex.
type Answer struct {
	QuestionIndex int       `json:"question_index"`
	QuestionText  string    `json:"question_text"`
	AnswerText    string    `json:"answer_text"`
	Score         int       `json:"score"`
	Feedback      string    `json:"feedback"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// QuestionList and AnswerList are stored as JSONB columns on the
// candidates table.
type QuestionList []Question

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		q = QuestionList{}
	}
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("failed to scan questions: unexpected type %T", value)
		}
	}

	return json.Unmarshal(bytes, q)
}

type AnswerList []Answer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		a = AnswerList{}
	}
	return json.Marshal(a)
}

func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("failed to scan answers: unexpected type %T", value)
		}
	}

	return json.Unmarshal(bytes, a)
}
