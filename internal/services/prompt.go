package services

import (
	"fmt"
	"strings"

	"github.com/raj921/ai-interview-bots/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt creates the prompt for generating the
// six interview questions. ragContext is optional background retrieved
// from the knowledge collection (job profile, interview rubric).
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(jobProfile, ragContext string) string {
	contextSection := ""
	if strings.TrimSpace(ragContext) != "" {
		contextSection = fmt.Sprintf("\nBACKGROUND CONTEXT:\n%s\n", ragContext)
	}

	return fmt.Sprintf(`Generate 6 technical interview questions for a %s position.
%s
Requirements:
- 2 EASY questions (20 seconds to answer): basic concepts
- 2 MEDIUM questions (60 seconds to answer): practical implementation and frameworks
- 2 HARD questions (120 seconds to answer): system design and architecture

Return ONLY a JSON array with this exact format:
[
  {"text": "question text", "difficulty": "easy", "time_limit": 20},
  {"text": "question text", "difficulty": "easy", "time_limit": 20},
  {"text": "question text", "difficulty": "medium", "time_limit": 60},
  {"text": "question text", "difficulty": "medium", "time_limit": 60},
  {"text": "question text", "difficulty": "hard", "time_limit": 120},
  {"text": "question text", "difficulty": "hard", "time_limit": 120}
]

Important: Return ONLY the JSON array, no markdown, no code blocks, no explanation.`,
		jobProfile, contextSection)
}

// BuildAnswerEvaluationPrompt creates the prompt for scoring a single
// answer.
func (pb *PromptBuilder) BuildAnswerEvaluationPrompt(jobProfile string, question models.Question, answer string) string {
	return fmt.Sprintf(`You are an expert technical interviewer evaluating a %s candidate.

Question (%s difficulty): %s

Candidate's Answer: %s

Evaluate this answer and provide:
1. A score from 0-10 (where 10 is excellent, 7-9 is good, 4-6 is average, 0-3 is poor)
2. Constructive feedback (2-3 sentences)

Consider:
- Technical accuracy
- Completeness of the answer
- Depth of understanding
- Practical examples (if provided)
- Communication clarity

Return ONLY a JSON object with this exact format:
{"score": 8, "feedback": "Your feedback here"}

Important: Return ONLY the JSON object, no markdown, no code blocks, no explanation.`,
		jobProfile, question.Difficulty, question.Text, answer)
}

// BuildSummaryPrompt creates the prompt for the final hiring summary.
func (pb *PromptBuilder) BuildSummaryPrompt(jobProfile, candidateName string, finalScore int, answers []models.Answer) string {
	var scoreLines []string
	for _, a := range answers {
		words := strings.Fields(a.QuestionText)
		if len(words) > 10 {
			words = words[:10]
		}
		scoreLines = append(scoreLines, fmt.Sprintf("Q%d (%s...): Score %d/10",
			a.QuestionIndex+1, strings.Join(words, " "), a.Score))
	}

	return fmt.Sprintf(`You are an expert technical interviewer. Generate a professional summary for a %s candidate.

Candidate: %s
Final Score: %d/100

Individual Question Scores:
%s

Create a concise professional summary (3-4 sentences) that includes:
1. Overall performance assessment
2. Key strengths observed
3. Areas for improvement
4. Hiring recommendation

Tone: Professional, constructive, specific

Return ONLY the summary text, no JSON, no formatting.`,
		jobProfile, candidateName, finalScore, strings.Join(scoreLines, "\n"))
}

// BuildRetrievalQuery creates the query used to retrieve knowledge
// documents for question generation.
func (pb *PromptBuilder) BuildRetrievalQuery(docType, jobProfile string) string {
	switch docType {
	case "job_profile":
		return fmt.Sprintf("Job requirements and qualifications for %s", jobProfile)
	case "interview_rubric":
		return "Interview question guidelines, difficulty expectations, and evaluation criteria"
	default:
		return jobProfile
	}
}

// Helper to clean and format context from RAG results
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
