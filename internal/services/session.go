package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
	"github.com/raj921/ai-interview-bots/internal/models"
	"github.com/raj921/ai-interview-bots/internal/repositories"
)

// NoAnswerText is recorded as the answer text when the countdown
// expires with nothing staged.
const NoAnswerText = "No answer provided."

// SessionService owns the single in-progress interview session.
// Every exported method is an atomic transition: it either applies
// fully or leaves the session unchanged.
type SessionService interface {
	// ApplyResume seeds the session from extracted resume fields. A
	// complete profile starts the interview immediately; otherwise the
	// session moves to info collection.
	ApplyResume(ctx context.Context, profile models.CandidateProfile, resumeID *uuid.UUID) (*models.SessionSnapshot, error)
	// SubmitProfile fills the fields extraction missed and starts the
	// interview once all three are present.
	SubmitProfile(ctx context.Context, name, email, phone string) (*models.SessionSnapshot, error)
	// StageDraft stores the answer text an expiring countdown will
	// auto-submit.
	StageDraft(text string) (*models.SessionSnapshot, error)
	// SubmitAnswer evaluates and records an answer. auto marks
	// countdown-triggered submissions, which accept blank text.
	SubmitAnswer(ctx context.Context, text string, auto bool) (*models.Answer, *models.SessionSnapshot, error)
	Pause() (*models.SessionSnapshot, error)
	Resume() (*models.SessionSnapshot, error)
	// Reset returns the session to its initial state. Persisted
	// candidate records are untouched; results of any in-flight
	// evaluation are discarded when they arrive.
	Reset() *models.SessionSnapshot
	// Tick advances the countdown by one second and fires the
	// automatic submission when it reaches zero.
	Tick()
	Snapshot() *models.SessionSnapshot
}

type sessionState struct {
	stage         models.SessionStage
	candidateID   uuid.UUID
	resumeID      *uuid.UUID
	profile       models.CandidateProfile
	missingFields []string
	questions     []models.Question
	answers       []models.Answer
	currentIndex  int
	isActive      bool
	isPaused      bool
	timeRemaining int
	draft         string
	finalScore    *int
	summary       string
	lastError     string
	startedAt     time.Time
}

func initialSessionState() sessionState {
	return sessionState{stage: models.StageUpload}
}

type sessionService struct {
	mu    sync.Mutex
	state sessionState

	// generation is bumped on Reset so results of evaluator calls that
	// outlive the session they belong to are discarded.
	generation uint64
	// inFlight enforces at most one outstanding submission.
	inFlight bool
	// autoPending is set between the expiring tick and the moment the
	// spawned auto-submission takes over.
	autoPending bool

	questionProvider QuestionProvider
	evaluator        AnswerEvaluator
	summarizer       SummaryGenerator
	candidateRepo    repositories.CandidateRepository

	now func() time.Time
}

func NewSessionService(
	questionProvider QuestionProvider,
	evaluator AnswerEvaluator,
	summarizer SummaryGenerator,
	candidateRepo repositories.CandidateRepository,
) SessionService {
	return &sessionService{
		state:            initialSessionState(),
		questionProvider: questionProvider,
		evaluator:        evaluator,
		summarizer:       summarizer,
		candidateRepo:    candidateRepo,
		now:              time.Now,
	}
}

// ApplyResume implements SessionService.
func (s *sessionService) ApplyResume(ctx context.Context, profile models.CandidateProfile, resumeID *uuid.UUID) (*models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.stage != models.StageUpload {
		return nil, apperrors.NewValidationError("stage",
			fmt.Sprintf("a resume can only be uploaded at the start of a session (current stage: %s)", s.state.stage))
	}

	s.state.profile = profile
	s.state.resumeID = resumeID

	if profile.Complete() {
		if err := s.startInterviewLocked(ctx); err != nil {
			return nil, err
		}
		return s.snapshotLocked(), nil
	}

	s.state.stage = models.StageInfoCollection
	s.state.missingFields = profile.MissingFields()
	s.state.lastError = ""
	return s.snapshotLocked(), nil
}

// SubmitProfile implements SessionService.
func (s *sessionService) SubmitProfile(ctx context.Context, name, email, phone string) (*models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.stage != models.StageInfoCollection {
		return nil, apperrors.NewValidationError("stage",
			fmt.Sprintf("profile details can only be submitted during info collection (current stage: %s)", s.state.stage))
	}

	merged := s.state.profile
	if name = strings.TrimSpace(name); name != "" {
		merged.Name = name
	}
	if email = strings.TrimSpace(email); email != "" {
		merged.Email = email
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		merged.Phone = phone
	}

	if missing := merged.MissingFields(); len(missing) > 0 {
		return nil, apperrors.NewValidationError("profile",
			fmt.Sprintf("please provide: %s", strings.Join(missing, ", ")))
	}

	s.state.profile = merged
	if err := s.startInterviewLocked(ctx); err != nil {
		return nil, err
	}

	return s.snapshotLocked(), nil
}

// startInterviewLocked performs the interview entry actions: request
// questions, create the candidate record, activate the countdown. On
// any failure the stage reverts to upload and no candidate is created.
// Caller holds the mutex.
func (s *sessionService) startInterviewLocked(ctx context.Context) error {
	questions, err := s.questionProvider.GenerateQuestions(ctx)
	if err != nil {
		s.state.stage = models.StageUpload
		s.state.missingFields = nil
		s.state.lastError = err.Error()
		return err
	}

	candidate := &models.Candidate{
		ID:        uuid.New(),
		Name:      s.state.profile.Name,
		Email:     s.state.profile.Email,
		Phone:     s.state.profile.Phone,
		ResumeID:  s.state.resumeID,
		StartedAt: s.now(),
		Questions: models.QuestionList(questions),
		Answers:   models.AnswerList{},
	}

	if err := s.candidateRepo.Create(candidate); err != nil {
		s.state.stage = models.StageUpload
		s.state.missingFields = nil
		s.state.lastError = err.Error()
		return fmt.Errorf("failed to create candidate record: %w", err)
	}

	s.state.candidateID = candidate.ID
	s.state.questions = questions
	s.state.answers = nil
	s.state.currentIndex = 0
	s.state.isActive = true
	s.state.isPaused = false
	s.state.stage = models.StageInterview
	s.state.timeRemaining = questions[0].TimeLimitSeconds
	s.state.draft = ""
	s.state.missingFields = nil
	s.state.finalScore = nil
	s.state.summary = ""
	s.state.lastError = ""
	s.state.startedAt = candidate.StartedAt

	log.Printf("🎤 Interview started for candidate %s (%s)\n", candidate.Name, candidate.ID)
	return nil
}

// StageDraft implements SessionService.
func (s *sessionService) StageDraft(text string) (*models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.isActive {
		return nil, apperrors.NewValidationError("stage", "no active interview")
	}

	s.state.draft = text
	return s.snapshotLocked(), nil
}

// SubmitAnswer implements SessionService.
func (s *sessionService) SubmitAnswer(ctx context.Context, text string, auto bool) (*models.Answer, *models.SessionSnapshot, error) {
	s.mu.Lock()

	if !s.state.isActive {
		s.mu.Unlock()
		return nil, nil, apperrors.NewValidationError("stage", "no active interview")
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, nil, apperrors.NewValidationError("answer", "the previous answer is still being evaluated")
	}

	answerText := strings.TrimSpace(text)
	if auto && answerText == "" {
		answerText = strings.TrimSpace(s.state.draft)
	}
	if !auto && answerText == "" {
		s.mu.Unlock()
		return nil, nil, apperrors.NewValidationError("answer", "please provide an answer")
	}

	gen := s.generation
	idx := s.state.currentIndex
	question := s.state.questions[idx]
	isLast := idx == len(s.state.questions)-1
	candidateID := s.state.candidateID
	candidateName := s.state.profile.Name

	priorAnswers := make([]models.Answer, len(s.state.answers))
	copy(priorAnswers, s.state.answers)

	s.inFlight = true
	s.mu.Unlock()

	answer, err := s.evaluateAnswer(ctx, question, idx, answerText, auto)
	if err != nil {
		s.failSubmission(gen, err)
		return nil, nil, err
	}

	allAnswers := append(priorAnswers, *answer)

	var finalScore int
	var summary string
	if isLast {
		// Aggregate, summarize and persist before touching session
		// state so a failing collaborator never half-finalizes the
		// candidate.
		finalScore = CalculateFinalScore(allAnswers)

		if !s.stillCurrent(gen) {
			return nil, nil, errSessionReset()
		}

		summary, err = s.summarizer.Summarize(ctx, candidateName, finalScore, allAnswers)
		if err != nil {
			s.failSubmission(gen, err)
			return nil, nil, err
		}

		// The completion write is durable. A session that was reset
		// while the summary was outstanding must not finalize its
		// candidate row.
		if !s.stillCurrent(gen) {
			return nil, nil, errSessionReset()
		}

		completedAt := answer.SubmittedAt
		if err := s.candidateRepo.Complete(candidateID, models.AnswerList(allAnswers), finalScore, summary, completedAt); err != nil {
			err = fmt.Errorf("failed to finalize candidate: %w", err)
			s.failSubmission(gen, err)
			return nil, nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		// The session was reset while the evaluation was outstanding;
		// the result no longer belongs to anyone.
		return nil, nil, errSessionReset()
	}

	s.inFlight = false
	s.state.answers = allAnswers
	s.state.currentIndex = idx + 1
	s.state.draft = ""
	s.state.lastError = ""

	if isLast {
		s.state.isActive = false
		s.state.stage = models.StageCompleted
		s.state.timeRemaining = 0
		s.state.finalScore = &finalScore
		s.state.summary = summary
		log.Printf("🏁 Interview completed for candidate %s: score %d/100\n", candidateID, finalScore)
	} else {
		s.state.timeRemaining = s.state.questions[idx+1].TimeLimitSeconds
	}

	return answer, s.snapshotLocked(), nil
}

// evaluateAnswer invokes the evaluator (blank text short-circuits
// inside it) and builds the Answer record.
func (s *sessionService) evaluateAnswer(ctx context.Context, question models.Question, idx int, answerText string, auto bool) (*models.Answer, error) {
	evalText := answerText
	recordText := answerText
	if auto && recordText == "" {
		recordText = NoAnswerText
	}

	evaluation, err := s.evaluator.Evaluate(ctx, question, evalText)
	if err != nil {
		return nil, err
	}

	return &models.Answer{
		QuestionIndex: idx,
		QuestionText:  question.Text,
		AnswerText:    recordText,
		Score:         evaluation.Score,
		Feedback:      evaluation.Feedback,
		SubmittedAt:   s.now(),
	}, nil
}

// stillCurrent reports whether the submission identified by gen still
// belongs to the live session.
func (s *sessionService) stillCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == gen
}

func errSessionReset() error {
	return apperrors.NewValidationError("session", "the session was reset while the answer was being evaluated")
}

// failSubmission releases the in-flight slot and records the failure
// reason, unless the session was reset in the meantime.
func (s *sessionService) failSubmission(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return
	}

	s.inFlight = false
	s.state.lastError = err.Error()
}

// Pause implements SessionService.
func (s *sessionService) Pause() (*models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.isActive {
		return nil, apperrors.NewValidationError("stage", "no active interview")
	}

	s.state.isPaused = true
	return s.snapshotLocked(), nil
}

// Resume implements SessionService.
func (s *sessionService) Resume() (*models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.isActive {
		return nil, apperrors.NewValidationError("stage", "no active interview")
	}

	s.state.isPaused = false
	return s.snapshotLocked(), nil
}

// Reset implements SessionService.
func (s *sessionService) Reset() *models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.inFlight = false
	s.autoPending = false
	s.state = initialSessionState()

	return s.snapshotLocked()
}

// Tick implements SessionService. Called once per second by the
// countdown runner while the process is up; it is a no-op unless an
// unpaused interview is running.
func (s *sessionService) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.isActive || s.state.isPaused {
		return
	}

	if s.state.timeRemaining > 0 {
		s.state.timeRemaining--
	}

	// Reaching zero fires exactly one automatic submission. A failed
	// attempt leaves the countdown at zero, so a later tick retries.
	if s.state.timeRemaining == 0 && !s.inFlight && !s.autoPending {
		gen := s.generation
		s.autoPending = true
		go s.runAutoSubmit(gen)
	}
}

func (s *sessionService) runAutoSubmit(gen uint64) {
	defer func() {
		s.mu.Lock()
		if s.generation == gen {
			s.autoPending = false
		}
		s.mu.Unlock()
	}()

	if _, _, err := s.SubmitAnswer(context.Background(), "", true); err != nil {
		log.Printf("⚠️  Automatic submission failed: %v\n", err)
	}
}

// Snapshot implements SessionService.
func (s *sessionService) Snapshot() *models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked copies the session for the HTTP layer. Caller holds
// the mutex.
func (s *sessionService) snapshotLocked() *models.SessionSnapshot {
	snapshot := &models.SessionSnapshot{
		Stage:                s.state.stage,
		Profile:              s.state.profile,
		CurrentQuestionIndex: s.state.currentIndex,
		Questions:            make([]models.Question, len(s.state.questions)),
		Answers:              make([]models.Answer, len(s.state.answers)),
		IsActive:             s.state.isActive,
		IsPaused:             s.state.isPaused,
		TimeRemainingSeconds: s.state.timeRemaining,
		Summary:              s.state.summary,
		LastError:            s.state.lastError,
	}

	copy(snapshot.Questions, s.state.questions)
	copy(snapshot.Answers, s.state.answers)

	if s.state.candidateID != uuid.Nil {
		snapshot.CandidateID = s.state.candidateID.String()
	}
	if len(s.state.missingFields) > 0 {
		snapshot.MissingFields = append([]string(nil), s.state.missingFields...)
	}
	if s.state.finalScore != nil {
		score := *s.state.finalScore
		snapshot.FinalScore = &score
	}

	return snapshot
}
