package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raj921/ai-interview-bots/internal/models"
	"github.com/raj921/ai-interview-bots/internal/services"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// HandleGetSession handles GET /session
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	return c.JSON(h.sessionService.Snapshot())
}

// HandleSubmitProfile handles POST /session/profile
func (h *SessionHandler) HandleSubmitProfile(c *fiber.Ctx) error {
	var req models.SubmitProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	snapshot, err := h.sessionService.SubmitProfile(c.UserContext(), req.Name, req.Email, req.Phone)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(snapshot)
}

// HandleSubmitAnswer handles POST /session/answer. Submissions from
// this endpoint are always manual; blank text is rejected.
func (h *SessionHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	answer, snapshot, err := h.sessionService.SubmitAnswer(c.UserContext(), req.Text, false)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.SubmitAnswerResponse{
		Answer:  *answer,
		Session: *snapshot,
	})
}

// HandleStageDraft handles PUT /session/draft. The staged text is what
// an expiring countdown auto-submits.
func (h *SessionHandler) HandleStageDraft(c *fiber.Ctx) error {
	var req models.StageDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	snapshot, err := h.sessionService.StageDraft(req.Text)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(snapshot)
}

// HandlePause handles POST /session/pause
func (h *SessionHandler) HandlePause(c *fiber.Ctx) error {
	snapshot, err := h.sessionService.Pause()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(snapshot)
}

// HandleResume handles POST /session/resume
func (h *SessionHandler) HandleResume(c *fiber.Ctx) error {
	snapshot, err := h.sessionService.Resume()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(snapshot)
}

// HandleReset handles POST /session/reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	return c.JSON(h.sessionService.Reset())
}
