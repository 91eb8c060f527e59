package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/raj921/ai-interview-bots/internal/models"
	"github.com/raj921/ai-interview-bots/internal/repositories"
	"github.com/raj921/ai-interview-bots/internal/services"
)

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	resumeParser   services.ResumeParserService
	sessionService services.SessionService
	maxFileSize    int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	resumeParser services.ResumeParserService,
	sessionService services.SessionService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		resumeParser:   resumeParser,
		sessionService: sessionService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /resume: save the file, extract contact
// fields, and hand the seed profile to the session state machine.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no 'resume' file in request",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	// Save file
	filename, filePath, err := h.storageService.SaveFile(file, "resume")
	if err != nil {
		return errorResponse(c, fmt.Errorf("failed to save resume file: %w", err))
	}

	contentType := services.ContentTypeForFilename(filename)

	profile, err := h.resumeParser.Parse(filePath, contentType)
	if err != nil {
		// An unreadable or unsupported document has no value on disk.
		h.storageService.DeleteFile(filename)
		return errorResponse(c, err)
	}

	resume := models.Resume{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		ContentType:      contentType,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.resumeRepo.Create(&resume); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume record: %v", err),
		})
	}

	snapshot, err := h.sessionService.ApplyResume(c.UserContext(), profile, &resume.ID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResumeResponse{
		ResumeID:      resume.ID.String(),
		OriginalName:  resume.OriginalFileName,
		Session:       *snapshot,
		MissingFields: snapshot.MissingFields,
	})
}
