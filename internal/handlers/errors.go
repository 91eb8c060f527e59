package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/raj921/ai-interview-bots/internal/apperrors"
)

// statusForError maps the error taxonomy to HTTP status codes. None of
// these crash the process; the Fiber error handler renders them as
// JSON.
func statusForError(err error) int {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest
	}

	var formatErr *apperrors.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		return fiber.StatusUnsupportedMediaType
	}

	var malformedErr *apperrors.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return fiber.StatusBadGateway
	}

	var configErr *apperrors.ConfigurationError
	if errors.As(err, &configErr) {
		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
