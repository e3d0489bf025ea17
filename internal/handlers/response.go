package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resumerag/matcher/internal/services"
)

// recoverableErrors are engine failures that map to a 400 with
// {success:false, error}; anything else is a generic 500. Neither
// crashes the serving process.
var recoverableErrors = []error{
	services.ErrUnsupportedFormat,
	services.ErrCorruptDocument,
	services.ErrEmptyDocument,
	services.ErrParseInputInvalid,
	services.ErrEmbeddingUnavailable,
	services.ErrDuplicateID,
	services.ErrInvalidTopK,
	services.ErrEmptyQuery,
}

func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	for _, known := range recoverableErrors {
		if errors.Is(err, known) {
			status = fiber.StatusBadRequest
			break
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func failBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
