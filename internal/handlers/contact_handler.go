package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/repositories"
)

type ContactHandler struct {
	contactRepo repositories.ContactRepository
}

func NewContactHandler(contactRepo repositories.ContactRepository) *ContactHandler {
	return &ContactHandler{contactRepo: contactRepo}
}

// HandleContactAdmin handles POST /api/contact-admin.
func (h *ContactHandler) HandleContactAdmin(c *fiber.Ctx) error {
	var req models.ContactAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return failBadRequest(c, "Invalid request payload")
	}

	if req.Name == "" || req.Email == "" {
		return failBadRequest(c, "name and email are required")
	}

	contact := &models.AdminContact{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  models.ContactPending,
	}

	if err := h.contactRepo.Create(contact); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Your message has been sent to admin",
	})
}
