package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/repositories"
)

type StudentHandler struct {
	studentRepo repositories.StudentRepository
}

func NewStudentHandler(studentRepo repositories.StudentRepository) *StudentHandler {
	return &StudentHandler{studentRepo: studentRepo}
}

// HandleAddStudent handles POST /api/add-student.
func (h *StudentHandler) HandleAddStudent(c *fiber.Ctx) error {
	var req models.AddStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return failBadRequest(c, "Invalid request payload")
	}

	if req.Name == "" || req.Email == "" || req.College == "" || req.Degree == "" {
		return failBadRequest(c, "name, email, college and degree are required")
	}

	student := &models.Student{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		College: req.College,
		Degree:  req.Degree,
		Year:    req.Year,
		Phone:   req.Phone,
	}

	if err := h.studentRepo.Create(student); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student added successfully",
	})
}

// HandleGetStudents handles GET /api/get-students.
func (h *StudentHandler) HandleGetStudents(c *fiber.Ctx) error {
	students, err := h.studentRepo.FindAll()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"students": students,
	})
}
