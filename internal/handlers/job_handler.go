package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/repositories"
	"resumerag/matcher/internal/services"
)

type JobHandler struct {
	engine  services.MatchingEngine
	jobRepo repositories.JobRepository
}

func NewJobHandler(engine services.MatchingEngine, jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{engine: engine, jobRepo: jobRepo}
}

// HandleAddJob handles POST /api/add-job.
func (h *JobHandler) HandleAddJob(c *fiber.Ctx) error {
	var req models.AddJobRequest
	if err := c.BodyParser(&req); err != nil {
		return failBadRequest(c, "Invalid request payload")
	}

	if req.Title == "" {
		return failBadRequest(c, "title is required")
	}
	if req.Company == "" {
		return failBadRequest(c, "company is required")
	}
	if req.Location == "" {
		return failBadRequest(c, "location is required")
	}

	if _, err := h.engine.AddJob(c.Context(), &req); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job posted successfully",
	})
}

// HandleGetJobs handles GET /api/get-jobs.
func (h *JobHandler) HandleGetJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"jobs":    jobs,
	})
}
