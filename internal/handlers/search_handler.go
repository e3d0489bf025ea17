package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/services"
)

// defaultTopK applies when a request omits top_k. A negative value is
// passed through so the engine can reject it.
const defaultTopK = 5

type SearchHandler struct {
	engine services.MatchingEngine
	logger *zap.Logger
}

func NewSearchHandler(engine services.MatchingEngine, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{engine: engine, logger: logger}
}

// HandleSearchResumes handles POST /api/search-resumes: rank stored
// resumes against a job description.
func (h *SearchHandler) HandleSearchResumes(c *fiber.Ctx) error {
	var req models.SearchResumesRequest
	if err := c.BodyParser(&req); err != nil {
		return failBadRequest(c, "Invalid request payload")
	}

	topK := req.TopK
	if topK == 0 {
		topK = defaultTopK
	}

	matches, err := h.engine.SearchResumesForJob(c.Context(), req.JobDescription, topK)
	if err != nil {
		return fail(c, err)
	}

	h.logger.Debug("resume search served",
		zap.Int("top_k", topK), zap.Int("matches", len(matches)))

	return c.JSON(models.SearchResumesResponse{
		Success: true,
		Matches: matches,
	})
}

// HandleMatchJobs handles POST /api/match-jobs: rank stored job postings
// against resume text.
func (h *SearchHandler) HandleMatchJobs(c *fiber.Ctx) error {
	var req models.MatchJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return failBadRequest(c, "Invalid request payload")
	}

	jobs, err := h.engine.MatchJobsForResume(c.Context(), req.ResumeText, defaultTopK)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.MatchJobsResponse{
		Success: true,
		Jobs:    jobs,
	})
}
