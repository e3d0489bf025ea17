package handlers

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/repositories"
	"resumerag/matcher/internal/services"
)

type ResumeHandler struct {
	engine         services.MatchingEngine
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	maxFileSize    int64
	logger         *zap.Logger
}

func NewResumeHandler(
	engine services.MatchingEngine,
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	maxFileSize int64,
	logger *zap.Logger,
) *ResumeHandler {
	return &ResumeHandler{
		engine:         engine,
		resumeRepo:     resumeRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleUploadResume handles POST /api/upload-resume.
func (h *ResumeHandler) HandleUploadResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return failBadRequest(c, "No file uploaded")
	}

	if fileHeader.Filename == "" {
		return failBadRequest(c, "No file selected")
	}
	if fileHeader.Size > h.maxFileSize {
		return failBadRequest(c, fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	ext := filepath.Ext(fileHeader.Filename)

	src, err := fileHeader.Open()
	if err != nil {
		return fail(c, fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fail(c, fmt.Errorf("failed to read uploaded file: %w", err))
	}

	filename, _, err := h.storageService.SaveFile(fileHeader.Filename, data)
	if err != nil {
		return fail(c, err)
	}

	college := c.FormValue("college")
	degree := c.FormValue("degree")

	resume, err := h.engine.IngestResume(c.Context(), data, ext, filename, college, degree)
	if err != nil {
		// Keep the upload directory consistent with the profile store
		if delErr := h.storageService.DeleteFile(filename); delErr != nil {
			h.logger.Warn("failed to clean up rejected upload",
				zap.String("filename", filename), zap.Error(delErr))
		}
		return fail(c, err)
	}

	return c.JSON(models.UploadResumeResponse{
		Success:  true,
		Filename: filename,
		Data: &models.ResumeData{
			Name:       resume.Name,
			Email:      resume.Email,
			Phone:      resume.Phone,
			College:    resume.College,
			Degree:     resume.Degree,
			Skills:     resume.Skills,
			Experience: resume.Experience,
			Education:  resume.Education,
		},
	})
}

// HandleGetResumes handles GET /api/get-resumes.
func (h *ResumeHandler) HandleGetResumes(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindAll()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"resumes": resumes,
	})
}

// HandleGetCollegeResumes handles GET /api/get-college-resumes: resumes
// tagged with a college affiliation, newest first.
func (h *ResumeHandler) HandleGetCollegeResumes(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindWithCollege()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"resumes": resumes,
	})
}

// HandleAnalyzeResume handles POST /api/analyze-resume.
func (h *ResumeHandler) HandleAnalyzeResume(c *fiber.Ctx) error {
	var req models.AnalyzeResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return failBadRequest(c, "Invalid request payload")
	}
	if req.ResumeText == "" {
		return failBadRequest(c, "resume_text is required")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"analysis": services.AnalyzeResume(req.ResumeText),
	})
}

// HandleListUploadedFiles handles GET /api/list-uploaded-files.
func (h *ResumeHandler) HandleListUploadedFiles(c *fiber.Ctx) error {
	files, err := h.storageService.ListFiles()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"files":   files,
		"total":   len(files),
	})
}
