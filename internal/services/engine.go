package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/repositories"
)

// MatchingEngine orchestrates extraction, parsing, embedding and index
// queries for both ranking directions: job description against stored
// resumes and resume text against stored job postings.
type MatchingEngine interface {
	// IngestResume runs the full upload pipeline: extract, parse, persist
	// and index. It is synchronous, so a search issued right after it
	// returns already sees the new resume.
	IngestResume(ctx context.Context, fileBytes []byte, extension, filename, college, degree string) (*models.Resume, error)

	// AddJob persists and indexes one job posting.
	AddJob(ctx context.Context, req *models.AddJobRequest) (*models.JobPosting, error)

	// SearchResumesForJob returns up to topK resumes ranked against the
	// job description, scores descending in [0,1]. An empty index yields
	// an empty list, not an error.
	SearchResumesForJob(ctx context.Context, jobDescription string, topK int) ([]models.ResumeMatch, error)

	// MatchJobsForResume is the symmetric direction over the job index.
	MatchJobsForResume(ctx context.Context, resumeText string, topK int) ([]models.JobMatch, error)

	// IndexResume and IndexJob re-insert already persisted records into
	// the vector index. Used by the startup reindex worker.
	IndexResume(ctx context.Context, resume *models.Resume) error
	IndexJob(ctx context.Context, job *models.JobPosting) error
}

type matchingEngine struct {
	resumeRepo  repositories.ResumeRepository
	jobRepo     repositories.JobRepository
	extractor   DocumentExtractor
	parser      ProfileParser
	embedder    Embedder
	chunker     TextChunker
	resumeIndex MatchIndex
	jobIndex    MatchIndex
	maxInput    int
	logger      *zap.Logger
}

func NewMatchingEngine(
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	extractor DocumentExtractor,
	parser ProfileParser,
	embedder Embedder,
	chunker TextChunker,
	resumeIndex MatchIndex,
	jobIndex MatchIndex,
	maxInputChars int,
	logger *zap.Logger,
) MatchingEngine {
	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}
	return &matchingEngine{
		resumeRepo:  resumeRepo,
		jobRepo:     jobRepo,
		extractor:   extractor,
		parser:      parser,
		embedder:    embedder,
		chunker:     chunker,
		resumeIndex: resumeIndex,
		jobIndex:    jobIndex,
		maxInput:    maxInputChars,
		logger:      logger,
	}
}

// IngestResume implements MatchingEngine.
func (e *matchingEngine) IngestResume(ctx context.Context, fileBytes []byte, extension, filename, college, degree string) (*models.Resume, error) {
	text, err := e.extractor.Extract(ctx, fileBytes, extension)
	if err != nil {
		return nil, err
	}

	parsed, err := e.parser.Parse(text)
	if err != nil {
		return nil, err
	}

	// Form values are authoritative; text-derived education is only a
	// fallback when the form left them blank.
	if degree == "" {
		degree = fallbackDegree(parsed.Education)
	}
	if college == "" {
		college = fallbackCollege(parsed.Education)
	}

	resume := &models.Resume{
		ID:         uuid.New(),
		Filename:   filename,
		Name:       parsed.Name,
		Email:      parsed.Email,
		Phone:      parsed.Phone,
		College:    college,
		Degree:     degree,
		Skills:     models.SkillList(parsed.Skills),
		Experience: parsed.Experience,
		Education:  parsed.Education,
		RawText:    text,
	}

	if err := e.resumeRepo.Create(resume); err != nil {
		return nil, err
	}

	if err := e.IndexResume(ctx, resume); err != nil {
		return nil, err
	}

	e.logger.Info("resume ingested",
		zap.String("resume_id", resume.ID.String()),
		zap.String("filename", filename),
		zap.Int("skills", len(resume.Skills)),
		zap.Int("text_length", len(text)),
	)
	return resume, nil
}

// IndexResume implements MatchingEngine. The embedding is computed from
// the same normalized text the profile was derived from and inserted
// together with its metadata, exactly once per resume.
func (e *matchingEngine) IndexResume(ctx context.Context, resume *models.Resume) error {
	vector, err := e.embed(ctx, resume.RawText)
	if err != nil {
		return err
	}

	return e.resumeIndex.Insert(ctx, resume.ID.String(), vector, map[string]string{
		"filename": resume.Filename,
	})
}

// AddJob implements MatchingEngine.
func (e *matchingEngine) AddJob(ctx context.Context, req *models.AddJobRequest) (*models.JobPosting, error) {
	job := &models.JobPosting{
		ID:           uuid.New(),
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
	}

	if err := e.jobRepo.Create(job); err != nil {
		return nil, err
	}

	if err := e.IndexJob(ctx, job); err != nil {
		return nil, err
	}

	e.logger.Info("job posted",
		zap.String("job_id", job.ID.String()),
		zap.String("title", job.Title),
		zap.String("company", job.Company),
	)
	return job, nil
}

// IndexJob implements MatchingEngine.
func (e *matchingEngine) IndexJob(ctx context.Context, job *models.JobPosting) error {
	vector, err := e.embed(ctx, composeJobText(job))
	if err != nil {
		return err
	}

	return e.jobIndex.Insert(ctx, job.ID.String(), vector, map[string]string{
		"title": job.Title,
	})
}

// SearchResumesForJob implements MatchingEngine.
func (e *matchingEngine) SearchResumesForJob(ctx context.Context, jobDescription string, topK int) ([]models.ResumeMatch, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := e.embed(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	results, err := e.resumeIndex.Query(ctx, vector, topK)
	if err != nil {
		return nil, err
	}

	matches := make([]models.ResumeMatch, 0, len(results))
	for _, result := range results {
		resume, err := e.hydrateResume(result.ID)
		if err != nil {
			e.logger.Warn("skipping unhydratable resume match",
				zap.String("resume_id", result.ID), zap.Error(err))
			continue
		}

		matches = append(matches, models.ResumeMatch{
			Filename:   resume.Filename,
			Name:       resume.Name,
			Email:      resume.Email,
			Phone:      resume.Phone,
			Skills:     resume.Skills,
			MatchScore: result.Score,
			Preview:    preview(resume.RawText, 200),
		})
	}
	return matches, nil
}

// MatchJobsForResume implements MatchingEngine.
func (e *matchingEngine) MatchJobsForResume(ctx context.Context, resumeText string, topK int) ([]models.JobMatch, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := e.embed(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	results, err := e.jobIndex.Query(ctx, vector, topK)
	if err != nil {
		return nil, err
	}

	matches := make([]models.JobMatch, 0, len(results))
	for _, result := range results {
		job, err := e.hydrateJob(result.ID)
		if err != nil {
			e.logger.Warn("skipping unhydratable job match",
				zap.String("job_id", result.ID), zap.Error(err))
			continue
		}

		matches = append(matches, models.JobMatch{
			Title:       job.Title,
			Company:     job.Company,
			Location:    job.Location,
			MatchScore:  result.Score,
			Description: preview(job.Description, 300),
		})
	}
	return matches, nil
}

// embed truncates to the embedder's input limit before embedding, so the
// hard ErrEmbeddingUnavailable length path is never hit in normal flow.
func (e *matchingEngine) embed(ctx context.Context, text string) ([]float32, error) {
	return e.embedder.Embed(ctx, e.chunker.TruncateText(text, e.maxInput))
}

func (e *matchingEngine) hydrateResume(id string) (*models.Resume, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid resume id %q: %w", id, err)
	}
	return e.resumeRepo.FindByID(parsed)
}

func (e *matchingEngine) hydrateJob(id string) (*models.JobPosting, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid job id %q: %w", id, err)
	}
	return e.jobRepo.FindByID(parsed)
}

// composeJobText builds the searchable representation of a posting, the
// same text its embedding is computed from.
func composeJobText(job *models.JobPosting) string {
	return strings.Join([]string{
		"Title: " + job.Title,
		"Company: " + job.Company,
		"Location: " + job.Location,
		"Description: " + job.Description,
		"Requirements: " + job.Requirements,
	}, "\n")
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "b.tech", "m.tech",
	"b.sc", "m.sc", "b.e", "m.e", "bca", "mca", "mba", "diploma",
}

// fallbackDegree scans the education excerpt for a line mentioning a
// known degree keyword.
func fallbackDegree(education string) string {
	for _, line := range strings.Split(education, "\n") {
		lower := strings.ToLower(line)
		for _, keyword := range degreeKeywords {
			if strings.Contains(lower, keyword) {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}

// fallbackCollege scans the education excerpt for an institution line.
func fallbackCollege(education string) string {
	for _, line := range strings.Split(education, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "university") ||
			strings.Contains(lower, "college") ||
			strings.Contains(lower, "institute") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
