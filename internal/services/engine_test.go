package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resumerag/matcher/internal/models"
	"resumerag/matcher/internal/repositories"
)

func newTestEngine(t *testing.T) MatchingEngine {
	t.Helper()
	return NewMatchingEngine(
		repositories.NewMemoryResumeRepository(),
		repositories.NewMemoryJobRepository(),
		NewDocumentExtractor(),
		NewProfileParser(nil),
		NewHashingEmbedder(DefaultEmbeddingDim, DefaultMaxInputChars),
		NewTextChunker(),
		NewMemoryIndex("resumes"),
		NewMemoryIndex("jobs"),
		DefaultMaxInputChars,
		zap.NewNop(),
	)
}

const pythonResume = `Alice Johnson
alice@example.com
555-123-4567

Skills
Python, SQL, Django, Pandas

Experience
Data engineer building analytics pipelines in Python and SQL.
`

const javaResume = `Bob Martin
bob@example.com
555-987-6543

Skills
Java, C++, Spring

Experience
Backend engineer working on JVM services in Java and C++.
`

func TestIngestResumePipeline(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	resume, err := engine.IngestResume(ctx, []byte(pythonResume), ".txt", "alice.txt", "", "")
	require.NoError(t, err)

	assert.NotEqual(t, "", resume.ID.String())
	assert.Equal(t, "alice.txt", resume.Filename)
	assert.Equal(t, "Alice Johnson", resume.Name)
	assert.Equal(t, "alice@example.com", resume.Email)
	assert.Contains(t, []string(resume.Skills), "python")
	assert.Contains(t, []string(resume.Skills), "sql")
	assert.NotEmpty(t, resume.RawText)
}

func TestIngestResumeFormValuesAuthoritative(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	resume, err := engine.IngestResume(ctx, []byte(pythonResume), ".txt", "alice.txt", "State University", "B.Sc Computer Science")
	require.NoError(t, err)

	assert.Equal(t, "State University", resume.College)
	assert.Equal(t, "B.Sc Computer Science", resume.Degree)
}

func TestIngestResumeEducationFallback(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	text := `Carol White
carol@example.com

Education
Bachelor of Engineering
Example Institute of Technology
`

	resume, err := engine.IngestResume(ctx, []byte(text), ".txt", "carol.txt", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Bachelor of Engineering", resume.Degree)
	assert.Equal(t, "Example Institute of Technology", resume.College)
}

func TestIngestResumeUnsupportedFormat(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.IngestResume(context.Background(), []byte("binary"), ".exe", "a.exe", "", "")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestIngestResumeEmptyDocument(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.IngestResume(context.Background(), []byte("   \n  "), ".txt", "empty.txt", "", "")
	require.ErrorIs(t, err, ErrEmptyDocument)
}

func TestSearchResumesRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.IngestResume(ctx, []byte(pythonResume), ".txt", "alice.txt", "", "")
	require.NoError(t, err)
	_, err = engine.IngestResume(ctx, []byte(javaResume), ".txt", "bob.txt", "", "")
	require.NoError(t, err)

	// Querying with a resume's own text must rank it first with the
	// maximum score.
	matches, err := engine.SearchResumesForJob(ctx, pythonResume, 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "alice.txt", matches[0].Filename)
	assert.InDelta(t, 1.0, matches[0].MatchScore, 1e-6)
}

func TestSearchResumesRanking(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.IngestResume(ctx, []byte(pythonResume), ".txt", "alice.txt", "", "")
	require.NoError(t, err)
	_, err = engine.IngestResume(ctx, []byte(javaResume), ".txt", "bob.txt", "", "")
	require.NoError(t, err)

	matches, err := engine.SearchResumesForJob(ctx, "Looking for a Python developer with SQL experience", 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "alice.txt", matches[0].Filename)
	assert.Equal(t, "bob.txt", matches[1].Filename)
	assert.Greater(t, matches[0].MatchScore, matches[1].MatchScore)

	for _, m := range matches {
		assert.GreaterOrEqual(t, m.MatchScore, 0.0)
		assert.LessOrEqual(t, m.MatchScore, 1.0)
		assert.NotEmpty(t, m.Preview)
	}
}

func TestSearchResumesEmptyIndex(t *testing.T) {
	engine := newTestEngine(t)

	matches, err := engine.SearchResumesForJob(context.Background(), "any query", 5)
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestSearchResumesEmptyQuery(t *testing.T) {
	engine := newTestEngine(t)

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := engine.SearchResumesForJob(context.Background(), query, 5)
		require.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestSearchResumesInvalidTopK(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.SearchResumesForJob(context.Background(), "query", 0)
	require.ErrorIs(t, err, ErrInvalidTopK)

	_, err = engine.SearchResumesForJob(context.Background(), "query", -3)
	require.ErrorIs(t, err, ErrInvalidTopK)
}

func TestAddJobAndMatch(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	pythonJob, err := engine.AddJob(ctx, &models.AddJobRequest{
		Title:        "Python Developer",
		Company:      "Data Co",
		Location:     "Remote",
		Description:  "Build data pipelines in Python with SQL and Pandas.",
		Requirements: "Python, SQL",
	})
	require.NoError(t, err)
	require.NotEqual(t, "", pythonJob.ID.String())

	_, err = engine.AddJob(ctx, &models.AddJobRequest{
		Title:       "Warehouse Supervisor",
		Company:     "Logistics Inc",
		Location:    "Springfield",
		Description: "Oversee forklift operations and shipping schedules.",
	})
	require.NoError(t, err)

	matches, err := engine.MatchJobsForResume(ctx, pythonResume, 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "Python Developer", matches[0].Title)
	assert.Equal(t, "Data Co", matches[0].Company)
	assert.Equal(t, "Remote", matches[0].Location)
	assert.Greater(t, matches[0].MatchScore, matches[1].MatchScore)
}

func TestMatchJobsEmptyQuery(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.MatchJobsForResume(context.Background(), "  ", 5)
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchTopKLimitsResults(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	resumes := []string{pythonResume, javaResume, `Dave Green
dave@example.com

Skills
React, TypeScript, CSS
`}
	for i, text := range resumes {
		_, err := engine.IngestResume(ctx, []byte(text), ".txt", string(rune('a'+i))+".txt", "", "")
		require.NoError(t, err)
	}

	matches, err := engine.SearchResumesForJob(ctx, "frontend engineer react typescript", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestFallbackDegree(t *testing.T) {
	tests := []struct {
		name      string
		education string
		want      string
	}{
		{"bachelor line", "Education\nBachelor of Science in CS", "Bachelor of Science in CS"},
		{"master line", "Education\nMaster of Engineering", "Master of Engineering"},
		{"none", "Education\nExample High School", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fallbackDegree(tt.education))
		})
	}
}

func TestFallbackCollege(t *testing.T) {
	assert.Equal(t, "Example University", fallbackCollege("Education\nExample University\n2020"))
	assert.Equal(t, "City College", fallbackCollege("City College"))
	assert.Equal(t, "", fallbackCollege("no institution mentioned"))
}

func TestComposeJobText(t *testing.T) {
	job := &models.JobPosting{
		Title:        "SRE",
		Company:      "Acme",
		Location:     "Berlin",
		Description:  "Keep things up",
		Requirements: "Go, Kubernetes",
	}

	text := composeJobText(job)
	assert.Contains(t, text, "Title: SRE")
	assert.Contains(t, text, "Company: Acme")
	assert.Contains(t, text, "Requirements: Go, Kubernetes")
}
