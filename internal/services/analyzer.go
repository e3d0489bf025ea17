package services

import (
	"strings"

	"resumerag/matcher/internal/models"
)

var analysisSections = []string{"experience", "education", "skills", "projects"}

// AnalyzeResume reports structural properties of a resume text: word
// count, contact presence, which standard sections appear, and basic
// suggestions for the missing ones.
func AnalyzeResume(text string) *models.ResumeAnalysis {
	lower := strings.ToLower(text)

	analysis := &models.ResumeAnalysis{
		WordCount:     len(strings.Fields(text)),
		HasContact:    strings.Contains(lower, "email") || strings.Contains(lower, "phone") || strings.Contains(lower, "@"),
		SectionsFound: []string{},
		Suggestions:   []string{},
	}

	for _, section := range analysisSections {
		if strings.Contains(lower, section) {
			analysis.SectionsFound = append(analysis.SectionsFound, section)
		}
	}

	found := make(map[string]bool, len(analysis.SectionsFound))
	for _, section := range analysis.SectionsFound {
		found[section] = true
	}
	if !found["experience"] {
		analysis.Suggestions = append(analysis.Suggestions, "Consider adding an Experience section")
	}
	if !found["skills"] {
		analysis.Suggestions = append(analysis.Suggestions, "Add a Skills section to highlight your abilities")
	}

	return analysis
}
