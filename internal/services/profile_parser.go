package services

import (
	"regexp"
	"strings"
	"unicode"
)

// ParsedProfile holds the fields extracted from resume text. Id and
// embedding are filled in by the caller. Missing fields are empty, never
// an error: partial profiles are valid.
type ParsedProfile struct {
	Name       string
	Email      string
	Phone      string
	Skills     []string
	Experience string
	Education  string
}

// ProfileParser extracts a structured candidate profile from normalized
// resume text using pattern and lexicon rules.
type ProfileParser interface {
	Parse(text string) (*ParsedProfile, error)
}

type profileParser struct {
	lexicon *SkillLexicon
}

func NewProfileParser(lexicon *SkillLexicon) ProfileParser {
	if lexicon == nil {
		lexicon = NewSkillLexicon(nil)
	}
	return &profileParser{lexicon: lexicon}
}

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\d{10}`),
}

var sectionKeywords = map[string][]string{
	"experience": {"experience", "work history", "employment"},
	"education":  {"education", "academic", "qualification"},
}

func (p *profileParser) Parse(text string) (*ParsedProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrParseInputInvalid
	}

	return &ParsedProfile{
		Name:       extractName(text),
		Email:      emailPattern.FindString(text),
		Phone:      extractPhone(text),
		Skills:     p.extractSkills(text),
		Experience: extractSection(text, sectionKeywords["experience"]),
		Education:  extractSection(text, sectionKeywords["education"]),
	}, nil
}

// extractName looks for a capitalized line near the top of the document.
// Returns empty when nothing plausible is found.
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	checked := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > 5 {
			break
		}
		if len(line) <= 3 || len(line) >= 50 {
			continue
		}
		if strings.ContainsAny(line, "@0123456789") {
			continue
		}
		if !startsUpper(line) {
			continue
		}
		return line
	}
	return ""
}

func startsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return unicode.IsUpper(r)
		}
	}
	return false
}

func extractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

// extractSkills matches lexicon terms against the text. Matching is
// case-insensitive and whole-word: a term counts only when not embedded
// in a longer alphanumeric run, so "java" never matches inside
// "javascript". Results keep the lexicon's canonical form, deduplicated.
func (p *profileParser) extractSkills(text string) []string {
	lower := strings.ToLower(text)

	var skills []string
	for _, term := range p.lexicon.Terms() {
		if containsWholeWord(lower, term) {
			skills = append(skills, term)
		}
	}
	return skills
}

func containsWholeWord(text, term string) bool {
	from := 0
	for {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return false
		}
		idx += from

		if isWordBoundary(text, idx-1) && isWordBoundary(text, idx+len(term)) {
			return true
		}
		from = idx + 1
	}
}

// isWordBoundary reports whether the byte at i does not continue an
// alphanumeric run. Out-of-range positions are boundaries.
func isWordBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// extractSection returns a capped excerpt starting at the first line that
// mentions one of the keywords, spanning up to ten lines.
func extractSection(text string, keywords []string) string {
	lines := strings.Split(text, "\n")
	lower := make([]string, len(lines))
	for i, line := range lines {
		lower[i] = strings.ToLower(line)
	}

	for _, keyword := range keywords {
		for i, line := range lower {
			if !strings.Contains(line, keyword) {
				continue
			}
			end := i + 10
			if end > len(lines) {
				end = len(lines)
			}
			section := strings.Join(lines[i:end], "\n")
			if len(section) > 300 {
				section = section[:300]
			}
			return section
		}
	}
	return ""
}
