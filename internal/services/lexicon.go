package services

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// defaultSkillLexicon is the built-in list of canonical skill terms used
// when no lexicon file is configured. Matching is case-insensitive and
// whole-word; the canonical spelling below is what gets reported.
var defaultSkillLexicon = []string{
	"python", "java", "javascript", "c++", "c#", "ruby", "php", "swift", "kotlin",
	"typescript", "go", "rust", "scala", "html", "css", "react", "angular", "vue",
	"node.js", "express", "django", "flask", "spring", "asp.net", "bootstrap",
	"tailwind", "sql", "mysql", "postgresql", "mongodb", "oracle", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "ci/cd",
	"machine learning", "deep learning", "tensorflow", "pytorch", "pandas",
	"numpy", "ai", "nlp", "agile", "scrum", "rest api", "microservices",
}

// SkillLexicon is an externally supplied list of known skill terms.
// It is configuration-as-data: extending it never touches matching logic.
type SkillLexicon struct {
	terms []string
}

// NewSkillLexicon canonicalizes (trims, case-folds) and deduplicates the
// given terms. With no terms it falls back to the built-in lexicon.
func NewSkillLexicon(terms []string) *SkillLexicon {
	if len(terms) == 0 {
		terms = defaultSkillLexicon
	}

	seen := make(map[string]bool, len(terms))
	canonical := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		canonical = append(canonical, term)
	}

	return &SkillLexicon{terms: canonical}
}

// LoadSkillLexicon reads one term per line from path. Blank lines and
// lines starting with '#' are skipped.
func LoadSkillLexicon(path string) (*SkillLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skill lexicon: %w", err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill lexicon: %w", err)
	}

	return NewSkillLexicon(terms), nil
}

// Terms returns the canonical term list in lexicon order.
func (l *SkillLexicon) Terms() []string {
	out := make([]string, len(l.terms))
	copy(out, l.terms)
	return out
}
