package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"alfredoptarigan/autocv/internal/resume"
)

var (
	projectBulletPattern = regexp.MustCompile(`(?:^|\n)[-•*]`)
	projectWordPattern   = regexp.MustCompile(`\bproject\b`)
	techMentionPattern   = regexp.MustCompile(`(?i)\b(?:Python|Java|React|Flask|Django|ML|AI|database|API)\b`)
)

// ScoreProjects rates project count (40), technical depth (30) and measurable outcomes (30).
func ScoreProjects(doc *resume.ParsedDocument) DimensionResult {
	result := newDimensionResult()

	text := doc.Section(resume.SectionProjects)
	if strings.TrimSpace(text) == "" {
		result.add("No projects section found", FlagNoProjectsSection)
		return result
	}

	score := 0.0

	count := len(projectBulletPattern.FindAllStringIndex(text, -1))
	if words := len(projectWordPattern.FindAllStringIndex(strings.ToLower(text), -1)); words > count {
		count = words
	}

	switch {
	case count >= 3:
		score += 40
		result.add(fmt.Sprintf("Good number of projects: %d", count))
	case count >= 2:
		score += 30
		result.add(fmt.Sprintf("Adequate projects: %d", count))
	default:
		score += 15
		result.add(fmt.Sprintf("Limited projects: %d", count), FlagLimitedProjects)
	}

	tech := len(techMentionPattern.FindAllStringIndex(text, -1))
	switch {
	case tech >= 5:
		score += 30
		result.add(fmt.Sprintf("Strong technical depth (%d tech mentions)", tech))
	case tech >= 3:
		score += 20
	default:
		score += 10
		result.add("Limited technical details", FlagLimitedTechnicalDetail)
	}

	metrics := CountNumbers(text)
	switch {
	case metrics >= 3:
		score += 30
		result.add(fmt.Sprintf("Projects show measurable impact (%d metrics)", metrics))
	case metrics >= 1:
		score += 15
	default:
		score += 5
		result.add("Projects lack measurable outcomes", FlagNoMeasurableOutcomes)
	}

	result.Score = clampScore(score)
	return result
}
