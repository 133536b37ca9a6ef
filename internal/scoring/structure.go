package scoring

import (
	"fmt"

	"alfredoptarigan/autocv/internal/resume"
)

// ScoreStructure rates section completeness (60), length (20) and optional sections (20).
func ScoreStructure(doc *resume.ParsedDocument) DimensionResult {
	result := newDimensionResult()
	score := 0.0

	present := resume.PresentSections(doc.Sections, resume.RequiredSections)
	score += float64(len(present)) / float64(len(resume.RequiredSections)) * 60

	if missing := resume.DetectMissingSections(doc.Sections).MissingRequired; len(missing) > 0 {
		result.add(fmt.Sprintf("Missing sections: %s", resume.JoinSections(missing)), FlagMissingRequiredSections)
	}

	switch doc.PageCount {
	case 1, 2:
		score += 20
		result.add(fmt.Sprintf("Good resume length: %d page(s)", doc.PageCount))
	case 3:
		score += 10
		result.add(fmt.Sprintf("Resume is slightly long: %d pages", doc.PageCount), FlagPageCountTooLong)
	default:
		result.add(fmt.Sprintf("Resume length issue: %d pages", doc.PageCount), FlagPageCountTooLong)
	}

	optional := resume.PresentSections(doc.Sections, resume.OptionalSections)
	score += float64(len(optional)) / float64(len(resume.OptionalSections)) * 20

	result.Score = clampScore(score)
	return result
}
