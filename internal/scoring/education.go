package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/autocv/internal/resume"
)

var degreeKeywords = []string{"b.tech", "btech", "bachelor", "b.e", "b.sc", "master", "m.tech", "mtech"}

var gpaPattern = regexp.MustCompile(`(?:\d\.\d+|\d{2,3}(?:\.\d+)?%)`)

const minSupportingTextLength = 20

// ScoreEducation rates degree (50/20), GPA (20), certifications (15) and achievements (15).
func ScoreEducation(doc *resume.ParsedDocument) DimensionResult {
	result := newDimensionResult()

	education := doc.Section(resume.SectionEducation)
	if strings.TrimSpace(education) == "" {
		result.add("No education section found", FlagNoEducationSection)
		return result
	}

	score := 0.0

	if containsAny(strings.ToLower(education), degreeKeywords) {
		score += 50
		result.add("Degree information present")
	} else {
		score += 20
		result.add("Degree information unclear", FlagDegreeUnclear)
	}

	if gpaPattern.MatchString(education) {
		score += 20
		result.add("Academic performance mentioned")
	}

	if utf8.RuneCountInString(doc.Section(resume.SectionCertifications)) > minSupportingTextLength {
		score += 15
		result.add("Certifications listed")
	}

	if utf8.RuneCountInString(doc.Section(resume.SectionAchievements)) > minSupportingTextLength {
		score += 15
		result.add("Achievements/awards mentioned")
	}

	result.Score = clampScore(score)
	return result
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
