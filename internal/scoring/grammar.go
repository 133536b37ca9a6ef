package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"alfredoptarigan/autocv/internal/resume"
)

// ActionVerbs are counted by plain substring presence in the lowercased text,
// so "led" is also found inside "enabled".
var ActionVerbs = []string{
	"developed", "built", "created", "designed", "implemented", "engineered",
	"deployed", "optimized", "achieved", "led", "managed", "coordinated",
	"analyzed", "researched", "improved", "automated", "integrated", "launched",
	"established", "streamlined", "collaborated", "spearheaded", "architected",
}

var passivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwas\s+\w+ed\b`),
	regexp.MustCompile(`\bwere\s+\w+ed\b`),
	regexp.MustCompile(`\bbeen\s+\w+ed\b`),
	regexp.MustCompile(`\bworked\s+on\b`),
	regexp.MustCompile(`\bhelped\s+with\b`),
	regexp.MustCompile(`\binvolved\s+in\b`),
}

var numberPattern = regexp.MustCompile(`\d+[%+]?`)

// CountActionVerbs returns how many configured action verbs appear in lowered text.
func CountActionVerbs(lowered string) int {
	count := 0
	for _, verb := range ActionVerbs {
		if strings.Contains(lowered, verb) {
			count++
		}
	}
	return count
}

// CountPassive returns the total number of passive or weak phrasing hits.
func CountPassive(lowered string) int {
	count := 0
	for _, p := range passivePatterns {
		count += len(p.FindAllStringIndex(lowered, -1))
	}
	return count
}

// CountNumbers returns the number of numeric tokens, optionally followed by % or +.
func CountNumbers(text string) int {
	return len(numberPattern.FindAllStringIndex(text, -1))
}

// ScoreGrammar starts at 100 and deducts for weak verbs, passive voice and missing metrics.
func ScoreGrammar(doc *resume.ParsedDocument) DimensionResult {
	result := newDimensionResult()
	score := 100.0

	text := strings.ToLower(doc.FullText)

	verbs := CountActionVerbs(text)
	switch {
	case verbs >= 10:
		result.add(fmt.Sprintf("Good use of action verbs (%d found)", verbs))
	case verbs >= 5:
		score -= 20
		result.add(fmt.Sprintf("Limited action verbs (%d found)", verbs), FlagLimitedActionVerbs)
	default:
		score -= 40
		result.add(fmt.Sprintf("Very few action verbs (%d found)", verbs), FlagFewActionVerbs)
	}

	passive := CountPassive(text)
	switch {
	case passive > 5:
		score -= 30
		result.add(fmt.Sprintf("Excessive passive voice detected (%d instances)", passive), FlagPassiveVoice)
	case passive > 2:
		score -= 15
		result.add(fmt.Sprintf("Some passive voice detected (%d instances)", passive), FlagPassiveVoice)
	}

	numbers := CountNumbers(text)
	switch {
	case numbers >= 5:
		result.add(fmt.Sprintf("Good use of metrics (%d numbers found)", numbers))
	case numbers >= 2:
		score -= 15
		result.add(fmt.Sprintf("Limited metrics (%d numbers found)", numbers), FlagLimitedMetrics)
	default:
		score -= 30
		result.add("Very few quantifiable achievements", FlagFewMetrics)
	}

	result.Score = clampScore(score)
	return result
}
