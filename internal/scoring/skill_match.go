package scoring

import (
	"fmt"
	"strings"
)

const maxListedSkillGaps = 5

// ScoreSkillMatch blends semantic similarity (60%) and keyword coverage (40%).
func ScoreSkillMatch(match RoleMatch) DimensionResult {
	result := newDimensionResult()

	similarity := clampUnit(match.SemanticSimilarity)
	coverage := clampUnit(match.KeywordCoverage)

	result.add(fmt.Sprintf("Semantic similarity: %.2f", similarity))
	result.add(fmt.Sprintf("Keyword coverage: %.2f%%", coverage*100))
	result.add(fmt.Sprintf("Skills matched: %d", len(match.MatchedSkills)))

	if match.SimilarityUnavailable {
		result.add("Semantic similarity unavailable, scored as 0", FlagEmbeddingUnavailable)
	}

	if len(match.SkillGaps) > 0 {
		result.add(fmt.Sprintf("Missing skills: %s", strings.Join(firstN(match.SkillGaps, maxListedSkillGaps), ", ")), FlagSkillGaps)
	}

	result.Score = clampScore((similarity*0.6 + coverage*0.4) * 100)
	return result
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
