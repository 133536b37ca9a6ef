package scoring

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/skills"
)

// Similarity computes the semantic similarity of two texts in [0,1].
type Similarity interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// RoleMatch describes how well a resume fits a job description or target role.
type RoleMatch struct {
	SemanticSimilarity    float64  `json:"semantic_similarity"`
	KeywordCoverage       float64  `json:"keyword_coverage"`
	SkillGaps             []string `json:"skill_gaps"`
	MatchedSkills         []string `json:"matched_skills"`
	SimilarityUnavailable bool     `json:"similarity_unavailable,omitempty"`
}

type roleProfile struct {
	key    string
	skills []string
}

// roleProfiles is matched in declared order: the first key that is a substring
// of the lowercased role wins. "full stack backend" therefore resolves to
// backend, which may not be what the caller meant.
var roleProfiles = []roleProfile{
	{key: "sde intern", skills: []string{"Python", "Java", "C++", "DSA", "Git", "OOP", "algorithms"}},
	{key: "data analyst", skills: []string{"Python", "SQL", "Excel", "Tableau", "Power BI", "statistics"}},
	{key: "ml engineer", skills: []string{"Python", "PyTorch", "TensorFlow", "scikit-learn", "ML", "deep learning"}},
	{key: "frontend", skills: []string{"JavaScript", "React", "HTML", "CSS", "TypeScript", "UI/UX"}},
	{key: "backend", skills: []string{"Python", "Java", "Node.js", "SQL", "API", "Docker"}},
	{key: "full stack", skills: []string{"React", "Node.js", "Python", "SQL", "Git", "REST API"}},
	{key: "cybersecurity", skills: []string{"Kali Linux", "penetration testing", "OWASP", "networking", "security"}},
}

// RoleKeywords returns the expected skills for a role and the table key that matched.
func RoleKeywords(role string) (keywords []string, key string, ok bool) {
	lower := strings.ToLower(role)
	for _, p := range roleProfiles {
		if strings.Contains(lower, p.key) {
			return append([]string(nil), p.skills...), p.key, true
		}
	}
	return []string{}, "", false
}

// RoleMatcher compares resume skills against a job description or a target role.
type RoleMatcher struct {
	taxonomy   *skills.Taxonomy
	similarity Similarity
	logger     *zap.Logger
}

func NewRoleMatcher(taxonomy *skills.Taxonomy, similarity Similarity, logger *zap.Logger) *RoleMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleMatcher{
		taxonomy:   taxonomy,
		similarity: similarity,
		logger:     logger,
	}
}

// Match computes similarity, keyword coverage and skill gaps. A non-blank job
// description takes precedence over the target role; with neither, everything
// is zero.
func (m *RoleMatcher) Match(ctx context.Context, resumeText, targetRole, jdText string) RoleMatch {
	resumeSkills := skills.Names(m.taxonomy.Extract(resumeText))

	result := RoleMatch{
		SkillGaps:     []string{},
		MatchedSkills: resumeSkills,
	}

	var reference string
	var expected []string

	switch {
	case strings.TrimSpace(jdText) != "":
		reference = jdText
		expected = skills.Names(m.taxonomy.Extract(jdText))
	case strings.TrimSpace(targetRole) != "":
		keywords, key, ok := RoleKeywords(targetRole)
		if !ok {
			m.logger.Debug("No role profile matched", zap.String("target_role", targetRole))
		} else {
			m.logger.Debug("Role profile matched", zap.String("target_role", targetRole), zap.String("profile", key))
		}
		reference = strings.Join(keywords, " ")
		expected = keywords
	default:
		return result
	}

	result.SemanticSimilarity, result.SimilarityUnavailable = m.computeSimilarity(ctx, resumeText, reference)
	result.KeywordCoverage = KeywordCoverage(resumeSkills, expected)
	result.SkillGaps = SkillGaps(resumeSkills, expected)

	return result
}

func (m *RoleMatcher) computeSimilarity(ctx context.Context, resumeText, reference string) (float64, bool) {
	if resumeText == "" || reference == "" {
		return 0, false
	}
	if m.similarity == nil {
		return 0, true
	}

	score, err := m.similarity.Similarity(ctx, resumeText, reference)
	if err != nil {
		m.logger.Warn("Semantic similarity unavailable, using 0", zap.Error(err))
		return 0, true
	}
	return clampUnit(score), false
}

// KeywordCoverage is the share of expected skills present in the resume,
// compared case-insensitively. No expectations means full coverage.
func KeywordCoverage(resumeSkills, expected []string) float64 {
	expectedSet := lowerSet(expected)
	if len(expectedSet) == 0 {
		return 1.0
	}

	resumeSet := lowerSet(resumeSkills)
	matched := 0
	for skill := range expectedSet {
		if _, ok := resumeSet[skill]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(expectedSet))
}

// SkillGaps returns the expected skills missing from the resume, without
// duplicates, in the order they were expected.
func SkillGaps(resumeSkills, expected []string) []string {
	resumeSet := lowerSet(resumeSkills)
	seen := make(map[string]struct{}, len(expected))

	gaps := []string{}
	for _, skill := range expected {
		key := strings.ToLower(skill)
		if _, ok := resumeSet[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		gaps = append(gaps, skill)
	}
	return gaps
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
