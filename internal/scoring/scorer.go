package scoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/resume"
	"alfredoptarigan/autocv/internal/skills"
)

// Result is the complete scoring outcome for one document.
type Result struct {
	OverallScore    float64                `json:"overall_score"`
	SubScores       map[Dimension]float64  `json:"sub_scores"`
	Evidence        map[Dimension][]string `json:"evidence"`
	Flags           map[Dimension][]Flag   `json:"flags"`
	SkillGaps       []string               `json:"skill_gaps"`
	MissingSections resume.MissingSections `json:"missing_sections"`
	ATSIssues       []string               `json:"ats_issues"`
	Match           RoleMatch              `json:"match"`
}

// HasFlag reports whether the scorer for d raised flag.
func (r *Result) HasFlag(d Dimension, flag Flag) bool {
	for _, f := range r.Flags[d] {
		if f == flag {
			return true
		}
	}
	return false
}

// Scorer runs every dimension scorer and aggregates the results. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	matcher *RoleMatcher
	weights Weights
	logger  *zap.Logger
}

func NewScorer(taxonomy *skills.Taxonomy, similarity Similarity, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if taxonomy == nil {
		taxonomy = skills.Default()
	}
	return &Scorer{
		matcher: NewRoleMatcher(taxonomy, similarity, logger),
		weights: DefaultWeights(),
		logger:  logger,
	}
}

// WithWeights returns a copy of the scorer using w.
func (s *Scorer) WithWeights(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("failed to apply weights: %w", err)
	}
	copied := make(Weights, len(w))
	for d, v := range w {
		copied[d] = v
	}
	return &Scorer{matcher: s.matcher, weights: copied, logger: s.logger}, nil
}

// Score evaluates doc against an optional target role and job description.
func (s *Scorer) Score(ctx context.Context, doc *resume.ParsedDocument, targetRole, jdText string) *Result {
	if doc == nil {
		doc = resume.Normalize("", 0)
	}

	match := s.matcher.Match(ctx, doc.FullText, targetRole, jdText)

	dimensions := map[Dimension]DimensionResult{
		DimensionStructure:  ScoreStructure(doc),
		DimensionGrammar:    ScoreGrammar(doc),
		DimensionATS:        ScoreATS(doc),
		DimensionSkillMatch: ScoreSkillMatch(match),
		DimensionProjects:   ScoreProjects(doc),
		DimensionEducation:  ScoreEducation(doc),
	}

	result := &Result{
		SubScores:       make(map[Dimension]float64, len(dimensions)),
		Evidence:        make(map[Dimension][]string, len(dimensions)),
		Flags:           make(map[Dimension][]Flag, len(dimensions)),
		SkillGaps:       match.SkillGaps,
		MissingSections: resume.DetectMissingSections(doc.Sections),
		ATSIssues:       CheckATS(doc).Issues,
		Match:           match,
	}

	for _, d := range Dimensions {
		dr := dimensions[d]
		result.SubScores[d] = round1(dr.Score)
		result.Evidence[d] = dr.Evidence
		result.Flags[d] = dr.Flags
	}
	result.OverallScore = Aggregate(result.SubScores, s.weights)

	s.logger.Debug("Resume scored",
		zap.Float64("overall_score", result.OverallScore),
		zap.Int("skill_gaps", len(result.SkillGaps)),
		zap.Bool("similarity_unavailable", match.SimilarityUnavailable),
	)

	return result
}
