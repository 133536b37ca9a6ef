package scoring

import (
	"fmt"
	"math"
)

// Dimension identifies one scored aspect of a resume. The values are the
// keys used in stored reports and API responses.
type Dimension string

const (
	DimensionStructure  Dimension = "structure_formatting"
	DimensionGrammar    Dimension = "grammar_clarity"
	DimensionATS        Dimension = "ats_compliance"
	DimensionSkillMatch Dimension = "skill_match"
	DimensionProjects   Dimension = "projects_impact"
	DimensionEducation  Dimension = "education_achievements"
)

// Dimensions lists every dimension in reporting order.
var Dimensions = []Dimension{
	DimensionStructure,
	DimensionGrammar,
	DimensionATS,
	DimensionSkillMatch,
	DimensionProjects,
	DimensionEducation,
}

// Weights maps each dimension to its share of the overall score.
type Weights map[Dimension]float64

const weightTolerance = 1e-9

// DefaultWeights returns the fixed production weights.
func DefaultWeights() Weights {
	return Weights{
		DimensionStructure:  0.15,
		DimensionGrammar:    0.15,
		DimensionATS:        0.20,
		DimensionSkillMatch: 0.25,
		DimensionProjects:   0.20,
		DimensionEducation:  0.05,
	}
}

// Validate checks that every dimension has a non-negative weight and that
// the weights sum to 1.
func (w Weights) Validate() error {
	sum := 0.0
	for _, d := range Dimensions {
		v, ok := w[d]
		if !ok {
			return fmt.Errorf("missing weight for %s", d)
		}
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("invalid weight %v for %s", v, d)
		}
		sum += v
	}
	if len(w) != len(Dimensions) {
		return fmt.Errorf("expected %d weights, got %d", len(Dimensions), len(w))
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

// Flag is a structured signal a scorer raises alongside its evidence text.
type Flag string

const (
	FlagMissingRequiredSections Flag = "missing_required_sections"
	FlagPageCountTooLong        Flag = "page_count_too_long"
	FlagLimitedActionVerbs      Flag = "limited_action_verbs"
	FlagFewActionVerbs          Flag = "few_action_verbs"
	FlagPassiveVoice            Flag = "passive_voice"
	FlagLimitedMetrics          Flag = "limited_metrics"
	FlagFewMetrics              Flag = "few_metrics"
	FlagMissingStandardHeaders  Flag = "missing_standard_headers"
	FlagMissingEmail            Flag = "missing_email"
	FlagMissingPhone            Flag = "missing_phone"
	FlagSkillGaps               Flag = "skill_gaps"
	FlagEmbeddingUnavailable    Flag = "embedding_unavailable"
	FlagNoProjectsSection       Flag = "no_projects_section"
	FlagLimitedProjects         Flag = "limited_projects"
	FlagLimitedTechnicalDetail  Flag = "limited_technical_detail"
	FlagNoMeasurableOutcomes    Flag = "no_measurable_outcomes"
	FlagNoEducationSection      Flag = "no_education_section"
	FlagDegreeUnclear           Flag = "degree_unclear"
)

// DimensionResult is the output of one scorer.
type DimensionResult struct {
	Score    float64
	Evidence []string
	Flags    []Flag
}

func (r *DimensionResult) add(evidence string, flags ...Flag) {
	if evidence != "" {
		r.Evidence = append(r.Evidence, evidence)
	}
	r.Flags = append(r.Flags, flags...)
}

func newDimensionResult() DimensionResult {
	return DimensionResult{Evidence: []string{}, Flags: []Flag{}}
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
