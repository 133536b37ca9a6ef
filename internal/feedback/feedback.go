package feedback

import (
	"fmt"
	"strings"

	"alfredoptarigan/autocv/internal/resume"
	"alfredoptarigan/autocv/internal/scoring"
)

// Priority bucket caps. Items past the cap are dropped in insertion order.
const (
	MaxHighPriority   = 4
	MaxMediumPriority = 4
	MaxLowPriority    = 3
)

const maxSuggestedSkills = 5

type priority int

const (
	high priority = iota
	medium
	low
)

// Report holds the prioritised suggestions.
type Report struct {
	HighPriority   []string `json:"high_priority"`
	MediumPriority []string `json:"medium_priority"`
	LowPriority    []string `json:"low_priority"`
}

func (r *Report) add(p priority, suggestion string) {
	switch p {
	case high:
		r.HighPriority = append(r.HighPriority, suggestion)
	case medium:
		r.MediumPriority = append(r.MediumPriority, suggestion)
	default:
		r.LowPriority = append(r.LowPriority, suggestion)
	}
}

func (r *Report) truncate() {
	r.HighPriority = capList(r.HighPriority, MaxHighPriority)
	r.MediumPriority = capList(r.MediumPriority, MaxMediumPriority)
	r.LowPriority = capList(r.LowPriority, MaxLowPriority)
}

// FeedbackReport is the complete feedback returned with a scored resume.
type FeedbackReport struct {
	Feedback       Report          `json:"feedback"`
	BulletRewrites []BulletRewrite `json:"bullet_rewrites"`
}

// rule fires when its dimension scores below threshold. A rule with no
// dimension is checked against the overall score.
type rule struct {
	dimension scoring.Dimension
	threshold float64
	apply     func(r *Report, result *scoring.Result, doc *resume.ParsedDocument)
}

// rules run in declared order, which is also the order suggestions appear in
// each bucket.
var rules = []rule{
	{
		dimension: scoring.DimensionStructure,
		threshold: 70,
		apply: func(r *Report, result *scoring.Result, _ *resume.ParsedDocument) {
			missing := result.MissingSections
			if len(missing.MissingRequired) > 0 {
				r.add(high, fmt.Sprintf("Add missing critical sections: %s", resume.JoinSections(missing.MissingRequired)))
			}
			if len(missing.MissingOptional) > 0 {
				r.add(medium, fmt.Sprintf("Consider adding: %s", resume.JoinSections(missing.MissingOptional)))
			}
		},
	},
	{
		dimension: scoring.DimensionGrammar,
		threshold: 70,
		apply: func(r *Report, result *scoring.Result, _ *resume.ParsedDocument) {
			r.add(high, "Replace passive phrases with strong action verbs (Developed, Built, Implemented, Achieved)")
			if result.HasFlag(scoring.DimensionGrammar, scoring.FlagLimitedMetrics) {
				r.add(high, "Add quantifiable metrics to demonstrate impact (e.g., 'improved performance by 40%', 'reduced load time by 2s')")
			}
		},
	},
	{
		dimension: scoring.DimensionATS,
		threshold: 80,
		apply: func(r *Report, result *scoring.Result, _ *resume.ParsedDocument) {
			for _, issue := range result.ATSIssues {
				r.add(medium, "ATS Issue: "+issue)
			}
		},
	},
	{
		dimension: scoring.DimensionSkillMatch,
		threshold: 75,
		apply: func(r *Report, result *scoring.Result, _ *resume.ParsedDocument) {
			if len(result.SkillGaps) == 0 {
				r.add(medium, "Highlight more technical skills and tools you've used")
				return
			}
			gaps := result.SkillGaps
			if len(gaps) > maxSuggestedSkills {
				gaps = gaps[:maxSuggestedSkills]
			}
			r.add(high, fmt.Sprintf("Add relevant skills for better role match: %s", strings.Join(gaps, ", ")))
		},
	},
	{
		dimension: scoring.DimensionProjects,
		threshold: 70,
		apply: func(r *Report, result *scoring.Result, _ *resume.ParsedDocument) {
			if result.HasFlag(scoring.DimensionProjects, scoring.FlagLimitedProjects) {
				r.add(high, "Add 2-3 substantial projects showcasing different skills")
			}
			if result.HasFlag(scoring.DimensionProjects, scoring.FlagNoMeasurableOutcomes) {
				r.add(high, "Quantify project impact with metrics (users served, performance gains, time saved)")
			}
			if result.HasFlag(scoring.DimensionProjects, scoring.FlagLimitedTechnicalDetail) {
				r.add(medium, "Include specific technologies, frameworks, and tools used in each project")
			}
		},
	},
	{
		dimension: scoring.DimensionEducation,
		threshold: 60,
		apply: func(r *Report, _ *scoring.Result, doc *resume.ParsedDocument) {
			r.add(low, "Consider adding GPA, relevant coursework, or academic achievements")
			if !doc.HasHeader(resume.SectionCertifications) {
				r.add(low, "Add relevant certifications to strengthen your profile")
			}
		},
	},
	{
		threshold: 75,
		apply: func(r *Report, _ *scoring.Result, _ *resume.ParsedDocument) {
			r.add(medium, "Ensure consistent formatting, font sizes, and bullet point styles throughout")
		},
	},
}

// Generate evaluates the rule table against a scoring result.
func Generate(result *scoring.Result, doc *resume.ParsedDocument) Report {
	report := Report{
		HighPriority:   []string{},
		MediumPriority: []string{},
		LowPriority:    []string{},
	}
	if result == nil {
		return report
	}

	for _, rl := range rules {
		score := result.OverallScore
		if rl.dimension != "" {
			score = result.SubScores[rl.dimension]
		}
		if score < rl.threshold {
			rl.apply(&report, result, doc)
		}
	}

	report.truncate()
	return report
}

// Compile builds the prioritised feedback and the bullet rewrites.
func Compile(result *scoring.Result, doc *resume.ParsedDocument) FeedbackReport {
	return FeedbackReport{
		Feedback:       Generate(result, doc),
		BulletRewrites: BulletRewrites(doc),
	}
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
