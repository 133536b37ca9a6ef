package resume

import (
	"regexp"
	"strings"
)

// headerPattern pairs a section with the matcher that recognises its header line.
type headerPattern struct {
	section Section
	matcher *regexp.Regexp
}

// headerPatterns is evaluated in order; the first match wins, not the longest.
// Matching is anchored at the start of the trimmed line only, so a line such as
// "Experienced engineer" opens the experience section.
var headerPatterns = []headerPattern{
	{SectionEducation, regexp.MustCompile(`(?i)^(education|academic|qualification)`)},
	{SectionExperience, regexp.MustCompile(`(?i)^(experience|employment|work history)`)},
	{SectionProjects, regexp.MustCompile(`(?i)^(projects?|portfolio)`)},
	{SectionSkills, regexp.MustCompile(`(?i)^(skills?|technical skills?|competencies)`)},
	{SectionAchievements, regexp.MustCompile(`(?i)^(achievements?|accomplishments?|awards?)`)},
	{SectionCertifications, regexp.MustCompile(`(?i)^(certifications?|certificates?)`)},
	{SectionSummary, regexp.MustCompile(`(?i)^(summary|profile|objective|about)`)},
}

// MatchHeader returns the section whose header pattern matches the line.
func MatchHeader(line string) (Section, bool) {
	line = strings.TrimSpace(line)
	for _, p := range headerPatterns {
		if p.matcher.MatchString(line) {
			return p.section, true
		}
	}
	return "", false
}

// ClassifySections splits text into named sections.
//
// Lines before the first header land in SectionOther. A header line switches the
// current section and restarts its buffer; the header itself is dropped.
func ClassifySections(text string) map[Section]string {
	buffers := map[Section][]string{SectionOther: nil}
	current := SectionOther

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if section, ok := MatchHeader(line); ok {
			current = section
			buffers[current] = nil
			continue
		}

		buffers[current] = append(buffers[current], line)
	}

	sections := make(map[Section]string, len(buffers))
	for name, lines := range buffers {
		sections[name] = strings.Join(lines, "\n")
	}
	return sections
}

// MissingSections lists the required and optional sections without content.
type MissingSections struct {
	MissingRequired []Section `json:"missing_required"`
	MissingOptional []Section `json:"missing_optional"`
}

// DetectMissingSections compares the sections present with non-blank content
// against the required and optional sets, keeping their declared order.
func DetectMissingSections(sections map[Section]string) MissingSections {
	missing := func(expected []Section) []Section {
		out := []Section{}
		for _, name := range expected {
			if strings.TrimSpace(sections[name]) == "" {
				out = append(out, name)
			}
		}
		return out
	}

	return MissingSections{
		MissingRequired: missing(RequiredSections),
		MissingOptional: missing(OptionalSections),
	}
}

// PresentSections returns the sections from expected that have content.
func PresentSections(sections map[Section]string, expected []Section) []Section {
	out := []Section{}
	for _, name := range expected {
		if strings.TrimSpace(sections[name]) != "" {
			out = append(out, name)
		}
	}
	return out
}

// JoinSections renders section names as a comma separated list.
func JoinSections(sections []Section) string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
