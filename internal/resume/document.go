package resume

import "strings"

// Section names a resume section recognised by the classifier.
type Section string

const (
	SectionOther          Section = "other"
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionProjects       Section = "projects"
	SectionSkills         Section = "skills"
	SectionAchievements   Section = "achievements"
	SectionCertifications Section = "certifications"
	SectionSummary        Section = "summary"
)

// RequiredSections are the sections every resume is expected to have.
var RequiredSections = []Section{
	SectionEducation,
	SectionExperience,
	SectionProjects,
	SectionSkills,
}

// OptionalSections earn a bonus when present.
var OptionalSections = []Section{
	SectionAchievements,
	SectionCertifications,
	SectionSummary,
}

// Contact holds the contact fields found in the resume text. Empty means not found.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// PresentCount returns how many of the four contact fields were found.
func (c Contact) PresentCount() int {
	count := 0
	for _, v := range []string{c.Email, c.Phone, c.LinkedIn, c.GitHub} {
		if v != "" {
			count++
		}
	}
	return count
}

// ParsedDocument is the normalised representation every scorer consumes.
// It is built once per request and never modified afterwards.
type ParsedDocument struct {
	FullText  string             `json:"full_text"`
	Sections  map[Section]string `json:"sections"`
	Contact   Contact            `json:"contact"`
	Links     []string           `json:"links"`
	PageCount int                `json:"page_count"`
}

// Section returns the text of the named section, or "" when absent.
func (d *ParsedDocument) Section(name Section) string {
	if d == nil || d.Sections == nil {
		return ""
	}
	return d.Sections[name]
}

// HasSection reports whether the section exists with non-blank content.
func (d *ParsedDocument) HasSection(name Section) bool {
	return strings.TrimSpace(d.Section(name)) != ""
}

// HasHeader reports whether the section header appeared, even with no content under it.
func (d *ParsedDocument) HasHeader(name Section) bool {
	if d == nil || d.Sections == nil {
		return false
	}
	_, ok := d.Sections[name]
	return ok
}
