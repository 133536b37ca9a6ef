package scoring

import (
	"strings"
	"unicode"

	"alfredoptarigan/autocv/internal/resume"
)

const (
	atsHeaderPoints  = 15
	atsContactPoints = 10
)

// ATSCheck is the detailed outcome of the ATS compliance check.
type ATSCheck struct {
	StandardHeadersPresent []string        `json:"standard_headers_present"`
	ContactInfoComplete    map[string]bool `json:"contact_info_complete"`
	Issues                 []string        `json:"issues"`

	flags []Flag
}

func (c *ATSCheck) addIssue(issue string, flag Flag) {
	c.Issues = append(c.Issues, issue)
	c.flags = append(c.flags, flag)
}

// CheckATS inspects standard headers and contact fields.
func CheckATS(doc *resume.ParsedDocument) ATSCheck {
	check := ATSCheck{
		StandardHeadersPresent: []string{},
		ContactInfoComplete: map[string]bool{
			"email":    doc.Contact.Email != "",
			"phone":    doc.Contact.Phone != "",
			"linkedin": doc.Contact.LinkedIn != "",
			"github":   doc.Contact.GitHub != "",
		},
		Issues: []string{},
	}

	for _, section := range resume.PresentSections(doc.Sections, resume.RequiredSections) {
		check.StandardHeadersPresent = append(check.StandardHeadersPresent, titleCase(string(section)))
	}

	if len(check.StandardHeadersPresent) < 3 {
		check.addIssue("Missing standard section headers", FlagMissingStandardHeaders)
	}
	if !check.ContactInfoComplete["email"] {
		check.addIssue("Email address not found", FlagMissingEmail)
	}
	if !check.ContactInfoComplete["phone"] {
		check.addIssue("Phone number not found", FlagMissingPhone)
	}

	return check
}

// ScoreATS awards 15 points per standard header and 10 per contact field.
// The ATS issues are the evidence.
func ScoreATS(doc *resume.ParsedDocument) DimensionResult {
	check := CheckATS(doc)

	result := newDimensionResult()
	result.Evidence = append(result.Evidence, check.Issues...)
	result.Flags = append(result.Flags, check.flags...)

	score := len(check.StandardHeadersPresent)*atsHeaderPoints + doc.Contact.PresentCount()*atsContactPoints
	result.Score = clampScore(float64(score))
	return result
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
