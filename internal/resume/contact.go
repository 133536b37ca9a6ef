package resume

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\+?[\d\s\-\(\)]{10,}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w\-]+`)
	gitHubPattern   = regexp.MustCompile(`(?i)github\.com/[\w\-]+`)
	linkPattern     = regexp.MustCompile(`https?://[^\s]+`)
)

// ExtractContact finds the first email, phone, LinkedIn and GitHub reference in text.
func ExtractContact(text string) Contact {
	return Contact{
		Email:    emailPattern.FindString(text),
		Phone:    extractPhone(text),
		LinkedIn: linkedInPattern.FindString(text),
		GitHub:   gitHubPattern.FindString(text),
	}
}

// extractPhone returns the first phone-like run that actually contains digits.
// The pattern alone also matches long runs of whitespace and punctuation.
func extractPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		candidate = strings.TrimSpace(candidate)
		if strings.IndexFunc(candidate, unicode.IsDigit) >= 0 {
			return candidate
		}
	}
	return ""
}

// ExtractLinks returns every http(s) URL in text, in order of appearance.
func ExtractLinks(text string) []string {
	links := linkPattern.FindAllString(text, -1)
	if links == nil {
		return []string{}
	}
	return links
}
