package feedback

import (
	"strings"
	"unicode/utf8"

	"alfredoptarigan/autocv/internal/resume"
)

const (
	maxScannedLines     = 10
	minBulletLength     = 20
	maxOriginalLength   = 100
	maxRewriteSuggested = 3
)

// BulletRewrite pairs a weak bullet with a stronger version of it.
type BulletRewrite struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
}

// weakPhrases are plain substrings, so "did" also flags "candidate".
var weakPhrases = []string{"worked on", "helped with", "involved in", "made a", "did", "created a"}

type rewriteTemplate struct {
	keywords  []string
	suggested string
}

// rewriteTemplates are tried in order against the lowercased bullet. Keywords
// are substrings: "ml" matches inside "html".
var rewriteTemplates = []rewriteTemplate{
	{
		keywords:  []string{"website", "web"},
		suggested: "Developed responsive web application using React + Flask, serving 1,000+ users with 95% satisfaction rating",
	},
	{
		keywords:  []string{"ml", "machine learning", "model"},
		suggested: "Built machine learning model using PyTorch/TensorFlow, achieving 90%+ accuracy on validation dataset",
	},
	{
		keywords:  []string{"app", "application"},
		suggested: "Engineered mobile/web application using modern frameworks, deployed to 500+ active users",
	},
	{
		keywords:  []string{"project"},
		suggested: "Implemented end-to-end project using Python/Java, reducing processing time by 40%",
	},
}

var fallbackRewrites = []BulletRewrite{
	{
		Original:  "Made a website for college fest",
		Suggested: "Developed responsive fest registration portal using React and Flask, handling 1,200+ registrations and reducing manual data entry by 80%",
	},
	{
		Original:  "Worked on machine learning project",
		Suggested: "Built image classification model using PyTorch and ResNet-18, achieving 92% accuracy on 5,000+ test images",
	},
}

// BulletRewrites scans the first lines of the projects section for weak
// phrasing and proposes up to three rewrites. When nothing qualifies two
// stock examples are returned.
func BulletRewrites(doc *resume.ParsedDocument) []BulletRewrite {
	rewrites := []BulletRewrite{}

	if projects := doc.Section(resume.SectionProjects); projects != "" {
		lines := strings.Split(projects, "\n")
		if len(lines) > maxScannedLines {
			lines = lines[:maxScannedLines]
		}

		for _, line := range lines {
			line = strings.TrimSpace(line)
			if utf8.RuneCountInString(line) < minBulletLength {
				continue
			}
			if !containsAny(strings.ToLower(line), weakPhrases) {
				continue
			}

			if suggested := RewriteBullet(line); suggested != line {
				rewrites = append(rewrites, BulletRewrite{
					Original:  truncateRunes(line, maxOriginalLength),
					Suggested: suggested,
				})
			}
			if len(rewrites) >= maxRewriteSuggested {
				break
			}
		}
	}

	if len(rewrites) == 0 {
		return append(rewrites, fallbackRewrites...)
	}
	return rewrites
}

// RewriteBullet returns the canned rewrite for the first matching keyword, or
// a generic "Developed ..." sentence built from the bullet itself.
func RewriteBullet(bullet string) string {
	lower := strings.ToLower(bullet)
	for _, t := range rewriteTemplates {
		if containsAny(lower, t.keywords) {
			return t.suggested
		}
	}

	cleaned := strings.ReplaceAll(bullet, "Worked on", "")
	cleaned = strings.ReplaceAll(cleaned, "worked on", "")
	return "Developed " + strings.TrimSpace(cleaned) + " with measurable impact"
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
