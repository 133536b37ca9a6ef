package skills

import "strings"

// Match is one taxonomy skill found in a text.
type Match struct {
	Skill    string `json:"skill"`
	Category string `json:"category"`
}

// Extract returns every taxonomy skill found in text as a case-insensitive
// whole word. A skill listed under several categories is reported once per
// category; use Names to deduplicate.
func (t *Taxonomy) Extract(text string) []Match {
	lower := strings.ToLower(text)

	matches := []Match{}
	for i, c := range t.categories {
		for j, skill := range c.Skills {
			if t.matchers[i][j].MatchString(lower) {
				matches = append(matches, Match{Skill: skill, Category: c.Name})
			}
		}
	}
	return matches
}

// Names returns the distinct skill names in first-seen order.
func Names(matches []Match) []string {
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Skill]; ok {
			continue
		}
		seen[m.Skill] = struct{}{}
		names = append(names, m.Skill)
	}
	return names
}
