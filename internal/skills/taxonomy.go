package skills

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Category is a named group of skills, kept in declared order.
type Category struct {
	Name   string
	Skills []string
}

// Taxonomy is the read-only skill catalogue shared by every request.
type Taxonomy struct {
	categories []Category
	matchers   [][]*regexp.Regexp
}

// TaxonomyLoadError reports a taxonomy file that could not be read or decoded.
type TaxonomyLoadError struct {
	Path string
	Err  error
}

func (e *TaxonomyLoadError) Error() string {
	return fmt.Sprintf("failed to load skills taxonomy %q: %v", e.Path, e.Err)
}

func (e *TaxonomyLoadError) Unwrap() error {
	return e.Err
}

// NewTaxonomy builds a taxonomy and precompiles a whole-word matcher per skill.
func NewTaxonomy(categories ...Category) *Taxonomy {
	t := &Taxonomy{
		categories: make([]Category, len(categories)),
		matchers:   make([][]*regexp.Regexp, len(categories)),
	}

	for i, c := range categories {
		skills := append([]string(nil), c.Skills...)
		t.categories[i] = Category{Name: c.Name, Skills: skills}

		t.matchers[i] = make([]*regexp.Regexp, len(skills))
		for j, skill := range skills {
			t.matchers[i][j] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
		}
	}

	return t
}

// Categories returns a copy of the categories in declared order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// Size returns the number of skills across all categories.
func (t *Taxonomy) Size() int {
	n := 0
	for _, c := range t.categories {
		n += len(c.Skills)
	}
	return n
}

// Default is the built-in taxonomy used when no file is available.
func Default() *Taxonomy {
	return NewTaxonomy(
		Category{Name: "languages", Skills: []string{"Python", "Java", "JavaScript", "C++", "C", "Go", "Rust", "TypeScript"}},
		Category{Name: "frameworks", Skills: []string{"Flask", "Django", "React", "Node.js", "Express", "Spring Boot", "FastAPI"}},
		Category{Name: "ml_ai", Skills: []string{"PyTorch", "TensorFlow", "scikit-learn", "OpenCV", "Keras", "Hugging Face"}},
		Category{Name: "databases", Skills: []string{"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "Firebase"}},
		Category{Name: "cloud", Skills: []string{"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Heroku", "Vercel"}},
		Category{Name: "tools", Skills: []string{"Git", "GitHub", "Linux", "CI/CD", "Jenkins", "VS Code"}},
		Category{Name: "security", Skills: []string{"Kali Linux", "penetration testing", "OWASP", "cybersecurity"}},
	)
}

// Load reads a taxonomy file. JSON and YAML are both accepted since a JSON
// object is valid YAML; the yaml.Node walk keeps the file's category order.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TaxonomyLoadError{Path: path, Err: err}
	}

	categories, err := decodeCategories(data)
	if err != nil {
		return nil, &TaxonomyLoadError{Path: path, Err: err}
	}

	return NewTaxonomy(categories...), nil
}

// LoadOrDefault loads the taxonomy at path and falls back to Default on any error.
func LoadOrDefault(path string, logger *zap.Logger) *Taxonomy {
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(path) == "" {
		logger.Warn("Skills taxonomy path not configured, using default taxonomy")
		return Default()
	}

	taxonomy, err := Load(path)
	if err != nil {
		var loadErr *TaxonomyLoadError
		if errors.As(err, &loadErr) {
			logger.Warn("Skills taxonomy not loaded, using default taxonomy",
				zap.String("path", loadErr.Path),
				zap.Error(loadErr.Err),
			)
		}
		return Default()
	}

	logger.Info("Skills taxonomy loaded",
		zap.String("path", path),
		zap.Int("categories", len(taxonomy.categories)),
		zap.Int("skills", taxonomy.Size()),
	)
	return taxonomy
}

func decodeCategories(data []byte) ([]Category, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("taxonomy file is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("taxonomy root must be a mapping of category to skills, got line %d", root.Line)
	}

	categories := make([]Category, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var skills []string
		if err := value.Decode(&skills); err != nil {
			return nil, fmt.Errorf("category %q must be a list of skills: %w", key.Value, err)
		}

		categories = append(categories, Category{Name: key.Value, Skills: skills})
	}

	return categories, nil
}
