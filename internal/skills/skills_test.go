package skills

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtract(t *testing.T) {
	taxonomy := Default()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "case insensitive whole words",
			text: "Built services in python and GO with postgresql on aws.",
			want: []string{"Python", "Go", "PostgreSQL", "AWS"},
		},
		{
			name: "no partial words",
			text: "Gopher javascripting reacts",
			want: []string{},
		},
		{
			name: "multi word and punctuation skills",
			text: "Deployed with Node.js, Spring Boot and CI/CD on Kali Linux",
			want: []string{"Node.js", "Spring Boot", "Linux", "CI/CD", "Kali Linux"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Names(taxonomy.Extract(tt.text)))
		})
	}
}

func TestExtract_ReportsCategory(t *testing.T) {
	matches := Default().Extract("React and Redis")
	assert.Equal(t, []Match{
		{Skill: "React", Category: "frameworks"},
		{Skill: "Redis", Category: "databases"},
	}, matches)
}

func TestNames_DeduplicatesAcrossCategories(t *testing.T) {
	taxonomy := NewTaxonomy(
		Category{Name: "languages", Skills: []string{"Python", "SQL"}},
		Category{Name: "data", Skills: []string{"SQL", "Pandas"}},
	)

	matches := taxonomy.Extract("Python, SQL and pandas")
	assert.Len(t, matches, 4)
	assert.Equal(t, []string{"Python", "SQL", "Pandas"}, Names(matches))
}

func TestLoad_JSONKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	content := `{"zeta": ["Zig", "Elixir"], "alpha": ["Go"]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	taxonomy, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []Category{
		{Name: "zeta", Skills: []string{"Zig", "Elixir"}},
		{Name: "alpha", Skills: []string{"Go"}},
	}, taxonomy.Categories())
	assert.Equal(t, 3, taxonomy.Size())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := "languages:\n  - Go\n  - Rust\ncloud:\n  - AWS\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	taxonomy, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "AWS"}, Names(taxonomy.Extract("go on aws")))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	var loadErr *TaxonomyLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	badShape := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(badShape, []byte(`["Go", "Rust"]`), 0o644))
	_, err = Load(badShape)
	require.ErrorAs(t, err, &loadErr)

	badSkills := filepath.Join(dir, "nested.json")
	require.NoError(t, os.WriteFile(badSkills, []byte(`{"languages": {"go": 1}}`), 0o644))
	_, err = Load(badSkills)
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadOrDefault_FallsBack(t *testing.T) {
	taxonomy := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	assert.Equal(t, Default().Categories(), taxonomy.Categories())

	taxonomy = LoadOrDefault("", nil)
	assert.Equal(t, Default().Size(), taxonomy.Size())
}

func TestCategoriesReturnsCopy(t *testing.T) {
	taxonomy := Default()
	categories := taxonomy.Categories()
	categories[0].Skills[0] = "Mutated"

	assert.Equal(t, "Python", taxonomy.Categories()[0].Skills[0])
}
