package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/autocv/internal/feedback"
	"alfredoptarigan/autocv/internal/resume"
	"alfredoptarigan/autocv/internal/scoring"
	"alfredoptarigan/autocv/internal/services"
)

func writeResumeDOCX(t *testing.T, lines ...string) string {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, line := range lines {
		body.WriteString(`<w:p><w:r><w:t>` + line + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	path := filepath.Join(t.TempDir(), "resume.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

func TestWriteSummary(t *testing.T) {
	analysis := &services.Analysis{
		Result: &scoring.Result{
			OverallScore: 64.5,
			SubScores:    map[scoring.Dimension]float64{scoring.DimensionATS: 100},
			SkillGaps:    []string{"Docker", "SQL"},
			MissingSections: resume.MissingSections{
				MissingRequired: []resume.Section{resume.SectionProjects},
			},
		},
		Feedback: feedback.FeedbackReport{
			Feedback: feedback.Report{HighPriority: []string{"Add missing critical sections: projects"}},
			BulletRewrites: []feedback.BulletRewrite{
				{Original: "Worked on a website", Suggested: "Developed a website"},
			},
		},
	}

	var out bytes.Buffer
	require.NoError(t, writeSummary(&out, analysis))

	text := out.String()
	assert.Contains(t, text, "Overall score: 64.5")
	assert.Contains(t, text, "ats_compliance")
	assert.Contains(t, text, "100.0")
	assert.Contains(t, text, "Missing sections: projects")
	assert.Contains(t, text, "Skill gaps: Docker, SQL")
	assert.Contains(t, text, "High priority:\n  - Add missing critical sections: projects")
	assert.Contains(t, text, "=> Developed a website")
	assert.NotContains(t, text, "Low priority")
}

func TestScoreCommand_JSON(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")

	path := writeResumeDOCX(t,
		"Jane Doe",
		"jane@example.com | +1 555 123 4567",
		"Education",
		"B.Tech Computer Science",
		"Projects",
		"- Built a REST API in Python serving 2000 users",
		"Skills",
		"Python, Docker, Git",
	)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"score", path, "--role", "Backend Developer", "--output", "json"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())

	var got struct {
		Result struct {
			OverallScore float64            `json:"overall_score"`
			SubScores    map[string]float64 `json:"sub_scores"`
			SkillGaps    []string           `json:"skill_gaps"`
		} `json:"result"`
		Feedback struct {
			Feedback struct {
				HighPriority []string `json:"high_priority"`
			} `json:"feedback"`
		} `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.Len(t, got.Result.SubScores, len(scoring.Dimensions))
	assert.GreaterOrEqual(t, got.Result.OverallScore, 0.0)
	assert.LessOrEqual(t, got.Result.OverallScore, 100.0)
	assert.Contains(t, got.Result.SkillGaps, "Java")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())
	assert.Equal(t, "autocv version: unknown\n", out.String())
}
