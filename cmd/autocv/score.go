package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/config"
	"alfredoptarigan/autocv/internal/logger"
	"alfredoptarigan/autocv/internal/scoring"
	"alfredoptarigan/autocv/internal/services"
	"alfredoptarigan/autocv/internal/skills"
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume.pdf|resume.docx>",
	Short: "Score a resume file locally without storing a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringP("role", "r", "", "target role, e.g. \"Backend Developer\"")
	scoreCmd.Flags().String("jd-file", "", "path to a job description text file")
	scoreCmd.Flags().StringP("output", "o", "text", "output format: text or json")
	scoreCmd.Flags().String("taxonomy", "", "skills taxonomy file (JSON or YAML)")

	viper.BindPFlag("role", scoreCmd.Flags().Lookup("role"))
	viper.BindPFlag("jd-file", scoreCmd.Flags().Lookup("jd-file"))
	viper.BindPFlag("output", scoreCmd.Flags().Lookup("output"))
	viper.BindPFlag("taxonomy", scoreCmd.Flags().Lookup("taxonomy"))

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	format := viper.GetString("output")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown output format %q", format)
	}

	log, err := logger.NewStderr(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	cfg := config.Load()

	var jdText string
	if path := viper.GetString("jd-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jdText = string(data)
	}

	taxonomyPath := viper.GetString("taxonomy")
	if taxonomyPath == "" {
		taxonomyPath = cfg.Scoring.TaxonomyPath
	}
	taxonomy := skills.LoadOrDefault(taxonomyPath, log)

	similarity, closeCache, err := services.NewSimilarityFromConfig(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	analyzer := services.NewAnalyzerService(
		services.NewDocumentExtractor(),
		scoring.NewScorer(taxonomy, similarity, log),
	)

	role := viper.GetString("role")
	log.Debug("Scoring resume", logger.RequestFields(args[0], role, jdText != "")...)

	analysis, err := analyzer.Analyze(cmd.Context(), args[0], role, jdText)
	if err != nil {
		log.Error("Scoring failed", zap.Error(err))
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	return writeSummary(cmd.OutOrStdout(), analysis)
}

func writeSummary(w io.Writer, analysis *services.Analysis) error {
	result := analysis.Result
	var b strings.Builder

	fmt.Fprintf(&b, "Overall score: %.1f\n\n", result.OverallScore)
	for _, d := range scoring.Dimensions {
		fmt.Fprintf(&b, "  %-24s %5.1f\n", d, result.SubScores[d])
	}

	if missing := result.MissingSections.MissingRequired; len(missing) > 0 {
		names := make([]string, len(missing))
		for i, s := range missing {
			names[i] = string(s)
		}
		fmt.Fprintf(&b, "\nMissing sections: %s\n", strings.Join(names, ", "))
	}
	if len(result.SkillGaps) > 0 {
		fmt.Fprintf(&b, "\nSkill gaps: %s\n", strings.Join(result.SkillGaps, ", "))
	}

	report := analysis.Feedback.Feedback
	writeList(&b, "High priority", report.HighPriority)
	writeList(&b, "Medium priority", report.MediumPriority)
	writeList(&b, "Low priority", report.LowPriority)

	if rewrites := analysis.Feedback.BulletRewrites; len(rewrites) > 0 {
		b.WriteString("\nSuggested rewrites:\n")
		for _, r := range rewrites {
			fmt.Fprintf(&b, "  - %s\n    => %s\n", r.Original, r.Suggested)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}
