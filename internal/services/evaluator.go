package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/feedback"
	"alfredoptarigan/autocv/internal/logger"
	"alfredoptarigan/autocv/internal/metrics"
	"alfredoptarigan/autocv/internal/models"
	"alfredoptarigan/autocv/internal/repositories"
	"alfredoptarigan/autocv/internal/resume"
	"alfredoptarigan/autocv/internal/scoring"
)

const (
	DefaultSimilarLimit = 5
	MaxSimilarLimit     = 50
)

// Analysis is the in-memory outcome of scoring one document.
type Analysis struct {
	Document *resume.ParsedDocument  `json:"-"`
	Result   *scoring.Result         `json:"result"`
	Feedback feedback.FeedbackReport `json:"feedback"`
}

type AnalyzerService interface {
	Analyze(ctx context.Context, filePath, targetRole, jdText string) (*Analysis, error)
}

type analyzerService struct {
	extractor DocumentExtractor
	scorer    *scoring.Scorer
}

func NewAnalyzerService(extractor DocumentExtractor, scorer *scoring.Scorer) AnalyzerService {
	return &analyzerService{extractor: extractor, scorer: scorer}
}

// Analyze runs extract, normalise, score and feedback. Only extraction can fail.
func (a *analyzerService) Analyze(ctx context.Context, filePath, targetRole, jdText string) (*Analysis, error) {
	extracted, err := a.extractor.Extract(filePath)
	if err != nil {
		return nil, err
	}

	doc := resume.Normalize(extracted.Text, extracted.PageCount)
	result := a.scorer.Score(ctx, doc, targetRole, jdText)

	return &Analysis{
		Document: doc,
		Result:   result,
		Feedback: feedback.Compile(result, doc),
	}, nil
}

// ScoreRequest describes one uploaded resume to score and store.
type ScoreRequest struct {
	FilePath   string
	Filename   string
	TargetRole string
	JDText     string
}

// DocumentEmbedder produces the vector used for similar-report lookups.
type DocumentEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type EvaluatorService interface {
	ScoreResume(ctx context.Context, req ScoreRequest) (*models.ScoreResponse, error)
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	SimilarReports(ctx context.Context, id uuid.UUID, limit int) ([]models.SimilarReport, error)
}

type evaluatorService struct {
	analyzer   AnalyzerService
	reportRepo repositories.ReportRepository
	index      ReportIndex
	embedder   DocumentEmbedder
	logger     *zap.Logger
}

// NewEvaluatorService wires the scoring pipeline to storage. index and
// embedder may be nil, which disables similar-report indexing.
func NewEvaluatorService(
	analyzer AnalyzerService,
	reportRepo repositories.ReportRepository,
	index ReportIndex,
	embedder DocumentEmbedder,
	log *zap.Logger,
) EvaluatorService {
	if index == nil {
		index = NewNoopReportIndex()
	}
	return &evaluatorService{
		analyzer:   analyzer,
		reportRepo: reportRepo,
		index:      index,
		embedder:   embedder,
		logger:     logger.WithFields(log),
	}
}

func (e *evaluatorService) ScoreResume(ctx context.Context, req ScoreRequest) (*models.ScoreResponse, error) {
	start := time.Now()
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(req.Filename)), ".")
	log := e.logger.With(logger.RequestFields(req.Filename, req.TargetRole, strings.TrimSpace(req.JDText) != "")...)

	analysis, err := e.analyzer.Analyze(ctx, req.FilePath, req.TargetRole, req.JDText)
	if err != nil {
		status := "error"
		if IsParseError(err) {
			status = "parse_error"
		}
		metrics.ScoringRequests.WithLabelValues(status).Inc()
		log.Warn("Resume analysis failed", zap.Error(err))
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}

	report := buildReport(req, analysis)
	if err := e.reportRepo.Create(ctx, report); err != nil {
		metrics.ScoringRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	e.indexReport(ctx, report, analysis.Document.FullText)

	metrics.ScoringRequests.WithLabelValues("success").Inc()
	metrics.ScoringDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	metrics.OverallScore.Observe(report.OverallScore)

	log.Info("Resume scored",
		zap.String(logger.FieldReportID, report.ID.String()),
		zap.Float64("overall_score", report.OverallScore),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &models.ScoreResponse{Report: report}, nil
}

// indexReport is best effort: a failure is logged and the report stays saved.
func (e *evaluatorService) indexReport(ctx context.Context, report *models.Report, text string) {
	if e.embedder == nil {
		return
	}

	embedding, err := e.embedder.Embed(ctx, text)
	if err != nil {
		metrics.ReportsIndexed.WithLabelValues("skipped").Inc()
		e.logger.Debug("Report not indexed, embedding unavailable", zap.Error(err))
		return
	}

	entry := IndexEntry{
		ReportID:     report.ID.String(),
		Filename:     report.Filename,
		OverallScore: report.OverallScore,
	}
	if report.TargetRole != nil {
		entry.TargetRole = *report.TargetRole
	}

	if err := e.index.IndexReport(ctx, entry, embedding); err != nil {
		metrics.ReportsIndexed.WithLabelValues("error").Inc()
		e.logger.Warn("Failed to index report", zap.String(logger.FieldReportID, entry.ReportID), zap.Error(err))
		return
	}
	metrics.ReportsIndexed.WithLabelValues("success").Inc()
}

func (e *evaluatorService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return e.reportRepo.FindByID(ctx, id)
}

// SimilarReports returns the stored reports nearest to id. The report must exist.
func (e *evaluatorService) SimilarReports(ctx context.Context, id uuid.UUID, limit int) ([]models.SimilarReport, error) {
	if _, err := e.reportRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}

	results, err := e.index.SimilarReports(ctx, id.String(), limit)
	if errors.Is(err, ErrNotIndexed) {
		e.logger.Debug("Report has no indexed vector", zap.String(logger.FieldReportID, id.String()))
		return []models.SimilarReport{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find similar reports: %w", err)
	}
	return results, nil
}

func buildReport(req ScoreRequest, analysis *Analysis) *models.Report {
	result := analysis.Result

	subScores := make(map[string]float64, len(result.SubScores))
	dimensions := make(map[string][]string, len(result.Evidence))
	for _, d := range scoring.Dimensions {
		subScores[string(d)] = result.SubScores[d]
		dimensions[string(d)] = result.Evidence[d]
	}

	weakBullets := make([]string, 0, len(analysis.Feedback.BulletRewrites))
	for _, r := range analysis.Feedback.BulletRewrites {
		weakBullets = append(weakBullets, r.Original)
	}

	var targetRole *string
	if role := strings.TrimSpace(req.TargetRole); role != "" {
		targetRole = &role
	}

	return &models.Report{
		ID:             uuid.New(),
		Filename:       req.Filename,
		TargetRole:     targetRole,
		OverallScore:   result.OverallScore,
		SubScores:      subScores,
		Feedback:       analysis.Feedback.Feedback,
		BulletRewrites: analysis.Feedback.BulletRewrites,
		Evidence: models.ReportEvidence{
			MissingSections: result.MissingSections,
			SkillGaps:       result.SkillGaps,
			WeakBullets:     weakBullets,
			ATSIssues:       result.ATSIssues,
			Dimensions:      dimensions,
		},
		CreatedAt: time.Now().UTC(),
	}
}
