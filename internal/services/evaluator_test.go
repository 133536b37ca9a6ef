package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"alfredoptarigan/autocv/internal/models"
	"alfredoptarigan/autocv/internal/repositories"
	"alfredoptarigan/autocv/internal/scoring"
	"alfredoptarigan/autocv/internal/skills"
)

const testResume = `Jane Doe
jane.doe@example.com | +91 98765 43210
linkedin.com/in/janedoe | github.com/janedoe

Education
B.Tech Computer Science, CGPA 8.7

Experience
Software Intern at Acme

Projects
- Worked on a website for the college fest
- Developed ML model with 95% accuracy

Skills
Python, SQL, Docker, Git
`

type fakeExtractor struct {
	text  string
	pages int
	err   error
}

func (f *fakeExtractor) Extract(string) (*ExtractedText, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ExtractedText{Text: f.text, PageCount: f.pages}, nil
}

type fakeReportRepo struct {
	reports map[uuid.UUID]*models.Report
	err     error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[uuid.UUID]*models.Report{}}
}

func (r *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	if r.err != nil {
		return r.err
	}
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, repositories.ErrReportNotFound
	}
	return report, nil
}

type fakeIndex struct {
	entries   []IndexEntry
	err       error
	searchErr error
	limit     int
	similar   []models.SimilarReport
}

func (f *fakeIndex) InitCollection(context.Context) error { return nil }

func (f *fakeIndex) IndexReport(_ context.Context, entry IndexEntry, _ []float32) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeIndex) SimilarReports(_ context.Context, _ string, limit int) ([]models.SimilarReport, error) {
	f.limit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.similar, nil
}

func newTestEvaluator(extractor DocumentExtractor, repo repositories.ReportRepository, index ReportIndex, embedder DocumentEmbedder) EvaluatorService {
	scorer := scoring.NewScorer(skills.Default(), nil, nil)
	return NewEvaluatorService(NewAnalyzerService(extractor, scorer), repo, index, embedder, nil)
}

func TestEvaluatorService_ScoreResume(t *testing.T) {
	repo := newFakeReportRepo()
	index := &fakeIndex{}
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, repo, index, &fakeEmbedder{})

	resp, err := svc.ScoreResume(context.Background(), ScoreRequest{
		FilePath:   "/tmp/upload.pdf",
		Filename:   "jane.pdf",
		TargetRole: " Backend Developer ",
	})
	require.NoError(t, err)

	report := resp.Report
	require.Contains(t, repo.reports, report.ID)
	assert.Equal(t, "jane.pdf", report.Filename)
	require.NotNil(t, report.TargetRole)
	assert.Equal(t, "Backend Developer", *report.TargetRole)
	assert.Len(t, report.SubScores, len(scoring.Dimensions))
	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 100.0)

	assert.Empty(t, report.Evidence.MissingSections.MissingRequired)
	assert.Empty(t, report.Evidence.ATSIssues)
	assert.Contains(t, report.Evidence.SkillGaps, "Node.js")
	assert.Equal(t, []string{"- Worked on a website for the college fest"}, report.Evidence.WeakBullets)
	assert.Contains(t, report.Evidence.Dimensions, string(scoring.DimensionProjects))

	require.Len(t, resp.BulletRewrites, 1)
	assert.Equal(t, report.Evidence.WeakBullets[0], resp.BulletRewrites[0].Original)

	require.Len(t, index.entries, 1)
	assert.Equal(t, report.ID.String(), index.entries[0].ReportID)
	assert.Equal(t, "Backend Developer", index.entries[0].TargetRole)
}

func TestEvaluatorService_ScoreResume_ParseError(t *testing.T) {
	repo := newFakeReportRepo()
	parseErr := &ParseError{File: "cv.pdf", Reason: "no text content found in PDF"}
	svc := newTestEvaluator(&fakeExtractor{err: parseErr}, repo, nil, nil)

	_, err := svc.ScoreResume(context.Background(), ScoreRequest{FilePath: "cv.pdf", Filename: "cv.pdf"})

	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Empty(t, repo.reports)
}

func TestEvaluatorService_ScoreResume_StoreFailure(t *testing.T) {
	repo := newFakeReportRepo()
	repo.err = errors.New("db down")
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, repo, nil, nil)

	_, err := svc.ScoreResume(context.Background(), ScoreRequest{Filename: "cv.pdf"})

	assert.ErrorContains(t, err, "failed to save report")
}

func TestEvaluatorService_IndexFailureKeepsReport(t *testing.T) {
	repo := newFakeReportRepo()
	index := &fakeIndex{err: errors.New("qdrant down")}
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, repo, index, &fakeEmbedder{})

	resp, err := svc.ScoreResume(context.Background(), ScoreRequest{Filename: "cv.docx"})

	require.NoError(t, err)
	assert.Contains(t, repo.reports, resp.ID)
}

func TestEvaluatorService_EmbeddingUnavailableSkipsIndex(t *testing.T) {
	index := &fakeIndex{}
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, newFakeReportRepo(), index, &fakeEmbedder{err: ErrEmbeddingUnavailable})

	_, err := svc.ScoreResume(context.Background(), ScoreRequest{Filename: "cv.pdf"})

	require.NoError(t, err)
	assert.Empty(t, index.entries)
}

func TestEvaluatorService_GetReport(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, repo, nil, nil)

	resp, err := svc.ScoreResume(context.Background(), ScoreRequest{Filename: "cv.pdf"})
	require.NoError(t, err)

	got, err := svc.GetReport(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Report, got)
	assert.Nil(t, got.TargetRole)
	require.NotEmpty(t, got.BulletRewrites)
	assert.Equal(t, "- Worked on a website for the college fest", got.BulletRewrites[0].Original)

	_, err = svc.GetReport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrReportNotFound)
}

func TestEvaluatorService_SimilarReports(t *testing.T) {
	repo := newFakeReportRepo()
	index := &fakeIndex{similar: []models.SimilarReport{{ReportID: "other", Similarity: 0.9}}}
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, repo, index, nil)

	resp, err := svc.ScoreResume(context.Background(), ScoreRequest{Filename: "cv.pdf"})
	require.NoError(t, err)

	tests := []struct {
		limit     int
		wantLimit int
	}{
		{limit: 0, wantLimit: DefaultSimilarLimit},
		{limit: 3, wantLimit: 3},
		{limit: 1000, wantLimit: MaxSimilarLimit},
	}
	for _, tt := range tests {
		results, err := svc.SimilarReports(context.Background(), resp.ID, tt.limit)
		require.NoError(t, err)
		assert.Equal(t, index.similar, results)
		assert.Equal(t, tt.wantLimit, index.limit)
	}

	_, err = svc.SimilarReports(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, repositories.ErrReportNotFound)
}

func TestEvaluatorService_SimilarReports_NotIndexed(t *testing.T) {
	repo := newFakeReportRepo()
	index := &fakeIndex{searchErr: ErrNotIndexed}
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, repo, index, &fakeEmbedder{err: ErrEmbeddingUnavailable})

	resp, err := svc.ScoreResume(context.Background(), ScoreRequest{Filename: "cv.pdf"})
	require.NoError(t, err)
	require.Empty(t, index.entries)

	results, err := svc.SimilarReports(context.Background(), resp.ID, 5)

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestEvaluatorService_SimilarReports_IndexFailure(t *testing.T) {
	repo := newFakeReportRepo()
	index := &fakeIndex{searchErr: errors.New("connection refused")}
	svc := newTestEvaluator(&fakeExtractor{text: testResume, pages: 1}, repo, index, nil)

	resp, err := svc.ScoreResume(context.Background(), ScoreRequest{Filename: "cv.pdf"})
	require.NoError(t, err)

	_, err = svc.SimilarReports(context.Background(), resp.ID, 5)

	assert.ErrorContains(t, err, "failed to find similar reports")
}

func TestIsMissingPoint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "grpc not found", err: status.Error(codes.NotFound, "Not found: No point with id 42 found"), want: true},
		{name: "wrapped not found", err: fmt.Errorf("query: %w", status.Error(codes.NotFound, "missing")), want: true},
		{name: "message only", err: status.Error(codes.InvalidArgument, "No point with id abc found"), want: true},
		{name: "unavailable", err: status.Error(codes.Unavailable, "connection refused"), want: false},
		{name: "plain", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isMissingPoint(tt.err))
		})
	}
}

func TestNoopReportIndex(t *testing.T) {
	index := NewNoopReportIndex()

	require.NoError(t, index.InitCollection(context.Background()))
	require.NoError(t, index.IndexReport(context.Background(), IndexEntry{ReportID: "x"}, []float32{1}))

	results, err := index.SimilarReports(context.Background(), "x", 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
