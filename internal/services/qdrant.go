package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"alfredoptarigan/autocv/internal/models"
)

// ErrNotIndexed is returned by SimilarReports when the report has no stored
// vector, e.g. because embeddings were unavailable when it was scored.
var ErrNotIndexed = errors.New("report not indexed")

// ReportIndex stores one resume embedding per report and finds neighbours.
type ReportIndex interface {
	InitCollection(ctx context.Context) error
	IndexReport(ctx context.Context, entry IndexEntry, embedding []float32) error
	SimilarReports(ctx context.Context, reportID string, limit int) ([]models.SimilarReport, error)
}

// IndexEntry is the payload stored alongside a report's vector.
type IndexEntry struct {
	ReportID     string
	Filename     string
	TargetRole   string
	OverallScore float64
}

type qdrantReportIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantReportIndex(urlStr, apiKey, collectionName string, vectorSize uint64, logger *zap.Logger) (ReportIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &qdrantReportIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
		logger:         logger,
	}, nil
}

func (q *qdrantReportIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Debug("Qdrant collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("Qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// IndexReport upserts the report's vector using the report id as point id, so
// re-indexing a report replaces its previous point.
func (q *qdrantReportIndex) IndexReport(ctx context.Context, entry IndexEntry, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(entry.ReportID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"report_id":     entry.ReportID,
			"filename":      entry.Filename,
			"target_role":   entry.TargetRole,
			"overall_score": entry.OverallScore,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SimilarReports queries by the stored vector of reportID. The report itself
// is dropped from the results.
func (q *qdrantReportIndex) SimilarReports(ctx context.Context, reportID string, limit int) ([]models.SimilarReport, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQueryID(qdrant.NewID(reportID)),
		Limit:          qdrant.PtrOf(uint64(limit + 1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		if isMissingPoint(err) {
			return nil, ErrNotIndexed
		}
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]models.SimilarReport, 0, len(points))
	for _, point := range points {
		result := models.SimilarReport{Similarity: point.Score}

		payload := point.Payload
		if v, ok := payload["report_id"]; ok {
			if val, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				result.ReportID = val.StringValue
			}
		}
		if v, ok := payload["filename"]; ok {
			if val, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				result.Filename = val.StringValue
			}
		}
		if v, ok := payload["target_role"]; ok {
			if val, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				result.TargetRole = val.StringValue
			}
		}
		if v, ok := payload["overall_score"]; ok {
			if val, ok := v.GetKind().(*qdrant.Value_DoubleValue); ok {
				result.OverallScore = val.DoubleValue
			}
		}

		if result.ReportID == reportID {
			continue
		}
		results = append(results, result)
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

// isMissingPoint reports whether a query by id failed because Qdrant has no
// point with that id.
func isMissingPoint(err error) bool {
	if status.Code(err) == codes.NotFound {
		return true
	}
	return strings.Contains(err.Error(), "No point with id")
}

type noopReportIndex struct{}

// NewNoopReportIndex returns an index that stores nothing and finds nothing.
func NewNoopReportIndex() ReportIndex {
	return noopReportIndex{}
}

func (noopReportIndex) InitCollection(context.Context) error { return nil }

func (noopReportIndex) IndexReport(context.Context, IndexEntry, []float32) error { return nil }

func (noopReportIndex) SimilarReports(context.Context, string, int) ([]models.SimilarReport, error) {
	return []models.SimilarReport{}, nil
}
