package models

// ScoreResponse is returned by the score-resume endpoint.
type ScoreResponse struct {
	*Report
}

// SimilarReport is a stored report whose resume is close to another one.
type SimilarReport struct {
	ReportID     string  `json:"report_id"`
	Filename     string  `json:"filename"`
	TargetRole   string  `json:"target_role,omitempty"`
	OverallScore float64 `json:"overall_score"`
	Similarity   float32 `json:"similarity"`
}

type SimilarReportsResponse struct {
	ID      string          `json:"id"`
	Results []SimilarReport `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
