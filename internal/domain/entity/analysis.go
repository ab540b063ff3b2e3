package entity

// Payload types produced by the analysis agents. The pipeline itself never
// interprets these; they are consumed by the insights and report stages and
// by the front ends.

// CleaningReport describes what the cleaning agent did to the dataset.
type CleaningReport struct {
	OriginalRows  int            `json:"original_rows"`
	OriginalCols  int            `json:"original_cols"`
	CleanedRows   int            `json:"cleaned_rows"`
	CleanedCols   int            `json:"cleaned_cols"`
	MissingBefore map[string]int `json:"missing_before"`
	MissingAfter  map[string]int `json:"missing_after"`
	Operations    []string       `json:"operations"`
	ModelAdvice   string         `json:"model_advice,omitempty"`

	// Cleaned is the private, repaired copy of the shared input.
	Cleaned *Dataset `json:"-"`
}

// ColumnStats is the describe() summary of one numeric column.
type ColumnStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Chart is a rendered visualization, PNG encoded as base64.
type Chart struct {
	Kind      string `json:"kind"`
	PNGBase64 string `json:"png_base64"`
}

// EDAReport carries the exploratory analysis results.
type EDAReport struct {
	Stats         map[string]ColumnStats        `json:"stats"`
	Correlations  map[string]map[string]float64 `json:"correlations"`
	Charts        []Chart                       `json:"charts"`
	ModelInsights string                        `json:"model_insights,omitempty"`
}

// ColumnOutliers describes the IQR outliers found in one numeric column.
type ColumnOutliers struct {
	Count      int       `json:"count"`
	Percentage float64   `json:"percentage"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
	Sample     []float64 `json:"sample"`
}

// AnomalyReport summarizes outlier detection across the dataset.
type AnomalyReport struct {
	ByColumn      map[string]ColumnOutliers `json:"outliers_by_column"`
	Summary       []string                  `json:"summary"`
	Total         int                       `json:"total"`
	ModelInsights string                    `json:"model_insights,omitempty"`
}

// FeatureScore is one entry of a feature-importance ranking.
type FeatureScore struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"score"`
}

// ModelReport carries the modeling agent's feature-importance results.
type ModelReport struct {
	Target        string         `json:"target,omitempty"`
	Importance    []FeatureScore `json:"importance"`
	Insights      []string       `json:"insights"`
	ModelInsights string         `json:"model_insights,omitempty"`
}

// Insights is the stage-2 synthesis over all stage-1 results.
type Insights struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyFindings      []string `json:"key_findings"`
	Recommendations  []string `json:"recommendations"`
}

// ReportArtifact points at the rendered report file.
type ReportArtifact struct {
	PDFPath string `json:"pdf_path"`
}
