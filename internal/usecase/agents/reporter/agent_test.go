package reporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/report"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

func fullRunResults() *entity.ResultSet {
	set := entity.NewResultSet()
	set.Add(entity.Succeed("cleaning", &entity.CleaningReport{
		OriginalRows: 150,
		Operations:   []string{"Filled sales nulls with median: 20"},
	}, 0))
	set.Add(entity.Succeed("eda", &entity.EDAReport{}, 0))
	set.Add(entity.Fail("anomaly", "agent panicked: nil column reference", 0))
	set.Add(entity.Succeed("ml", &entity.ModelReport{
		Target: "sales",
		Importance: []entity.FeatureScore{
			{Feature: "ad_spend", Score: 0.8},
			{Feature: "units", Score: 0.2},
		},
	}, 0))
	set.Add(entity.Succeed("insights", &entity.Insights{
		ExecutiveSummary: "**Sales** are driven by ad spend.",
		KeyFindings:      []string{"Detected 4 anomalies across numeric columns."},
		Recommendations:  []string{"Investigate outliers for data quality or business trends."},
	}, 0))
	return set
}

func TestExecuteWritesPDF(t *testing.T) {
	dir := t.TempDir()
	ag := New(agents.ModelCaller{}, report.NewPDFRenderer(dir))

	res := ag.Execute(context.Background(), nil, fullRunResults())

	require.True(t, res.OK(), res.Error)
	artifact, ok := res.Payload.(*entity.ReportArtifact)
	require.True(t, ok)
	assert.Equal(t, dir, filepath.Dir(artifact.PDFPath))
	assert.True(t, strings.HasPrefix(filepath.Base(artifact.PDFPath), "analysis_report_"))

	raw, err := os.ReadFile(artifact.PDFPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestExecuteIncludesFailedAgents(t *testing.T) {
	// The renderer cannot be introspected after the fact, so capture the
	// assembled data through section building instead.
	ag := New(agents.ModelCaller{}, report.NewPDFRenderer(t.TempDir()))

	failed := entity.Fail("anomaly", "agent panicked: nil column reference", 0)
	sec, ok := ag.section(context.Background(), failed)

	require.True(t, ok)
	assert.Equal(t, "Anomaly Detection Agent - Results", sec.Title)
	assert.Equal(t, []string{"Failed: agent panicked: nil column reference"}, sec.Bullets)
}

func TestExecuteRenderFailureYieldsFailureEnvelope(t *testing.T) {
	// A file standing where the output directory should be makes MkdirAll fail.
	blocked := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	ag := New(agents.ModelCaller{}, report.NewPDFRenderer(filepath.Join(blocked, "nested")))

	res := ag.Execute(context.Background(), nil, fullRunResults())

	assert.Equal(t, entity.StatusFailure, res.Status)
	assert.True(t, res.Valid())
}

func TestSectionSkipsInsightsAndSelf(t *testing.T) {
	ag := New(agents.ModelCaller{}, report.NewPDFRenderer(t.TempDir()))

	_, ok := ag.section(context.Background(), entity.Succeed("insights", &entity.Insights{}, 0))
	assert.False(t, ok)

	_, ok = ag.section(context.Background(), entity.Succeed("report", nil, 0))
	assert.False(t, ok)
}

func TestSectionTopFeaturesCappedAtTen(t *testing.T) {
	scores := make([]entity.FeatureScore, 14)
	for i := range scores {
		scores[i] = entity.FeatureScore{Feature: "f", Score: 0.1}
	}
	ag := New(agents.ModelCaller{}, report.NewPDFRenderer(t.TempDir()))

	sec, ok := ag.section(context.Background(),
		entity.Succeed("ml", &entity.ModelReport{Importance: scores}, 0))

	require.True(t, ok)
	assert.Equal(t, "Top Features", sec.BulletTitle)
	assert.Len(t, sec.Bullets, 10)
}

func TestDescribeFallsBackToCannedProse(t *testing.T) {
	ag := New(agents.ModelCaller{}, report.NewPDFRenderer(t.TempDir()))

	got := ag.describe(context.Background(), "anomaly")

	assert.Equal(t, fallbackDescriptions["anomaly"], got)
}

func TestCleanMarkup(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"## Heading", "Heading"},
		{"**bold** text", "bold text"},
		{"*italic* text", "italic text"},
		{"  plain  ", "plain"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanMarkup(tc.in))
	}
}
