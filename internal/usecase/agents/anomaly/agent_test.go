package anomaly

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

func columnWithOutlier() entity.Column {
	floats := make([]float64, 0, 21)
	for i := 0; i < 20; i++ {
		floats = append(floats, float64(10+i)) // 10..29, tightly packed
	}
	floats = append(floats, 1000) // planted outlier
	return entity.Column{
		Name:    "sales",
		Kind:    entity.KindNumeric,
		Floats:  floats,
		Missing: make([]bool, len(floats)),
	}
}

func TestExecuteFlagsPlantedOutliers(t *testing.T) {
	ds := &entity.Dataset{Columns: []entity.Column{columnWithOutlier()}}

	res := New(agents.ModelCaller{}).Execute(context.Background(), ds, entity.NewResultSet())

	require.True(t, res.OK())
	report, ok := res.Payload.(*entity.AnomalyReport)
	require.True(t, ok)

	found, ok := report.ByColumn["sales"]
	require.True(t, ok)
	assert.Equal(t, 1, found.Count)
	assert.Equal(t, []float64{1000}, found.Sample)
	assert.Equal(t, 1, report.Total)
	require.Len(t, report.Summary, 1)
	assert.Contains(t, report.Summary[0], "sales: 1 outliers")
}

func TestExecuteCleanColumnsProduceNothing(t *testing.T) {
	ds := &entity.Dataset{Columns: []entity.Column{{
		Name:    "steady",
		Kind:    entity.KindNumeric,
		Floats:  []float64{10, 11, 12, 13, 14, 15},
		Missing: make([]bool, 6),
	}}}

	res := New(agents.ModelCaller{}).Execute(context.Background(), ds, entity.NewResultSet())

	report := res.Payload.(*entity.AnomalyReport)
	assert.Empty(t, report.ByColumn)
	assert.Empty(t, report.Summary)
	assert.Zero(t, report.Total)
}

func TestDetectNeedsEnoughValues(t *testing.T) {
	col := entity.Column{
		Name:    "tiny",
		Kind:    entity.KindNumeric,
		Floats:  []float64{1, 2, 500},
		Missing: make([]bool, 3),
	}

	_, ok := detect(&col, 3)
	assert.False(t, ok)
}

func TestDetectIgnoresMissingValues(t *testing.T) {
	col := columnWithOutlier()
	// Mask the planted outlier; nothing should be flagged.
	col.Missing[len(col.Floats)-1] = true

	_, ok := detect(&col, col.Len())
	assert.False(t, ok)
}

func TestDetectPercentageUsesRowCount(t *testing.T) {
	col := columnWithOutlier()

	found, ok := detect(&col, col.Len())
	require.True(t, ok)
	assert.InDelta(t, 100.0/21, found.Percentage, 1e-9)
	assert.Less(t, found.UpperBound, 1000.0)
}
