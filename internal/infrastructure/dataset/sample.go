package dataset

import (
	"math/rand"
	"time"

	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
)

// Sample knobs. The generated frame deliberately contains missing
// categoricals and planted outliers so every analysis agent has something
// to find.
const (
	sampleRows = 150
	sampleSeed = 42
)

var (
	sampleRegions    = []string{"North", "South", "East", "West", ""}
	sampleCategories = []string{"A", "B", "C", "D", ""}

	salesOutliers        = []float64{1000, 1200, 1500}
	profitOutliers       = []float64{200, -50, 0}
	customersOutliers    = []float64{500, 0, 100}
	satisfactionOutliers = []float64{3.0, 5.0, 4.0}
)

// GenerateSample produces the seeded demo dataset: sales, profit, customers
// and satisfaction around fixed distributions, sparse regions/categories,
// dates in the last 180 days, plus three planted outlier rows, shuffled.
func GenerateSample() *entity.Dataset {
	r := rand.New(rand.NewSource(sampleSeed))
	n := sampleRows + len(salesOutliers)

	sales := normals(r, sampleRows, 200, 50)
	profit := normals(r, sampleRows, 40, 15)
	customers := make([]float64, sampleRows)
	for i := range customers {
		customers[i] = float64(50 + r.Intn(100))
	}
	satisfaction := normals(r, sampleRows, 4.5, 0.3)

	sales = append(sales, salesOutliers...)
	profit = append(profit, profitOutliers...)
	customers = append(customers, customersOutliers...)
	satisfaction = append(satisfaction, satisfactionOutliers...)

	regions := make([]string, 0, n)
	categories := make([]string, 0, n)
	for i := 0; i < sampleRows; i++ {
		regions = append(regions, sampleRegions[r.Intn(len(sampleRegions))])
		categories = append(categories, sampleCategories[r.Intn(len(sampleCategories))])
	}
	regions = append(regions, "North", "South", "East")
	categories = append(categories, "A", "B", "C")

	now := time.Now()
	dates := make([]string, n)
	for i := range dates {
		dates[i] = now.AddDate(0, 0, -r.Intn(181)).Format("2006-01-02")
	}

	perm := r.Perm(n)
	ds := &entity.Dataset{Columns: []entity.Column{
		categoricalColumn("date", dates, perm),
		numericColumn("sales", sales, perm),
		numericColumn("profit", profit, perm),
		numericColumn("customers", customers, perm),
		categoricalColumn("region", regions, perm),
		categoricalColumn("category", categories, perm),
		numericColumn("satisfaction", satisfaction, perm),
	}}
	return ds
}

func normals(r *rand.Rand, n int, mean, std float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.NormFloat64()*std + mean
	}
	return out
}

func numericColumn(name string, values []float64, perm []int) entity.Column {
	col := entity.Column{
		Name:    name,
		Kind:    entity.KindNumeric,
		Floats:  make([]float64, len(perm)),
		Missing: make([]bool, len(perm)),
	}
	for i, p := range perm {
		col.Floats[i] = values[p]
	}
	return col
}

func categoricalColumn(name string, values []string, perm []int) entity.Column {
	col := entity.Column{
		Name:    name,
		Kind:    entity.KindCategorical,
		Strings: make([]string, len(perm)),
		Missing: make([]bool, len(perm)),
	}
	for i, p := range perm {
		col.Strings[i] = values[p]
		col.Missing[i] = values[p] == ""
	}
	return col
}
