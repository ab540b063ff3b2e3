package entity

// ColumnKind classifies a dataset column.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column is a single typed column. For numeric columns Floats holds the
// values, for categorical columns Strings does; the unused slice is nil.
// Missing marks cells that were absent in the source data.
type Column struct {
	Name    string
	Kind    ColumnKind
	Floats  []float64
	Strings []string
	Missing []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// MissingCount returns how many cells are marked missing.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// Present returns the non-missing numeric values of a numeric column.
func (c *Column) Present() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Dataset is a column-oriented frame shared by every agent in a run. The
// shared instance is read-only: an agent that needs a modified copy works on
// its own Clone.
type Dataset struct {
	Columns []Column
}

// Rows returns the row count (all columns have equal length).
func (d *Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].Len()
}

// Shape returns rows and columns counts.
func (d *Dataset) Shape() (rows, cols int) {
	return d.Rows(), len(d.Columns)
}

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns pointers to the numeric columns in order.
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for i := range d.Columns {
		if d.Columns[i].Kind == KindNumeric {
			out = append(out, &d.Columns[i])
		}
	}
	return out
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{Columns: make([]Column, len(d.Columns))}
	for i, c := range d.Columns {
		cc := Column{Name: c.Name, Kind: c.Kind}
		if c.Floats != nil {
			cc.Floats = append([]float64(nil), c.Floats...)
		}
		if c.Strings != nil {
			cc.Strings = append([]string(nil), c.Strings...)
		}
		cc.Missing = append([]bool(nil), c.Missing...)
		out.Columns[i] = cc
	}
	return out
}

// MissingByColumn returns the missing-cell count per column.
func (d *Dataset) MissingByColumn() map[string]int {
	out := make(map[string]int, len(d.Columns))
	for i := range d.Columns {
		out[d.Columns[i].Name] = d.Columns[i].MissingCount()
	}
	return out
}
