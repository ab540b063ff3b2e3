// Package dataset handles CSV ingestion, type inference and sample-data
// synthesis.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
)

// missingTokens are cell values treated as absent data.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// Load reads a CSV file into a typed dataset. Non-UTF-8 files fall back to
// sniffed or Latin-1 decoding rather than failing the run.
func Load(path string) (*entity.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return Parse(decode(raw))
}

// Parse reads CSV records from r and infers column types: a column whose
// every present cell parses as a number is numeric, anything else is
// categorical.
func Parse(r io.Reader) (*entity.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("parse csv: empty file")
	}

	header := records[0]
	rows := records[1:]

	ds := &entity.Dataset{Columns: make([]entity.Column, len(header))}
	for c, name := range header {
		ds.Columns[c] = inferColumn(name, rows, c)
	}
	return ds, nil
}

func inferColumn(name string, rows [][]string, c int) entity.Column {
	numeric := true
	present := 0
	for _, row := range rows {
		cell := cellAt(row, c)
		if isMissing(cell) {
			continue
		}
		present++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false
			break
		}
	}
	if present == 0 {
		numeric = false
	}

	col := entity.Column{Name: name, Missing: make([]bool, len(rows))}
	if numeric {
		col.Kind = entity.KindNumeric
		col.Floats = make([]float64, len(rows))
		for i, row := range rows {
			cell := cellAt(row, c)
			if isMissing(cell) {
				col.Missing[i] = true
				continue
			}
			col.Floats[i], _ = strconv.ParseFloat(cell, 64)
		}
		return col
	}

	col.Kind = entity.KindCategorical
	col.Strings = make([]string, len(rows))
	for i, row := range rows {
		cell := cellAt(row, c)
		if isMissing(cell) {
			col.Missing[i] = true
			continue
		}
		col.Strings[i] = cell
	}
	return col
}

func cellAt(row []string, c int) string {
	if c >= len(row) {
		return ""
	}
	return row[c]
}

func isMissing(cell string) bool {
	return missingTokens[strings.ToLower(cell)]
}

// decode returns a UTF-8 reader over raw bytes. Valid UTF-8 passes through;
// otherwise the charset is sniffed, with Latin-1 as the last resort since it
// never fails.
func decode(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	if enc, name, certain := charset.DetermineEncoding(raw, "text/plain"); certain && name != "utf-8" {
		return transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

// Save writes a dataset back out as UTF-8 CSV, missing cells as empty.
func Save(ds *entity.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows := ds.Rows()
	record := make([]string, len(ds.Columns))
	for r := 0; r < rows; r++ {
		for c := range ds.Columns {
			col := &ds.Columns[c]
			switch {
			case col.Missing[r]:
				record[c] = ""
			case col.Kind == entity.KindNumeric:
				record[c] = strconv.FormatFloat(col.Floats[r], 'g', -1, 64)
			default:
				record[c] = col.Strings[r]
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
