// Package report renders the final analysis PDF.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
)

// AgentRow is one line of the execution summary table.
type AgentRow struct {
	Name     string
	Status   string
	Duration time.Duration
}

// Section is a per-agent detail block: prose, bullet points and optional
// decoded PNG charts.
type Section struct {
	Title       string
	Description string
	BulletTitle string
	Bullets     []string
	Images      []Image
}

// Image is a decoded chart ready for embedding.
type Image struct {
	Title string
	PNG   []byte
}

// Data is everything the renderer needs, already assembled by the report
// agent.
type Data struct {
	GeneratedAt      time.Time
	ExecutiveSummary string
	KeyFindings      []string
	Recommendations  []string
	Rows             []AgentRow
	Sections         []Section
}

// PDFRenderer writes analysis reports into OutDir.
type PDFRenderer struct {
	OutDir string
}

func NewPDFRenderer(outDir string) *PDFRenderer {
	return &PDFRenderer{OutDir: outDir}
}

// Render writes the PDF and returns its path.
func (r *PDFRenderer) Render(data Data) (string, error) {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(r.OutDir,
		fmt.Sprintf("analysis_report_%s.pdf", data.GeneratedAt.Format("20060102_150405")))

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(19, 13, 19)
	pdf.AddPage()

	// Title block.
	pdf.SetTextColor(26, 115, 232)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, "Multi-Agent Data Analysis Report", "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, "Generated on "+data.GeneratedAt.Format("2006-01-02 15:04:05"), "", "L", false)
	pdf.Ln(4)

	heading(pdf, "Executive Summary")
	body(pdf, data.ExecutiveSummary)

	if len(data.KeyFindings) > 0 {
		heading(pdf, "Key Findings")
		bullets(pdf, data.KeyFindings)
	}
	if len(data.Recommendations) > 0 {
		heading(pdf, "Recommendations")
		bullets(pdf, data.Recommendations)
	}

	pdf.AddPage()
	heading(pdf, "Agent Execution Summary")
	r.table(pdf, data.Rows)

	for _, sec := range data.Sections {
		pdf.AddPage()
		heading(pdf, sec.Title)
		body(pdf, sec.Description)

		if len(sec.Bullets) > 0 {
			subheading(pdf, sec.BulletTitle)
			bullets(pdf, sec.Bullets)
		}

		for i, img := range sec.Images {
			subheading(pdf, img.Title)
			name := fmt.Sprintf("%s-img-%d", sec.Title, i)
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))
			pdf.ImageOptions(name, pdf.GetX(), pdf.GetY(), 120, 0, true, opts, 0, "")
			pdf.Ln(4)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

func (r *PDFRenderer) table(pdf *fpdf.Fpdf, rows []AgentRow) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(26, 115, 232)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(80, 7, "Agent", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(38, 7, "Duration (s)", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		pdf.CellFormat(80, 7, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(38, 7, fmt.Sprintf("%.3f", row.Duration.Seconds()), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, text, "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
}

func subheading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 7, text, "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
}

func body(pdf *fpdf.Fpdf, text string) {
	if text == "" {
		return
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, text, "", "L", false)
	pdf.Ln(2)
}

func bullets(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.MultiCell(0, 5, "- "+item, "", "L", false)
	}
	pdf.Ln(2)
}
