// Package reporter assembles the final PDF from every envelope the earlier
// stages produced, showing each agent's status transparently, failed ones
// included.
package reporter

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/report"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

const agentID = "report"

var _ input.Agent = (*Agent)(nil)

// agentTitles maps stage-1 agent IDs to their display names.
var agentTitles = map[string]string{
	"cleaning": "Data Cleaning Agent",
	"eda":      "EDA Agent",
	"anomaly":  "Anomaly Detection Agent",
	"ml":       "ML Agent",
	"insights": "Business Insights Agent",
	"report":   "Report Generation Agent",
}

// fallbackDescriptions backs up the model-generated section intros.
var fallbackDescriptions = map[string]string{
	"cleaning": "This agent is responsible for preparing the dataset for analysis. It handles missing values, resolves inconsistent formats, removes duplicate entries, and applies recommendations when available. Its purpose is to ensure that downstream agents work with clean, reliable, and standardized data.",
	"eda":      "The EDA Agent explores the dataset and generates statistical summaries and visualizations. Its role is to highlight trends, distributions, correlations, and structural patterns. It helps users understand what features matter, how values are spread, and where potential data quality issues may exist.",
	"anomaly":  "The Anomaly Detection Agent identifies unusual patterns or outliers in numeric columns. These anomalies may indicate data-entry errors, special business events, or operational risks. The agent uses statistical IQR-based detection and produces a summary of affected features.",
	"ml":       "The ML Agent ranks features by how strongly they track the target column. It supports both numeric and categorical inputs. The primary purpose is not model accuracy, but interpretability: understanding which features drive the target outcome the most.",
}

type Agent struct {
	agents.ModelCaller

	renderer *report.PDFRenderer
	clock    func() time.Time
}

func New(caller agents.ModelCaller, renderer *report.PDFRenderer) *Agent {
	return &Agent{ModelCaller: caller, renderer: renderer, clock: time.Now}
}

func (a *Agent) ID() string { return agentID }

func (a *Agent) Execute(ctx context.Context, _ *entity.Dataset, prior *entity.ResultSet) entity.Result {
	start := time.Now()

	data := report.Data{GeneratedAt: a.clock()}

	if r, ok := prior.Get("insights"); ok && r.OK() {
		if ins, ok := r.Payload.(*entity.Insights); ok {
			data.ExecutiveSummary = cleanMarkup(ins.ExecutiveSummary)
			for _, f := range ins.KeyFindings {
				data.KeyFindings = append(data.KeyFindings, cleanMarkup(f))
			}
			for _, rec := range ins.Recommendations {
				data.Recommendations = append(data.Recommendations, cleanMarkup(rec))
			}
		}
	}
	if data.ExecutiveSummary == "" {
		data.ExecutiveSummary = "No executive summary available."
	}

	for _, r := range prior.All() {
		status := "SUCCESS"
		if !r.OK() {
			status = "ERROR: " + r.Error
		}
		data.Rows = append(data.Rows, report.AgentRow{
			Name:     title(r.AgentID),
			Status:   status,
			Duration: r.Duration,
		})

		sec, ok := a.section(ctx, r)
		if ok {
			data.Sections = append(data.Sections, sec)
		}
	}

	path, err := a.renderer.Render(data)
	if err != nil {
		return entity.Fail(agentID, err.Error(), time.Since(start))
	}
	return entity.Succeed(agentID, &entity.ReportArtifact{PDFPath: path}, time.Since(start))
}

// section builds the detail block for one stage-1 envelope. The insights
// envelope has its own front-page treatment and gets no section.
func (a *Agent) section(ctx context.Context, r entity.Result) (report.Section, bool) {
	if r.AgentID == "insights" || r.AgentID == agentID {
		return report.Section{}, false
	}

	sec := report.Section{
		Title:       title(r.AgentID) + " - Results",
		Description: a.describe(ctx, r.AgentID),
	}

	if !r.OK() {
		sec.BulletTitle = "Status"
		sec.Bullets = []string{"Failed: " + r.Error}
		return sec, true
	}

	switch payload := r.Payload.(type) {
	case *entity.CleaningReport:
		sec.BulletTitle = "Operations"
		sec.Bullets = payload.Operations
	case *entity.EDAReport:
		for _, c := range payload.Charts {
			png, err := base64.StdEncoding.DecodeString(c.PNGBase64)
			if err != nil {
				continue
			}
			sec.Images = append(sec.Images, report.Image{Title: c.Kind, PNG: png})
		}
	case *entity.AnomalyReport:
		sec.BulletTitle = "Anomaly Summary"
		for _, s := range payload.Summary {
			sec.Bullets = append(sec.Bullets, cleanMarkup(s))
		}
	case *entity.ModelReport:
		sec.BulletTitle = "Top Features"
		for i, fs := range payload.Importance {
			if i >= 10 {
				break
			}
			sec.Bullets = append(sec.Bullets, fmt.Sprintf("%s: %.4f", fs.Feature, fs.Score))
		}
	}
	return sec, true
}

// describe asks the model for a short section intro, falling back to canned
// prose when no commentary is available.
func (a *Agent) describe(ctx context.Context, id string) string {
	prompt := fmt.Sprintf(
		"Generate a concise, professional 3-4 sentence description of the %q step in a data analysis pipeline. Plain prose, no markdown.",
		title(id))
	if text := a.Ask(ctx, prompt, nil); text != "" {
		return cleanMarkup(text)
	}
	return fallbackDescriptions[id]
}

func title(id string) string {
	if t, ok := agentTitles[id]; ok {
		return t
	}
	return id
}

var (
	reHashes = regexp.MustCompile(`#+`)
	reBold   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic = regexp.MustCompile(`\*(.*?)\*`)
)

// cleanMarkup strips the markdown the model tends to emit despite being told
// not to.
func cleanMarkup(s string) string {
	s = reHashes.ReplaceAllString(s, "")
	s = reBold.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
