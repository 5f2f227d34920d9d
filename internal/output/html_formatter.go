package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"

	"github.com/rpgo/estate-calculator/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with a comparison chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"add":  func(i, j int) int { return i + j },
	"json": func(v any) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries feeds the inline chart script
type chartSeries struct {
	Labels []string  `json:"labels"`
	Tax    []float64 `json:"tax"`
	Heirs  []float64 `json:"heirs"`
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeScenarios(results)

	assumptions := results.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	all := projections(results)
	chart := chartSeries{}
	for _, p := range all {
		chart.Labels = append(chart.Labels, p.Name)
		chart.Tax = append(chart.Tax, p.TotalTax.InexactFloat64())
		chart.Heirs = append(chart.Heirs, p.HeirTax.NetAfterIncomeTax.InexactFloat64())
	}

	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
		Projections    []domain.ProjectionSummary
		Chart          chartSeries
	}{results, rec, assumptions, all, chart}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
