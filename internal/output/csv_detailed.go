package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/estate-calculator/internal/domain"
)

// CSVDetailedExporter writes the year-by-year estate timeline of every projection.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Age", "EstateValue", "GrossEstate", "FederalExemption", "EstimatedTax", "IsYearOfDeath"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range projections(results) {
		for _, yr := range p.Timeline {
			row := []string{
				p.Name,
				intToString(yr.Year),
				intToString(yr.Age),
				yr.EstateValue.StringFixed(2),
				yr.GrossEstate.StringFixed(2),
				yr.FederalExemption.StringFixed(2),
				yr.EstimatedTax.StringFixed(2),
				boolToString(yr.IsYearOfDeath),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
