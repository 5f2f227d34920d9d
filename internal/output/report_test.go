package output_test

import (
	"path/filepath"
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/estate-calculator/internal/config"
	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/rpgo/estate-calculator/internal/output"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$123.45", output.FormatCurrency(stddec.NewFromFloat(123.45)))
	assert.Equal(t, "12.34%", output.FormatPercentage(stddec.NewFromFloat(12.34)))
}

func TestSaveConfigurationRoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, output.SaveConfiguration(cfg, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, len(cfg.Scenarios))
	assert.Equal(t, cfg.Scenarios[0].Name, loaded.Scenarios[0].Name)
	assert.Equal(t, cfg.Assumptions.StateCode, loaded.Assumptions.StateCode)
}

func TestReportGenerator_JSON_CSV(t *testing.T) {
	sc := &domain.ScenarioComparison{
		Baseline: domain.ProjectionSummary{Name: "Baseline", GrossEstate: stddec.NewFromInt(0)},
	}
	dir := t.TempDir()

	paths, err := output.GenerateReport(sc, "json", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, ".json", filepath.Ext(paths[0]))

	paths, err = output.GenerateReport(sc, "csv-summary", dir)
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(paths[0]))
}
