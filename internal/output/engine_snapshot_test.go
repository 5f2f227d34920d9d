package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/rpgo/estate-calculator/internal/calculation"
	"github.com/rpgo/estate-calculator/internal/config"
)

// TestEngineSnapshot produces a deterministic snapshot of core projection metrics.
func TestEngineSnapshot(t *testing.T) {
	calculation.SetNowFunc(func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(filepath.Join("testdata", "estate_config.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	eng := calculation.NewCalculationEngine()
	res, err := eng.RunScenarios(t.Context(), cfg)
	if err != nil {
		t.Fatalf("run scenarios: %v", err)
	}

	// Trim to stable summary fields only
	type projection struct {
		Name       string `json:"name"`
		Gross      string `json:"gross_estate"`
		TotalTax   string `json:"total_tax"`
		NetToHeirs string `json:"net_to_heirs"`
	}
	var out []projection
	for _, p := range projections(res) {
		out = append(out, projection{
			Name:       p.Name,
			Gross:      p.GrossEstate.StringFixed(2),
			TotalTax:   p.TotalTax.StringFixed(2),
			NetToHeirs: p.NetToHeirs.StringFixed(2),
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	goldenPath := filepath.Join("testdata", "engine_snapshot.golden.json")
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if string(golden) != string(data) {
		t.Fatalf("engine snapshot drift; run UPDATE_GOLDEN=1 to accept\n--- have ---\n%s\n--- want ---\n%s", string(data), string(golden))
	}
}
