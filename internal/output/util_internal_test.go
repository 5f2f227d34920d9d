//go:build unit

package output

import (
	"testing"

	"github.com/rpgo/estate-calculator/internal/domain"
)

func TestIntToString(t *testing.T) {
	for in, want := range map[int]string{0: "0", 2054: "2054", -3: "-3"} {
		if got := intToString(in); got != want {
			t.Errorf("intToString(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestBoolToString(t *testing.T) {
	if got, want := boolToString(true), "true"; got != want {
		t.Errorf("boolToString(true) = %q, want %q", got, want)
	}
	if got, want := boolToString(false), "false"; got != want {
		t.Errorf("boolToString(false) = %q, want %q", got, want)
	}
}

func TestReportExtension(t *testing.T) {
	cases := map[string]string{
		"console":      "txt",
		"console-lite": "txt",
		"csv":          "csv",
		"detailed-csv": "timeline.csv",
		"html":         "html",
		"json":         "json",
	}
	for name, want := range cases {
		if got := reportExtension(name); got != want {
			t.Errorf("reportExtension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSummaryRowWidth(t *testing.T) {
	row := summaryRow(domain.ProjectionSummary{Name: "Baseline"}, "0.00", "0.00")
	if len(row) != 16 {
		t.Fatalf("summary row has %d columns, want 16", len(row))
	}
	if row[0] != "Baseline" || row[2] != "0.00" {
		t.Errorf("unexpected row: %v", row)
	}
}
