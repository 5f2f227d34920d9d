package output

import (
	"fmt"
	"os"

	"github.com/rpgo/estate-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes results in the named format to a timestamped file in dir and
// returns the written paths. "all" writes the verbose console report, the summary CSV,
// the timeline CSV and the JSON document.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range []string{"console", "csv", "detailed-csv", "json"} {
			f := GetFormatterByName(name)
			path, err := WriteFormatted(f, results, dir, reportExtension(name))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f, err := LookupFormatter(format)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormatted(f, results, dir, reportExtension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// reportExtension keeps the two CSV reports from colliding when written in the same second
func reportExtension(name string) string {
	if name == "detailed-csv" {
		return "timeline.csv"
	}
	return FileExtension(name)
}

// SaveConfiguration writes a configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0o644)
}
