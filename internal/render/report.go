package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/admariner/ga-extractor/internal/ga"
)

// ReportCSV renders raw report rows as a CSV matrix, one column per
// dimension name and metric expression in request order.
func ReportCSV(rows []ga.ReportRow, dimensions, metrics []string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := append(append([]string{}, dimensions...), metrics...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, row := range rows {
		if len(row.Dimensions) != len(dimensions) {
			return "", fmt.Errorf("row has %d dimension values, header has %d",
				len(row.Dimensions), len(dimensions))
		}
		if len(row.Metrics) == 0 || len(row.Metrics[0].Values) != len(metrics) {
			return "", fmt.Errorf("row for %q has mismatched metric values", row.Dimensions[0])
		}
		record := append(append([]string{}, row.Dimensions...), row.Metrics[0].Values...)
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ReportJSON renders raw report rows as indented JSON.
func ReportJSON(rows []ga.ReportRow) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}
