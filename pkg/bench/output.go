package bench

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultOutput is where the mean table is written when no path is given.
const DefaultOutput = "performances/complex_queries_performances_GDB.csv"

// WriteCSV writes the mean table with an operation,executionTime header,
// creating parent directories as needed.
func (r *Report) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"operation", "executionTime"}); err != nil {
		return err
	}
	for _, m := range r.Means {
		if err := w.Write([]string{m.Operation, strconv.FormatFloat(m.ExecutionTime, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// WriteMetrics writes the run's timing histograms in the Prometheus text
// format to path, for a node_exporter textfile collector.
func (r *Report) WriteMetrics(path string) error {
	if r.metrics == nil {
		return fmt.Errorf("report has no metrics")
	}
	return r.metrics.writeTextfile(path)
}

// MetricsPath is the textfile written next to a CSV output.
func MetricsPath(csvPath string) string {
	return csvPath + ".prom"
}
