// Package workload loads, validates, generates and writes process workloads.
package workload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/pkg/model"
)

// Workload is a named, ordered list of processes. Order matters: it is the
// final tie-break key of every scheduling policy.
type Workload struct {
	Name      string          `json:"name,omitempty" yaml:"name,omitempty"`
	Processes []model.Process `json:"processes" yaml:"processes"`
}

// Format identifies an on-disk workload encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml" // also reads JSON
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unrecognized workload extension %q (want .csv, .txt, .yaml, .yml or .json)", filepath.Ext(path))
}

// ParseFormat accepts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml", "json":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown workload format %q (want csv or yaml)", s)
}

// Loader reads workload files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logging.OrDiscard(logger).With("component", "workload")}
}

// LoadFile reads and validates the workload at path. Workloads without a name
// are named after the file.
func (l *Loader) LoadFile(path string) (*Workload, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	w, err := l.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if w.Name == "" {
		w.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	l.logger.Debug("workload loaded", "path", path, "name", w.Name, "processes", len(w.Processes))
	return w, nil
}

// Parse decodes and validates data in the given format.
func (l *Loader) Parse(data []byte, format Format) (*Workload, error) {
	var (
		w   *Workload
		err error
	)
	switch format {
	case FormatCSV:
		w, err = parseCSV(data)
	case FormatYAML:
		w, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("unknown workload format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(w.Processes); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate rejects processes with an empty or duplicate name, a negative
// arrival or a non-positive burst. Every problem is reported.
func Validate(processes []model.Process) error {
	return model.ValidateProcesses(processes)
}

// TotalBurst returns the CPU ticks the workload needs.
func (w *Workload) TotalBurst() int {
	total := 0
	for _, p := range w.Processes {
		total += p.Burst
	}
	return total
}
