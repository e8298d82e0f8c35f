package workload

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// parseYAML decodes {name, processes: [...]}. JSON is a subset of YAML, so the
// same decoder reads .json files.
func parseYAML(data []byte) (*Workload, error) {
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	return &w, nil
}

// WriteYAML encodes w as YAML.
func WriteYAML(out io.Writer, w *Workload) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(w); err != nil {
		return err
	}
	return enc.Close()
}
