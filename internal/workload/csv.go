package workload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/me/cpusim/pkg/model"
)

// delimiters in detection order; ';' is the historic default.
var delimiters = []rune{';', ',', '\t'}

// detectDelimiter returns the first candidate found on the first data line.
func detectDelimiter(data []byte) rune {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, d := range delimiters {
			if strings.ContainsRune(line, d) {
				return d
			}
		}
		break
	}
	return delimiters[0]
}

func isHeader(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	arrival := strings.TrimSpace(fields[1])
	if _, err := strconv.Atoi(arrival); err == nil {
		return false
	}
	switch strings.ToLower(arrival) {
	case "arrival", "arrival_time", "arrive_time":
		return true
	}
	return false
}

// parseCSV reads rows of name;arrival;burst[;priority].
func parseCSV(data []byte) (*Workload, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	w := &Workload{}
	for row := 0; ; row++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if row == 0 && isHeader(fields) {
			continue
		}
		line, _ := r.FieldPos(0)
		p, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		w.Processes = append(w.Processes, p)
	}
	return w, nil
}

func parseRow(fields []string) (model.Process, error) {
	for len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) < 3 || len(fields) > 4 {
		return model.Process{}, fmt.Errorf("expected 3 or 4 fields (name, arrival, burst[, priority]), got %d", len(fields))
	}
	p := model.Process{Name: strings.TrimSpace(fields[0])}
	ints := []struct {
		field string
		dst   *int
	}{
		{"arrival", &p.Arrival},
		{"burst", &p.Burst},
		{"priority", &p.Priority},
	}
	for i, f := range ints {
		if 1+i >= len(fields) {
			break
		}
		v, err := strconv.Atoi(strings.TrimSpace(fields[1+i]))
		if err != nil {
			return model.Process{}, fmt.Errorf("%s %q is not an integer", f.field, fields[1+i])
		}
		*f.dst = v
	}
	return p, nil
}

// WriteCSV writes processes as ';'-delimited rows with a header.
func WriteCSV(out io.Writer, processes []model.Process) error {
	cw := csv.NewWriter(out)
	cw.Comma = ';'
	if err := cw.Write([]string{"name", "arrival", "burst", "priority"}); err != nil {
		return err
	}
	for _, p := range processes {
		row := []string{p.Name, strconv.Itoa(p.Arrival), strconv.Itoa(p.Burst), strconv.Itoa(p.Priority)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
