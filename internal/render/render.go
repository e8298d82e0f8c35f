// Package render formats simulation results for terminals.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/me/cpusim/pkg/model"
)

// Symbol returns the grid glyph for s: E running, . ready, F finished, blank
// before arrival.
func Symbol(s model.State) string {
	switch s {
	case model.StateRunning:
		return "E"
	case model.StateReady:
		return "."
	case model.StateFinished:
		return "F"
	}
	return " "
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

// Title writes a boxed heading.
func Title(w io.Writer, title string) {
	bar := strings.Repeat("-", len(title)+4)
	fmt.Fprintf(w, "%s\n  %s\n%s\n", bar, title, bar)
}

// ruler labels every fifth tick that fits in a duration-wide column.
func ruler(duration int) string {
	b := []byte(strings.Repeat(" ", duration))
	for t := 0; t < duration; t += 5 {
		label := strconv.Itoa(t)
		if t+len(label) > duration {
			break
		}
		copy(b[t:], label)
	}
	return string(b)
}

// timelineRows returns one row per process: its name and one glyph per tick.
func timelineRows(res *model.Result) [][]string {
	rows := make([][]string, 0, len(res.Records))
	for _, rec := range res.Records {
		var sb strings.Builder
		for t := 0; t < res.Duration; t++ {
			sb.WriteString(Symbol(rec.Lifecycle.At(t)))
		}
		rows = append(rows, []string{rec.Name, sb.String()})
	}
	return rows
}

// Timeline writes the process-by-tick grid, one character per tick.
func Timeline(w io.Writer, res *model.Result) {
	table := newTable(w)
	table.SetHeader([]string{"Process", ruler(res.Duration)})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	table.AppendBulk(timelineRows(res))
	table.Render()
}

// gantt returns the bar and the tick marks under it.
func gantt(slices []model.Slice) (bar, marks string) {
	if len(slices) == 0 {
		return "", ""
	}
	var b, m strings.Builder
	b.WriteString("|")
	m.WriteString(strconv.Itoa(slices[0].Start))
	prevEnd := slices[0].Start
	for _, s := range slices {
		if s.Start > prevEnd {
			cell := padCell("idle", s.Start-prevEnd)
			b.WriteString(cell + "|")
			m.WriteString(markAfter(cell, s.Start))
		}
		cell := padCell(s.Process, s.End-s.Start)
		b.WriteString(cell + "|")
		m.WriteString(markAfter(cell, s.End))
		prevEnd = s.End
	}
	return b.String(), m.String()
}

func padCell(label string, ticks int) string {
	width := max(ticks*2, len(label)+2)
	left := (width - len(label)) / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", width-left-len(label))
}

// markAfter right-aligns tick under the separator that closes cell.
func markAfter(cell string, tick int) string {
	s := strconv.Itoa(tick)
	return fmt.Sprintf("%*s", len(cell)+1, s)
}

// Gantt writes the execution slices as a bar with tick marks.
func Gantt(w io.Writer, res *model.Result) {
	bar, marks := gantt(res.Slices())
	if bar == "" {
		fmt.Fprintln(w, "(no execution)")
		return
	}
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w, marks)
}

func optional(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "undefined"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func processRows(res *model.Result) [][]string {
	rows := make([][]string, 0, len(res.Records))
	for _, rec := range res.Records {
		rows = append(rows, []string{
			rec.Name,
			strconv.Itoa(rec.Arrival),
			strconv.Itoa(rec.Burst),
			strconv.Itoa(rec.Priority),
			optional(rec.ResponseTime),
			strconv.Itoa(rec.WaitingTime),
			optional(rec.CompletionTime),
			strconv.Itoa(rec.Turnaround()),
		})
	}
	return rows
}

// Processes writes one row per process with averages in the footer.
func Processes(w io.Writer, res *model.Result) {
	m := res.Metrics
	table := newTable(w)
	table.SetHeader([]string{"Process", "Arrival", "Burst", "Priority", "Response", "Waiting", "Completion", "Turnaround"})
	table.AppendBulk(processRows(res))
	table.SetFooter([]string{"Average", "", "", "",
		formatFloat(m.AvgResponseTime),
		formatFloat(m.AvgWaitingTime),
		formatFloat(m.AvgReturnTime),
		formatFloat(m.AvgTurnaround),
	})
	table.Render()
}

func metricRows(m model.Metrics) [][]string {
	usage := "undefined"
	if m.Defined {
		usage = strconv.FormatFloat(m.CPUUsage*100, 'f', 2, 64) + "%"
	}
	return [][]string{
		{"Duration", strconv.Itoa(m.Duration)},
		{"Processes", strconv.Itoa(m.ProcessCount)},
		{"CPU usage", usage},
		{"Throughput", formatFloat(m.Throughput)},
		{"Avg waiting time", formatFloat(m.AvgWaitingTime)},
		{"Avg response time", formatFloat(m.AvgResponseTime)},
		{"Avg return time", formatFloat(m.AvgReturnTime)},
		{"Avg normalized return time", formatFloat(m.AvgNormalizedReturnTime)},
		{"Avg turnaround", formatFloat(m.AvgTurnaround)},
		{"Context switches", strconv.Itoa(m.ContextSwitches)},
	}
}

// Metrics writes the labeled metrics report.
func Metrics(w io.Writer, res *model.Result) {
	table := newTable(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk(metricRows(res.Metrics))
	table.Render()
}

func comparisonRows(results []*model.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		m := res.Metrics
		rows = append(rows, []string{
			res.Config.Label(),
			strconv.Itoa(res.Duration),
			formatFloat(m.AvgWaitingTime),
			formatFloat(m.AvgResponseTime),
			formatFloat(m.AvgTurnaround),
			formatFloat(m.AvgNormalizedReturnTime),
			formatFloat(m.Throughput),
			strconv.Itoa(m.ContextSwitches),
		})
	}
	return rows
}

// Comparison writes one row per algorithm. nil results are skipped.
func Comparison(w io.Writer, results []*model.Result) {
	table := newTable(w)
	table.SetHeader([]string{"Algorithm", "Duration", "Avg wait", "Avg response", "Avg turnaround", "Avg norm. return", "Throughput", "Switches"})
	table.AppendBulk(comparisonRows(results))
	table.Render()
}

// Report writes the full result: title, grid, Gantt bar, process table and
// metrics.
func Report(w io.Writer, name string, res *model.Result) {
	title := res.Config.Label()
	if name != "" {
		title = name + " - " + title
	}
	Title(w, title)
	fmt.Fprintln(w)
	Timeline(w, res)
	fmt.Fprintln(w)
	Gantt(w, res)
	fmt.Fprintln(w)
	Processes(w, res)
	fmt.Fprintln(w)
	Metrics(w, res)
}

func historyRows(runs []*model.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		wait, duration := "-", "-"
		if run.Result != nil {
			wait = formatFloat(run.Result.Metrics.AvgWaitingTime)
			duration = strconv.Itoa(run.Result.Duration)
		}
		rows = append(rows, []string{
			run.ID,
			run.Name,
			run.Config.Label(),
			strconv.Itoa(len(run.Processes)),
			duration,
			wait,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows
}

// History writes one row per stored run.
func History(w io.Writer, runs []*model.Run) {
	table := newTable(w)
	table.SetHeader([]string{"ID", "Name", "Algorithm", "Processes", "Duration", "Avg wait", "Created"})
	table.AppendBulk(historyRows(runs))
	table.Render()
}
