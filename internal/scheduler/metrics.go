package scheduler

import "github.com/me/cpusim/pkg/model"

// CalculateMetrics derives the aggregate statistics of a finished run. It does
// not modify records. A zero duration or an empty process set yields
// undefined (NaN) metrics.
func CalculateMetrics(records []*model.ProcessRecord, duration int) model.Metrics {
	n := len(records)
	if duration <= 0 || n == 0 {
		return model.UndefinedMetrics(duration, n)
	}

	var burst, waiting, response, completion, turnaround int
	var normalized float64
	for _, rec := range records {
		burst += rec.Burst
		waiting += rec.WaitingTime
		if rec.ResponseTime != nil {
			response += *rec.ResponseTime
		}
		if rec.CompletionTime != nil {
			completion += *rec.CompletionTime
			normalized += float64(*rec.CompletionTime) / float64(rec.Burst)
		}
		turnaround += rec.Turnaround()
	}

	d := float64(duration)
	count := float64(n)
	slices := model.BuildSlices(records, duration)
	switches := 0
	if len(slices) > 1 {
		switches = len(slices) - 1
	}

	return model.Metrics{
		Defined:                 true,
		Duration:                duration,
		ProcessCount:            n,
		CPUUsage:                float64(burst) / d,
		Throughput:              count / d,
		AvgWaitingTime:          float64(waiting) / count,
		AvgResponseTime:         float64(response) / count,
		AvgReturnTime:           float64(completion) / count,
		AvgNormalizedReturnTime: normalized / count,
		AvgTurnaround:           float64(turnaround) / count,
		ContextSwitches:         switches,
	}
}
