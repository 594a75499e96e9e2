package reporting

import (
	"encoding/json"
	"io"

	"github.com/envgate/envgate/types"
)

// jsonReport is the machine-readable rendering of a Summary.
type jsonReport struct {
	RunID      string        `json:"run_id"`
	Status     string        `json:"status"`
	Total      int           `json:"total"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Ignored    int           `json:"ignored"`
	DurationMs int64         `json:"duration_ms"`
	Checks     []jsonOutcome `json:"checks"`
}

type jsonOutcome struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// WriteJSON renders the structured form of the same Summary the text
// sink consumes, one record per entry in registration order.
func WriteJSON(w io.Writer, s *Summary) error {
	report := jsonReport{
		RunID:      s.RunID,
		Status:     string(s.Status),
		Total:      s.Stats.Total,
		Passed:     s.Stats.Passed,
		Failed:     s.Stats.Failed,
		Ignored:    s.Stats.Skipped,
		DurationMs: s.Duration.Milliseconds(),
		Checks:     make([]jsonOutcome, 0, len(s.Results)),
	}
	for _, res := range s.Results {
		outcome := jsonOutcome{
			Name:       res.Metadata.Name,
			Status:     string(res.Status),
			DurationMs: res.Duration.Milliseconds(),
		}
		if res.Status == types.TestStatusSkip {
			outcome.Reason = res.Reason
		}
		if res.Status == types.TestStatusFail {
			outcome.Error = res.Error
		}
		report.Checks = append(report.Checks, outcome)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
