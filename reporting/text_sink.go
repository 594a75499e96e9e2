package reporting

import (
	"fmt"
	"io"

	"github.com/envgate/envgate/types"
)

// WriteText renders the classic test-runner report: one line per entry
// in registration order, then a tally line whose leading word matches
// the overall status.
//
//	running 3 tests
//	test db_roundtrip ... ok
//	test needs_root ... ignored, because this case should run with root
//	test flaky_probe ... FAILED, assertion failed
//
//	test result: failed. 1 passed; 1 failed; 1 ignored; finished in 0.42s
func WriteText(w io.Writer, s *Summary) error {
	if _, err := fmt.Fprintf(w, "running %d tests\n", s.Stats.Total); err != nil {
		return err
	}
	for _, res := range s.Results {
		if err := writeLine(w, res); err != nil {
			return err
		}
	}
	verdict := "ok"
	if s.Stats.Failed > 0 {
		verdict = "failed"
	}
	_, err := fmt.Fprintf(w, "\ntest result: %s. %d passed; %d failed; %d ignored; finished in %.2fs\n",
		verdict, s.Stats.Passed, s.Stats.Failed, s.Stats.Skipped, s.Duration.Seconds())
	return err
}

func writeLine(w io.Writer, res *types.TestResult) error {
	var err error
	switch res.Status {
	case types.TestStatusPass:
		_, err = fmt.Fprintf(w, "test %s ... ok\n", res.Metadata.Name)
	case types.TestStatusSkip:
		_, err = fmt.Fprintf(w, "test %s ... ignored, %s\n", res.Metadata.Name, res.Reason)
	default:
		if res.Error != "" {
			_, err = fmt.Fprintf(w, "test %s ... FAILED, %s\n", res.Metadata.Name, res.Error)
		} else {
			_, err = fmt.Fprintf(w, "test %s ... FAILED\n", res.Metadata.Name)
		}
	}
	return err
}
