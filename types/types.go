// Package types contains shared types used across the envgate harness.
package types

import "time"

// TestStatus represents the terminal states of a test entry.
type TestStatus string

const (
	TestStatusPass TestStatus = "pass"
	TestStatusFail TestStatus = "fail"
	TestStatusSkip TestStatus = "skip"
)

// EntryState tracks an entry through its lifecycle. Registered is the
// initial state; Ignored, Passed and Failed are terminal.
type EntryState int

const (
	EntryRegistered EntryState = iota
	EntryEvaluating
	EntryRunning
	EntryIgnored
	EntryPassed
	EntryFailed
)

func (s EntryState) String() string {
	switch s {
	case EntryRegistered:
		return "registered"
	case EntryEvaluating:
		return "evaluating"
	case EntryRunning:
		return "running"
	case EntryIgnored:
		return "ignored"
	case EntryPassed:
		return "passed"
	case EntryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EntryMetadata identifies a registered test entry.
type EntryMetadata struct {
	Name  string
	Group string
	Lock  string
}

// TestResult captures the outcome of a single test entry. Exactly one
// TestResult is produced per registered entry and it is never mutated
// after the runner records it.
type TestResult struct {
	Metadata EntryMetadata
	Status   TestStatus
	// Reason carries the skip reason for TestStatusSkip.
	Reason string
	// Error carries the failure message for TestStatusFail.
	Error    string
	Duration time.Duration
}

// RunStats tracks counters for a whole run. Total is always the sum of
// the other three.
type RunStats struct {
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
}

// Record folds one result into the counters.
func (s *RunStats) Record(status TestStatus) {
	s.Total++
	switch status {
	case TestStatusPass:
		s.Passed++
	case TestStatusFail:
		s.Failed++
	case TestStatusSkip:
		s.Skipped++
	}
}
