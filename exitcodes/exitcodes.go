// Package exitcodes defines the standard exit codes used by envgate.
package exitcodes

// Exit code constants used by the envgate binary:
//
// * Success (0): every entry passed or was ignored
// * TestFailure (1): one or more entries failed
// * RuntimeErr (2): configuration errors, panics, or other faults that
//   prevented the run from completing
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
