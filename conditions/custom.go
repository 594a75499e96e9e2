package conditions

import "context"

type ignoreIf struct {
	fn func() string
}

// IgnoreIf wraps an externally supplied check. The function returns a
// non-empty skip reason to gate the entry, or "" to let it proceed.
func IgnoreIf(fn func() string) Condition {
	return ignoreIf{fn: fn}
}

func (c ignoreIf) Check(_ context.Context) (bool, string, error) {
	if reason := c.fn(); reason != "" {
		return false, reason, nil
	}
	return true, "", nil
}
