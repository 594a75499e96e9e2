package conditions

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type httpReachable struct {
	urls    []string
	timeout time.Duration
}

// HTTPReachable gates on every target answering an HTTP request within
// the probe timeout. Targets are given without a scheme ("example.com"
// or "example.com/health"); any completed response gates true, whatever
// its status code. Malformed targets are a configuration error.
func HTTPReachable(targets ...string) (Condition, error) {
	return httpCondition("http", DefaultProbeTimeout, targets)
}

// HTTPSReachable is HTTPReachable over TLS: the probe must complete the
// TLS handshake as well as the connection.
func HTTPSReachable(targets ...string) (Condition, error) {
	return httpCondition("https", DefaultProbeTimeout, targets)
}

// HTTPReachableWithin is HTTPReachable with an explicit probe timeout.
func HTTPReachableWithin(timeout time.Duration, targets ...string) (Condition, error) {
	return httpCondition("http", timeout, targets)
}

// HTTPSReachableWithin is HTTPSReachable with an explicit probe timeout.
func HTTPSReachableWithin(timeout time.Duration, targets ...string) (Condition, error) {
	return httpCondition("https", timeout, targets)
}

func httpCondition(scheme string, timeout time.Duration, targets []string) (Condition, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("at least one %s target is required", scheme)
	}
	urls := make([]string, 0, len(targets))
	for _, target := range targets {
		if strings.Contains(target, "://") {
			return nil, fmt.Errorf("%s target %q must not carry a scheme", scheme, target)
		}
		u, err := url.Parse(scheme + "://" + target)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid %s target %q", scheme, target)
		}
		urls = append(urls, u.String())
	}
	return httpReachable{urls: urls, timeout: timeout}, nil
}

func (c httpReachable) Check(ctx context.Context) (bool, string, error) {
	client := &http.Client{Timeout: c.timeout}
	var unreachable []string
	for _, target := range c.urls {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return false, fmt.Sprintf("because fail to build request for %s", target), err
		}
		resp, err := client.Do(req)
		if err != nil {
			unreachable = append(unreachable, target)
			continue
		}
		resp.Body.Close()
	}
	switch len(unreachable) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because fail to access %s", unreachable[0]), nil
	default:
		return false, fmt.Sprintf("because following urls can not access: %s", strings.Join(unreachable, ", ")), nil
	}
}
