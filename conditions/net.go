package conditions

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// defaultTCPPort is appended to targets given without a port.
const defaultTCPPort = "80"

type tcpReachable struct {
	addrs   []string
	timeout time.Duration
}

// TCPReachable gates on a TCP connect succeeding to every host[:port]
// target within the probe timeout. A target without a port defaults to
// port 80.
func TCPReachable(addrs ...string) (Condition, error) {
	return TCPReachableWithin(DefaultProbeTimeout, addrs...)
}

// TCPReachableWithin is TCPReachable with an explicit connect timeout.
func TCPReachableWithin(timeout time.Duration, addrs ...string) (Condition, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("at least one tcp target is required")
	}
	normalized := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr == "" {
			return nil, fmt.Errorf("empty tcp target")
		}
		if _, _, err := net.SplitHostPort(addr); err != nil {
			addr = net.JoinHostPort(addr, defaultTCPPort)
			if _, _, err := net.SplitHostPort(addr); err != nil {
				return nil, fmt.Errorf("invalid tcp target %q: %w", addr, err)
			}
		}
		normalized = append(normalized, addr)
	}
	return tcpReachable{addrs: normalized, timeout: timeout}, nil
}

func (c tcpReachable) Check(ctx context.Context) (bool, string, error) {
	dialer := &net.Dialer{Timeout: c.timeout}
	var unreachable []string
	for _, addr := range c.addrs {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			unreachable = append(unreachable, addr)
			continue
		}
		conn.Close()
	}
	switch len(unreachable) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because fail to connect socket %s", unreachable[0]), nil
	default:
		return false, fmt.Sprintf("because following sockets can not connect: %s", strings.Join(unreachable, ", ")), nil
	}
}
