package conditions

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

const protocolICMP = 1

type icmpReachable struct {
	hosts   []string
	timeout time.Duration
}

// ICMPReachable gates on every host answering an ICMP echo request
// within the probe timeout. The probe uses an unprivileged datagram ICMP
// socket where the platform allows it; where it does not, Check reports
// a probe error naming the missing privilege instead of skipping
// silently.
func ICMPReachable(hosts ...string) (Condition, error) {
	return ICMPReachableWithin(DefaultProbeTimeout, hosts...)
}

// ICMPReachableWithin is ICMPReachable with an explicit echo timeout.
func ICMPReachableWithin(timeout time.Duration, hosts ...string) (Condition, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("at least one icmp target is required")
	}
	for _, host := range hosts {
		if host == "" {
			return nil, fmt.Errorf("empty icmp target")
		}
	}
	return icmpReachable{hosts: hosts, timeout: timeout}, nil
}

func (c icmpReachable) Check(ctx context.Context) (bool, string, error) {
	var silent []string
	for _, host := range c.hosts {
		replied, err := ping(ctx, host, c.timeout)
		if err != nil {
			return false, fmt.Sprintf("because icmp probe for %s failed: %v", host, err), err
		}
		if !replied {
			silent = append(silent, host)
		}
	}
	switch len(silent) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because ip %s not response", silent[0]), nil
	default:
		return false, fmt.Sprintf("because following ips not response: %s", strings.Join(silent, ", ")), nil
	}
}

// ping sends one echo request and waits for the matching reply. A
// timeout is a normal "no reply" result; a socket that cannot be opened
// is an error (typically a privilege problem).
func ping(ctx context.Context, host string, timeout time.Duration) (bool, error) {
	dst, err := net.ResolveIPAddr("ip4", host)
	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", host, err)
	}

	conn, err := icmp.ListenPacket("udp4", "0.0.0.0")
	if err != nil {
		return false, fmt.Errorf("open icmp socket (ping sockets may need privilege or a ping_group_range entry): %w", err)
	}
	defer conn.Close()

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   os.Getpid() & 0xffff,
			Seq:  1,
			Data: []byte("envgate-probe"),
		},
	}
	wire, err := msg.Marshal(nil)
	if err != nil {
		return false, fmt.Errorf("marshal echo request: %w", err)
	}
	if _, err := conn.WriteTo(wire, &net.UDPAddr{IP: dst.IP}); err != nil {
		return false, fmt.Errorf("send echo request to %s: %w", host, err)
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return false, fmt.Errorf("set read deadline: %w", err)
	}

	reply := make([]byte, 1500)
	for {
		n, _, err := conn.ReadFrom(reply)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return false, nil
			}
			return false, fmt.Errorf("read echo reply from %s: %w", host, err)
		}
		parsed, err := icmp.ParseMessage(protocolICMP, reply[:n])
		if err != nil {
			continue
		}
		if parsed.Type == ipv4.ICMPTypeEchoReply {
			return true, nil
		}
	}
}
