package probe

import (
	"fmt"
	"net/url"
)

type Scheme string

const (
	SchemeTCP Scheme = "tcp"
	SchemeWS  Scheme = "ws"
	SchemeWSS Scheme = "wss"
)

type Target struct {
	Scheme  Scheme
	Address string
	Raw     string
}

// ParseTarget accepts tcp://host:port, ws://… and wss://… targets.
func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("invalid target %q: %w", raw, err)
	}
	switch Scheme(u.Scheme) {
	case SchemeTCP:
		if u.Host == "" || u.Port() == "" {
			return Target{}, fmt.Errorf("invalid target %q: expected tcp://host:port", raw)
		}
		return Target{Scheme: SchemeTCP, Address: u.Host, Raw: raw}, nil
	case SchemeWS, SchemeWSS:
		if u.Host == "" {
			return Target{}, fmt.Errorf("invalid target %q: missing host", raw)
		}
		return Target{Scheme: Scheme(u.Scheme), Address: u.Host, Raw: raw}, nil
	default:
		return Target{}, fmt.Errorf("invalid target %q: unsupported scheme %q", raw, u.Scheme)
	}
}

func ParseTargets(raw []string) ([]Target, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no targets given")
	}
	targets := make([]Target, 0, len(raw))
	for _, r := range raw {
		t, err := ParseTarget(r)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (t Target) String() string {
	return t.Raw
}
