package probe

import (
	"context"
	"fmt"
	"io"

	"timedread/application/network/connection"
	"timedread/infrastructure/network/tcp"
	"timedread/infrastructure/network/ws/adapter"
	"timedread/infrastructure/settings"
)

type Conn interface {
	connection.Connection
	io.Closer
}

type Dialer interface {
	Dial(ctx context.Context, target Target) (Conn, error)
}

type DefaultDialer struct {
	cfg settings.Configuration
}

func NewDefaultDialer(cfg settings.Configuration) *DefaultDialer {
	return &DefaultDialer{cfg: cfg}
}

func (d *DefaultDialer) Dial(ctx context.Context, target Target) (Conn, error) {
	timeout := d.cfg.DialTimeoutMs.Duration()
	switch target.Scheme {
	case SchemeTCP:
		conn, err := tcp.Dial(ctx, target.Address, timeout, d.cfg.Read.BufferSize)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case SchemeWS, SchemeWSS:
		conn, err := adapter.Dial(ctx, target.Raw, timeout, settings.MaxBufferSize)
		if err != nil {
			return nil, err
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported scheme %q", target.Scheme)
	}
}
