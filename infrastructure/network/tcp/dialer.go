package tcp

import (
	"context"
	"net"
	"time"
)

// Dial opens a TCP connection. A non-positive timeout means no dial
// timeout; a positive receiveBuffer sizes SO_RCVBUF where supported.
func Dial(ctx context.Context, address string, timeout time.Duration, receiveBuffer int) (*Connection, error) {
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: receiveBufferControl(receiveBuffer),
	}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	return NewConnection(conn), nil
}
