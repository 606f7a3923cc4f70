package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
)

// Dial opens a websocket to url. A non-positive timeout means no dial
// timeout. readLimit bounds the size of a single message.
func Dial(ctx context.Context, url string, timeout time.Duration, readLimit int64) (*Connection, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	conn, resp, err := websocket.Dial(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	if readLimit > 0 {
		conn.SetReadLimit(readLimit)
	}
	return NewConnection(conn, url), nil
}
