package contracts

import (
	"context"

	"github.com/coder/websocket"
)

// Conn abstracts the subset of github.com/coder/websocket.Conn used by
// adapter.Connection.
type Conn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Close(status websocket.StatusCode, reason string) error
}
