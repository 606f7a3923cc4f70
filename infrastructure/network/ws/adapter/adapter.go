package adapter

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"timedread/application/network/connection"
	"timedread/infrastructure/network/ws/contracts"

	"github.com/coder/websocket"
)

var (
	_ connection.Connection = &Connection{}
	_ contracts.Conn        = &websocket.Conn{}
)

// Connection exposes the binary messages of a websocket as a byte stream.
//
// Bytes of a message that do not fit the caller's buffer are returned by
// the following reads. Text messages are dropped.
//
// coder/websocket closes the connection when a read context is cancelled,
// so after a cancelled ReadSome the Connection reports IsOpen() == false.
type Connection struct {
	conn contracts.Conn
	em   ErrorMapper
	name string

	rmu     sync.Mutex
	pending []byte

	open   atomic.Bool
	closeO sync.Once
	err    error
}

func NewConnection(conn contracts.Conn, name string) *Connection {
	c := &Connection{
		conn: conn,
		em:   DefaultErrorMapper{},
		name: name,
	}
	c.open.Store(true)
	return c
}

func (c *Connection) ReadSome(ctx context.Context, p []byte) (int, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	if len(p) == 0 {
		return 0, nil
	}

	for len(c.pending) == 0 {
		if !c.open.Load() {
			return 0, net.ErrClosed
		}
		mt, data, err := c.conn.Read(ctx)
		if err != nil {
			// Any read error is terminal for a coder/websocket conn.
			c.open.Store(false)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, ctxErr
			}
			return 0, c.em.Map(err)
		}
		if mt != websocket.MessageBinary {
			continue
		}
		c.pending = data
	}

	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *Connection) IsOpen() bool {
	return c.open.Load()
}

func (c *Connection) Close() error {
	c.closeO.Do(func() {
		c.open.Store(false)
		c.err = c.conn.Close(websocket.StatusNormalClosure, "")
	})
	return c.err
}

func (c *Connection) String() string {
	return c.name
}
