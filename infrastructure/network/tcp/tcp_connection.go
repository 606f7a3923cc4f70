package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"timedread/application/network/connection"
)

var (
	_ connection.Connection = &Connection{}
	_ io.Closer             = &Connection{}
)

// aLongTimeAgo is a read deadline that has already passed. Setting it
// unblocks an in-flight Read without closing the socket.
var aLongTimeAgo = time.Unix(1, 0)

// Connection adapts a net.Conn to connection.Connection.
//
// A cancelled ReadSome aborts only the read in progress: the socket stays
// open and the read deadline is cleared before ReadSome returns. Peer EOF
// and Close mark the connection as not open.
type Connection struct {
	conn   net.Conn
	open   atomic.Bool
	closeO sync.Once
	err    error
}

func NewConnection(conn net.Conn) *Connection {
	c := &Connection{conn: conn}
	c.open.Store(true)
	return c
}

func (c *Connection) ReadSome(ctx context.Context, p []byte) (int, error) {
	if !c.open.Load() {
		return 0, net.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	poked := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(aLongTimeAgo)
		close(poked)
	})

	n, err := c.conn.Read(p)

	if !stop() {
		// ctx fired; wait for the deadline poke to land before clearing it.
		<-poked
		_ = c.conn.SetReadDeadline(time.Time{})
		if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
			err = ctx.Err()
		}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		c.open.Store(false)
	}
	return n, err
}

func (c *Connection) IsOpen() bool {
	return c.open.Load()
}

// Close closes the socket. It is safe to call multiple times.
func (c *Connection) Close() error {
	c.closeO.Do(func() {
		c.open.Store(false)
		c.err = c.conn.Close()
	})
	return c.err
}

func (c *Connection) String() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return "tcp://" + addr.String()
	}
	return "tcp://unknown"
}
