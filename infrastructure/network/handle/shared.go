package handle

import (
	"errors"
	"io"
	"sync"

	"timedread/application/network/connection"
)

var ErrReleased = errors.New("connection already released")

// Shared is a reference-counted strong owner of a Connection. Readers and
// other non-owning collaborators get a Handle from Weak; once the last
// owner releases, those handles stop resolving and the connection is
// closed.
type Shared struct {
	mu   sync.Mutex
	conn connection.Connection
	refs int
}

// NewShared returns a Shared holding one reference on behalf of the caller.
func NewShared(conn connection.Connection) *Shared {
	return &Shared{conn: conn, refs: 1}
}

// Retain adds an owner. It fails once the connection has been released.
func (s *Shared) Retain() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		return ErrReleased
	}
	s.refs++
	return nil
}

// Release drops one owner. The last Release closes the connection if it
// implements io.Closer and returns the close error.
func (s *Shared) Release() error {
	s.mu.Lock()
	if s.refs == 0 {
		s.mu.Unlock()
		return ErrReleased
	}
	s.refs--
	if s.refs > 0 {
		s.mu.Unlock()
		return nil
	}
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if c, ok := conn.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Shared) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

// Weak returns a non-owning Handle. Resolving it never extends the
// connection's lifetime.
func (s *Shared) Weak() connection.Handle {
	return sharedRef{s: s}
}

type sharedRef struct {
	s *Shared
}

func (r sharedRef) Resolve() (connection.Connection, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.conn == nil {
		return nil, false
	}
	return r.s.conn, true
}
