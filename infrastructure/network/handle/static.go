package handle

import "timedread/application/network/connection"

// Static is a Handle that always resolves to conn. A nil conn never
// resolves.
type Static struct {
	Conn connection.Connection
}

func (s Static) Resolve() (connection.Connection, bool) {
	if s.Conn == nil {
		return nil, false
	}
	return s.Conn, true
}
