package handle

import (
	"weak"

	"timedread/application/network/connection"
)

type weakRef[T any, P interface {
	*T
	connection.Connection
}] struct {
	ptr weak.Pointer[T]
}

// Weak returns a Handle that resolves only while p is reachable from
// somewhere else. It is meant for connections whose ownership is plain
// reachability rather than an explicit Shared.
func Weak[T any, P interface {
	*T
	connection.Connection
}](p P) connection.Handle {
	return weakRef[T, P]{ptr: weak.Make((*T)(p))}
}

func (w weakRef[T, P]) Resolve() (connection.Connection, bool) {
	v := w.ptr.Value()
	if v == nil {
		return nil, false
	}
	return P(v), true
}
