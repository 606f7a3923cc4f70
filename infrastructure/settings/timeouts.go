package settings

import "time"

// ReadTimeoutMs is the longest a single read may stay idle.
type ReadTimeoutMs int

func (r ReadTimeoutMs) Int() int {
	return int(r)
}

func (r ReadTimeoutMs) Duration() time.Duration {
	return time.Duration(r) * time.Millisecond
}

type DialTimeoutMs int

func (d DialTimeoutMs) Int() int {
	return int(d)
}

func (d DialTimeoutMs) Duration() time.Duration {
	return time.Duration(d) * time.Millisecond
}
