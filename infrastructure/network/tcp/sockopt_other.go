//go:build !unix

package tcp

import "syscall"

func receiveBufferControl(int) func(network, address string, c syscall.RawConn) error {
	return nil
}
