// io_ports.go - I/O port capability interface for the 8080 core

package main

import (
	"errors"
	"fmt"
)

var ErrUnmappedPort = errors.New("io port not implemented")

// IOPort models the 8080's 256-port I/O space. The CPU core calls In for
// the IN instruction and Out for OUT; implementations decide which ports
// exist.
type IOPort interface {
	In(port byte) (byte, error)
	Out(port byte, value byte) error
}

// NotImplementedIO faults on any port access. Useful for programs that must
// never touch I/O.
type NotImplementedIO struct{}

func (NotImplementedIO) In(port byte) (byte, error) {
	return 0, fmt.Errorf("%w: read from port %d", ErrUnmappedPort, port)
}

func (NotImplementedIO) Out(port byte, value byte) error {
	return fmt.Errorf("%w: write to port %d", ErrUnmappedPort, port)
}

// EmptyIO reads zero and swallows writes. The diagnostic harness wires the
// CPU to this.
type EmptyIO struct{}

func (EmptyIO) In(port byte) (byte, error) { return 0, nil }

func (EmptyIO) Out(port byte, value byte) error { return nil }
