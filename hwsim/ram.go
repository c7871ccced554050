// Package hwsim implements a cycle-level model of a transform engine:
// a coefficient RAM, a twiddle ROM, an array of butterfly lanes, and the
// controller that sequences them. The ntt package computes the same
// transforms in closed form; this package additionally models when each
// memory word changes and how many cycles an operation takes.
package hwsim

import "fmt"

// Port identifies one of the two RAM ports.
type Port int

const (
	// PortA is the load port.
	PortA Port = iota
	// PortB is the readback port.
	PortB
)

// String returns a string representation of the port.
func (p Port) String() string {
	switch p {
	case PortA:
		return "A"
	case PortB:
		return "B"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// AddressError reports an out-of-range RAM access.
// The access has no effect on the memory.
type AddressError struct {
	Port  Port
	Addr  int
	Depth int
}

// Error implements the [error] interface.
func (e *AddressError) Error() string {
	return fmt.Sprintf("hwsim: address %d out of range on port %v with depth %d", e.Addr, e.Port, e.Depth)
}

// RAM models the depth-N coefficient memory.
// Writes are visible to reads in the same cycle.
type RAM struct {
	words []uint64
}

// NewRAM creates a new RAM with the given depth.
func NewRAM(depth int) *RAM {
	return &RAM{
		words: make([]uint64, depth),
	}
}

// Depth returns the depth of the RAM.
func (r *RAM) Depth() int {
	return len(r.words)
}

// Read reads the word at addr through the given port.
func (r *RAM) Read(port Port, addr int) (uint64, error) {
	if addr < 0 || addr >= len(r.words) {
		return 0, &AddressError{Port: port, Addr: addr, Depth: len(r.words)}
	}
	return r.words[addr], nil
}

// Write writes v to addr through the given port.
func (r *RAM) Write(port Port, addr int, v uint64) error {
	if addr < 0 || addr >= len(r.words) {
		return &AddressError{Port: port, Addr: addr, Depth: len(r.words)}
	}
	r.words[addr] = v
	return nil
}
