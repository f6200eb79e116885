// Package allocator provides the capability abstraction that every
// container in this module consumes instead of allocating memory
// directly.
//
// An [Allocator] never exposes identity as a substitute for behavior:
// containers query [Allocator.Propagation] explicitly on copy-assign,
// move-assign, and swap, and only fall back to comparing two allocators
// with [Allocator.Equal] when the relevant propagation flag is off and a
// decision between "adopt the other side's storage" and "reconstruct
// element-wise" has to be made.
//
// [Std] is the default, stateless allocator backed by the Go runtime; it
// always compares equal to itself and never fails. [Checked] is a
// standalone test allocator that counts outstanding allocations, so tests can assert
// that a container never leaks storage across panics during growth,
// rehash, or emplace.
package allocator
