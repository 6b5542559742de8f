// Package kvstore defines the minimal durable key-value contract the
// feature gate requires from its persistence backend, along with a unified
// error type for all implementations.
//
// The gate stores comma-joined feature sets under a small number of
// well-known keys: the set of features ever durably enabled on this node,
// and the last persisted supported-feature set. A backend only needs
// single-key get/set with at-least-once durable write semantics; it must
// tolerate being entirely empty at startup (first boot).
//
// Implementations:
//
//   - In-Memory Store (memstore): keeps values in a concurrent map, nothing
//     survives a restart. Used by tests and tooling.
//     Available in the "github.com/ValentinKolb/dGate/lib/kvstore/memstore" package.
//
//   - File Store (fstore): one file per key under a data directory, writes
//     via temp file and rename. The default backend for a real node.
//     Available in the "github.com/ValentinKolb/dGate/lib/kvstore/fstore" package.
//
// The "testing" subpackage provides a shared test suite that every
// implementation runs against.
package kvstore
