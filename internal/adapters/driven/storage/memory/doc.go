// Package memory provides in-memory implementations of driven ports.
// They back the "memory" storage backend and are used as fakes in tests.
package memory
