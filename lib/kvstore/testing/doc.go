// Package testing provides a shared test suite for kvstore.IStore
// implementations.
package testing
