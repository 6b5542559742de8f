package kvstore

import "fmt"

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// StoreFactory is a function type that creates a new store instance.
// This is used to abstract the creation of the store from its consumers,
// most notably the shared test suite.
type StoreFactory func() IStore

// IStore is the minimal durable key-value contract the feature gate
// requires from its persistence backend. The gate uses a small number of
// well-known keys holding comma-joined feature sets.
//
// A backend must tolerate being entirely empty at startup (first boot):
// Get returns found=false and no error. Set must provide at-least-once
// durable write semantics for a single key; partial writes are not assumed
// atomic by the gate.
type IStore interface {
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found.
	Get(key string) (value string, found bool, err error)
	// Set inserts or updates a key-value pair durably.
	Set(key string, value string) (err error)
	// Close releases any resources held by the store.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCIOError:
		errorCode = "IOError"
	case RetCClosed:
		errorCode = "Closed"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("KVStoreError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                // 1: Operation failed due to an internal error.
	RetCIOError                      // 2: Operation failed due to an I/O error.
	RetCClosed                       // 3: Operation on a closed store.
)
