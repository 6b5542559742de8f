package fstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/ValentinKolb/dGate/lib/kvstore"
)

type storeImpl struct {
	dir    string
	closed atomic.Bool
}

// NewFileStore creates a file-backed store rooted at dir. Each key is kept
// in its own file; writes go through a temp file and rename so that a crash
// mid-write leaves the previous value intact. The directory is created if
// it does not exist, which gives a fresh node first-boot semantics.
func NewFileStore(dir string) (kvstore.IStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, kvstore.NewError(kvstore.RetCIOError, fmt.Sprintf("create store dir: %v", err))
	}
	return &storeImpl{dir: dir}, nil
}

// keyPath maps a key to its backing file. Keys are well-known identifiers
// chosen by the gate, not arbitrary user input.
func (s *storeImpl) keyPath(key string) string {
	return filepath.Join(s.dir, key)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see kvstore/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Get(key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, kvstore.NewError(kvstore.RetCClosed, "store is closed")
	}

	data, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, kvstore.NewError(kvstore.RetCIOError, fmt.Sprintf("read key %s: %v", key, err))
	}
	return string(data), true, nil
}

func (s *storeImpl) Set(key string, value string) error {
	if s.closed.Load() {
		return kvstore.NewError(kvstore.RetCClosed, "store is closed")
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return kvstore.NewError(kvstore.RetCIOError, fmt.Sprintf("create temp file for key %s: %v", key, err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return kvstore.NewError(kvstore.RetCIOError, fmt.Sprintf("write key %s: %v", key, err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return kvstore.NewError(kvstore.RetCIOError, fmt.Sprintf("sync key %s: %v", key, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return kvstore.NewError(kvstore.RetCIOError, fmt.Sprintf("close temp file for key %s: %v", key, err))
	}

	if err := os.Rename(tmpName, s.keyPath(key)); err != nil {
		os.Remove(tmpName)
		return kvstore.NewError(kvstore.RetCIOError, fmt.Sprintf("rename key %s: %v", key, err))
	}
	return nil
}

func (s *storeImpl) Close() error {
	s.closed.Store(true)
	return nil
}
