package memstore

import (
	"github.com/ValentinKolb/dGate/lib/kvstore"
	"github.com/puzpuzpuz/xsync/v3"
)

type storeImpl struct {
	data *xsync.MapOf[string, string]
}

// NewMemStore creates a new in-memory store instance. Nothing is persisted
// across process restarts; this implementation serves tests and tooling
// that need first-boot semantics (every Get misses until a Set).
func NewMemStore() kvstore.IStore {
	return &storeImpl{
		data: xsync.NewMapOf[string, string](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see kvstore/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Get(key string) (string, bool, error) {
	value, found := s.data.Load(key)
	return value, found, nil
}

func (s *storeImpl) Set(key string, value string) error {
	s.data.Store(key, value)
	return nil
}

func (s *storeImpl) Close() error {
	return nil
}
