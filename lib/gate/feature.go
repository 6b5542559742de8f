package gate

import (
	"sync/atomic"

	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("gate")

// --------------------------------------------------------------------------
// Feature
// --------------------------------------------------------------------------

// Feature is a single named, boolean, monotonic capability flag. Once
// enabled it stays enabled for the lifetime of the process.
//
// A Feature is owned by the subsystem that embeds it (typically as a field
// of a long-lived service object). It holds a non-owning back-reference to
// its Service for registration; the Service must outlive the Feature.
type Feature struct {
	service     *Service
	name        string
	enabled     atomic.Bool
	subscribers []func()
}

// NewFeature creates a feature bound to the given service and registers it
// under the given name. Registering two features under the same name is a
// programming error and panics: two subsystems claiming the same capability
// identity would corrupt enablement semantics for one of them.
func NewFeature(service *Service, name string) *Feature {
	f := &Feature{
		service: service,
		name:    name,
	}
	service.register(f)
	return f
}

// Name returns the stable identity of the feature. It is used as the
// registry key and as the wire/storage representation.
func (f *Feature) Name() string {
	return f.name
}

// IsEnabled reports whether the feature has been enabled. It never blocks
// and is safe to call from any goroutine, including hot paths.
func (f *Feature) IsEnabled() bool {
	return f.enabled.Load()
}

// Subscribe attaches fn to be invoked exactly once when the feature
// transitions to enabled. Subscribers are invoked synchronously in
// registration order. A subscriber attached after the transition is never
// invoked; there is no historical replay.
//
// Subscriptions must be established before any possible Enable call;
// the feature does not serialize Subscribe against Enable.
func (f *Feature) Subscribe(fn func()) {
	f.subscribers = append(f.subscribers, fn)
}

// Enable flips the feature to enabled and notifies subscribers. Calling
// Enable on an already enabled feature is a no-op: no duplicate
// notification is delivered.
//
// Enable does not persist anything. Durable enablement goes through
// Service.Enable, which writes the enablement record before flipping the
// in-memory flag.
func (f *Feature) Enable() {
	if f.enabled.CompareAndSwap(false, true) {
		log.Infof("feature %s is enabled", f.name)
		for _, fn := range f.subscribers {
			fn()
		}
	}
}

// Close unregisters the feature from its service. It is safe to call more
// than once. The owning subsystem calls Close during teardown, before the
// service itself is stopped.
func (f *Feature) Close() {
	if f.service != nil {
		f.service.unregister(f)
		f.service = nil
	}
}
