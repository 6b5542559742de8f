package gate

import (
	"fmt"
	"sync/atomic"

	"github.com/ValentinKolb/dGate/lib/kvstore"
	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Constants and Metrics
// --------------------------------------------------------------------------

const (
	// enabledFeaturesKey stores the comma-joined set of feature names that
	// were ever durably enabled on this node.
	enabledFeaturesKey = "enabled_features"

	// supportedFeaturesKey stores the last persisted supported-feature set,
	// updated whenever a feature is unmasked via Support.
	supportedFeaturesKey = "supported_features"
)

var (
	persistErrorsTotal = metrics.NewCounter("dgate_persist_errors_total")
)

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// Config holds the initial feature sets derived from the node's startup
// configuration (see the lib/config package for the translation rules).
// It is consumed once by New.
type Config struct {
	// DisabledFeatures are excluded from the known set regardless of
	// registry membership. Administrative or compatibility override.
	DisabledFeatures Set

	// MaskedFeatures are known and supported locally but withheld from
	// cluster advertisement until explicitly unmasked via Support.
	MaskedFeatures Set
}

// --------------------------------------------------------------------------
// Service
// --------------------------------------------------------------------------

// Service is the per-node feature negotiation gate. It indexes the live
// Feature instances by name, computes the known and supported feature sets
// advertised to the cluster, and drives durable, idempotent enablement when
// the external agreement driver reports cluster-wide support.
//
// Lifecycle: construct the Service before any Feature, stop it after every
// Feature has been closed. Exactly one logical thread of control drives
// Enable/EnableSet/Support; reads are safe from any goroutine.
type Service struct {
	registry *xsync.MapOf[string, *Feature]
	masked   *xsync.MapOf[string, struct{}]
	disabled Set

	// everEnabled is the persisted enablement record loaded at startup.
	// Features registering under one of these names are re-enabled
	// immediately, without waiting for a fresh cluster-agreement round.
	everEnabled Set

	store   kvstore.IStore
	stopped atomic.Bool
}

// New creates a feature gate service with the given initial configuration.
//
// The store remembers which features were once enabled so that a restarted
// node does not forget an irreversible enablement. It may be nil, in which
// case enablement is not durable (useful for tests and tooling). On first
// boot the store has no record and the gate initializes as if no feature
// had ever been enabled.
func New(cfg Config, store kvstore.IStore) (*Service, error) {
	masked := xsync.NewMapOf[string, struct{}]()
	for name := range cfg.MaskedFeatures {
		masked.Store(name, struct{}{})
	}

	disabled := cfg.DisabledFeatures
	if disabled == nil {
		disabled = NewSet()
	}

	everEnabled := NewSet()
	if store != nil {
		raw, found, err := store.Get(enabledFeaturesKey)
		if err != nil {
			return nil, fmt.Errorf("load persisted enabled features: %w", err)
		}
		if found {
			everEnabled = ToFeatureSet(raw)
		}
	}

	return &Service{
		registry:    xsync.NewMapOf[string, *Feature](),
		masked:      masked,
		disabled:    disabled.Clone(),
		everEnabled: everEnabled,
		store:       store,
	}, nil
}

// Stop releases the resources held for persistence operations. It must be
// called after all features have been closed, since closing a feature
// unregisters it from this service. Stop is idempotent.
func (s *Service) Stop() error {
	if !s.stopped.CompareAndSwap(false, true) {
		return nil
	}
	log.Infof("feature gate service stopped")
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// register inserts the feature into the registry, panicking on a name
// collision. A feature whose name is in the persisted enablement record is
// enabled on the spot: the durable record already exists, so no new
// persistence write is needed.
func (s *Service) register(f *Feature) {
	if _, loaded := s.registry.LoadOrStore(f.name, f); loaded {
		panic(fmt.Sprintf("gate: duplicate feature registration: %s", f.name))
	}
	if s.everEnabled.Contains(f.name) {
		f.Enable()
	}
}

// unregister removes the feature from the registry. Unregistering an
// absent name is a no-op, which keeps teardown ordering flexible.
func (s *Service) unregister(f *Feature) {
	s.registry.Delete(f.name)
}

// RegisteredFeatures returns a read-only snapshot of the live registry,
// mapping each registered name to its feature. It is meant for diagnostics
// and external drivers; callers must not mutate the features' lifecycle.
func (s *Service) RegisteredFeatures() map[string]*Feature {
	snapshot := make(map[string]*Feature)
	s.registry.Range(func(name string, f *Feature) bool {
		snapshot[name] = f
		return true
	})
	return snapshot
}

// registeredNamesSorted returns the registry keys in lexicographic order.
// Bulk enablement iterates this instead of the unordered map so that the
// persistence log and tests see a deterministic sequence.
func (s *Service) registeredNamesSorted() []string {
	names := NewSet()
	s.registry.Range(func(name string, _ *Feature) bool {
		names.Add(name)
		return true
	})
	return names.Sorted()
}

// --------------------------------------------------------------------------
// Set Algebra
// --------------------------------------------------------------------------

// KnownFeatureSet returns the features this binary recognizes: the union of
// the deprecated compatibility constants and all currently registered
// names, minus the administratively disabled names. It is recomputed on
// every call from the live registry.
func (s *Service) KnownFeatureSet() Set {
	features := DeprecatedFeatures.Clone()
	s.registry.Range(func(name string, _ *Feature) bool {
		features.Add(name)
		return true
	})
	for name := range s.disabled {
		features.Remove(name)
	}
	return features
}

// SupportedFeatureSet returns the known features this node is willing to
// advertise to peers: the known set minus the masked names. The gossip
// layer advertises this value; the gate itself only computes it.
func (s *Service) SupportedFeatureSet() Set {
	features := s.KnownFeatureSet()
	s.masked.Range(func(name string, _ struct{}) bool {
		features.Remove(name)
		return true
	})
	return features
}

// --------------------------------------------------------------------------
// Enablement
// --------------------------------------------------------------------------

// Enable durably enables the named feature. The enablement record is
// persisted strictly before the in-memory flag flips, so a crash on either
// side of the write is recoverable. If the persistence write fails the flag
// stays down and the error is returned; the agreement driver retries on the
// next gossip round.
//
// Enabling an unknown name is a silent no-op: during a mixed-version
// rollout the cluster-agreed set may contain names an older binary does not
// implement. Enabling an already enabled feature is a no-op as well.
func (s *Service) Enable(name string) error {
	f, ok := s.registry.Load(name)
	if !ok {
		return nil
	}
	return s.enableFeature(f)
}

// EnableSet enables every registered feature whose name is in the given
// set, typically the cluster-wide agreed feature set. Features are visited
// in a stable sorted order. Unknown names are tolerated. If a persistence
// write fails the remaining features are still attempted and the first
// error is returned.
func (s *Service) EnableSet(names Set) error {
	var firstErr error
	for _, name := range s.registeredNamesSorted() {
		if !names.Contains(name) {
			continue
		}
		f, ok := s.registry.Load(name)
		if !ok {
			continue
		}
		if err := s.enableFeature(f); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// enableFeature performs the persist-before-flip sequence for a single
// feature. Idempotent: an already enabled feature is left untouched.
func (s *Service) enableFeature(f *Feature) error {
	if f.IsEnabled() {
		return nil
	}
	if err := s.persistEnabledFeature(f.name); err != nil {
		persistErrorsTotal.Inc()
		return err
	}
	f.Enable()
	metrics.GetOrCreateCounter(fmt.Sprintf(`dgate_feature_enabled_total{feature=%q}`, f.name)).Inc()
	return nil
}

// persistEnabledFeature adds name to the durable enablement record. The
// record is a single key holding the comma-joined set of all feature names
// ever enabled on this node.
func (s *Service) persistEnabledFeature(name string) error {
	if s.store == nil {
		return nil
	}
	raw, found, err := s.store.Get(enabledFeaturesKey)
	if err != nil {
		return fmt.Errorf("persist feature %s: %w", name, err)
	}
	if !found {
		if err := s.store.Set(enabledFeaturesKey, name); err != nil {
			return fmt.Errorf("persist feature %s: %w", name, err)
		}
		return nil
	}
	features := ToFeatureSet(raw)
	features.Add(name)
	if err := s.store.Set(enabledFeaturesKey, features.Join()); err != nil {
		return fmt.Errorf("persist feature %s: %w", name, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Unmasking
// --------------------------------------------------------------------------

// Support removes name from the masked set, so that the next gossip round
// advertises it, and persists the updated supported-feature set. This is
// the explicit administrative unlock for features the binary ships with
// but deliberately keeps hidden until a cluster-wide decision.
//
// Unmasking a name that is not masked, or not even known, is a no-op-safe
// operation: an unknown name simply never appears in the known set.
func (s *Service) Support(name string) error {
	s.masked.Delete(name)

	if s.store == nil {
		return nil
	}
	if err := s.store.Set(supportedFeaturesKey, s.SupportedFeatureSet().Join()); err != nil {
		persistErrorsTotal.Inc()
		return fmt.Errorf("persist supported features: %w", err)
	}
	return nil
}
