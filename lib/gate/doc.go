// Package gate implements a per-node cluster feature negotiation gate: a
// registry of named capability flags ("features") that lets a distributed
// key-value cluster roll out behavior changes safely across a mixed-version
// fleet during rolling upgrades.
//
// A feature represents a capability (a new on-disk format, a new wire
// behavior, a reworked subsystem) that must not be exercised until every
// node in the cluster is known to support it. The gate decides, per node,
// which capabilities are:
//
//   - known: compiled into this binary and not administratively disabled
//   - supported: known and safe to advertise to peers (known minus masked)
//   - enabled: actually turned on, irreversibly, for this process lifetime
//   - masked: known and supported internally but deliberately withheld from
//     advertisement until an explicit administrative unlock
//
// Key Components:
//
//   - Feature: a single named, boolean, monotonic capability flag with
//     subscribable enablement notification. Subsystems embed a *Feature and
//     query IsEnabled on hot paths; the read is a single atomic load.
//
//   - Service: orchestrates the registry, the known/supported/masked/
//     disabled set algebra, persistence of enablement records, and bulk
//     enablement driven by externally observed cluster agreement.
//
//   - NodeFeatures: the canonical bundle of features this binary ships
//     with, registered in one step at node startup.
//
//   - Set: feature name sets with the comma-joined wire and storage codec
//     shared with the gossip layer.
//
// Enablement Protocol:
//
//	The gossip layer advertises SupportedFeatureSet to peers and computes
//	the intersection of the supported sets of all live members. That agreed
//	set is fed to EnableSet, which enables each matching registered feature
//	exactly once. For every feature the enablement record is persisted
//	strictly before the in-memory flag flips, so a crash on either side of
//	the write is recoverable: a restarted node re-enables recorded features
//	at registration time without waiting for a fresh agreement round, and a
//	lost write is simply retried on the next gossip round.
//
// Concurrency Model:
//
//	The gate assumes a single logical thread of control driving Enable,
//	EnableSet and Support for a given node (typically the gossip state
//	change handler or an administrative command). Reads — KnownFeatureSet,
//	SupportedFeatureSet, IsEnabled — are safe from any goroutine at any
//	time and never block. Per-feature idempotence makes duplicate or
//	re-entrant enable calls harmless.
//
// The translation of startup configuration into the initial disabled and
// masked sets lives in the lib/config package; the persistence backend
// contract lives in lib/kvstore; the glue to the cluster agreement driver
// lives in lib/cluster.
package gate
