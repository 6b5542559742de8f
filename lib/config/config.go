package config

import (
	"fmt"

	"github.com/ValentinKolb/dGate/lib/gate"
)

// --------------------------------------------------------------------------
// Experimental Flags
// --------------------------------------------------------------------------

// ExperimentalFeature names the opt-in switches for capabilities that are
// shipped but not yet production-ready.
type ExperimentalFeature string

const (
	ExperimentalLockManagerV2         ExperimentalFeature = "lockmgr-v2"
	ExperimentalShardRebalancing      ExperimentalFeature = "shard-rebalancing"
	ExperimentalRaftClusterManagement ExperimentalFeature = "raft-cluster-management"
)

// knownExperimentalFeatures is the closed set of accepted opt-in names.
var knownExperimentalFeatures = map[ExperimentalFeature]struct{}{
	ExperimentalLockManagerV2:         {},
	ExperimentalShardRebalancing:      {},
	ExperimentalRaftClusterManagement: {},
}

// --------------------------------------------------------------------------
// Node Configuration
// --------------------------------------------------------------------------

// NodeConfig holds the startup settings that influence which cluster
// features this node recognizes and advertises. It is read once at process
// start (flags or environment, see the cmd package).
type NodeConfig struct {
	// StorageFormat is the on-disk maple format this node writes ("v2",
	// "v3" or "v4"). Running an older format implies the newer format
	// features must be disabled, or peers would negotiate a format this
	// node cannot read.
	StorageFormat string

	// EnableLockManagerV2 turns on the reworked lock manager. It
	// additionally requires the lockmgr-v2 experimental opt-in.
	EnableLockManagerV2 bool

	// ExperimentalFeatures lists the experimental opt-ins.
	ExperimentalFeatures []ExperimentalFeature

	// DisabledFeatures lists feature names to force off, regardless of
	// what this binary supports.
	DisabledFeatures []string
}

// CheckExperimental reports whether the given experimental feature has been
// opted into.
func (c *NodeConfig) CheckExperimental(feature ExperimentalFeature) bool {
	for _, f := range c.ExperimentalFeatures {
		if f == feature {
			return true
		}
	}
	return false
}

// --------------------------------------------------------------------------
// Translation
// --------------------------------------------------------------------------

// FeatureConfig translates the node configuration into the initial
// disabled/masked feature sets consumed by the gate service. Inconsistent
// combinations of settings are reported as errors and must prevent the
// process from starting.
func FeatureConfig(cfg *NodeConfig) (gate.Config, error) {
	fcfg := gate.Config{
		DisabledFeatures: gate.NewSet(cfg.DisabledFeatures...),
		MaskedFeatures:   gate.NewSet(),
	}

	for _, f := range cfg.ExperimentalFeatures {
		if _, ok := knownExperimentalFeatures[f]; !ok {
			return gate.Config{}, fmt.Errorf("unknown experimental feature: %s", f)
		}
	}

	switch cfg.StorageFormat {
	case "v2":
		fcfg.DisabledFeatures.Add(gate.FeatureMapleV3Format)
		fallthrough
	case "v3":
		fcfg.DisabledFeatures.Add(gate.FeatureMapleV4Format)
	case "v4":
	default:
		return gate.Config{}, fmt.Errorf("unknown storage format: %q (expected one of: v2, v3, v4)", cfg.StorageFormat)
	}

	if !cfg.EnableLockManagerV2 {
		fcfg.DisabledFeatures.Add(gate.FeatureLockManagerV2)
	} else if !cfg.CheckExperimental(ExperimentalLockManagerV2) {
		return gate.Config{}, fmt.Errorf(
			"you must use both enable-lock-manager-v2 and the %s experimental opt-in to enable the reworked lock manager",
			ExperimentalLockManagerV2)
	}

	if !cfg.CheckExperimental(ExperimentalShardRebalancing) {
		fcfg.DisabledFeatures.Add(gate.FeatureShardRebalancing)
	}

	if !cfg.CheckExperimental(ExperimentalRaftClusterManagement) {
		fcfg.DisabledFeatures.Add(gate.FeatureSupportsRaftClusterManagement)
		fcfg.DisabledFeatures.Add(gate.FeatureUsesRaftClusterManagement)
	} else {
		// Mask the "uses" feature so it cannot be advertised via gossip
		// ahead of an explicit administrative unlock (Service.Support).
		fcfg.MaskedFeatures.Add(gate.FeatureUsesRaftClusterManagement)
	}

	return fcfg, nil
}
