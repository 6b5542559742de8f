package config

import (
	"testing"

	"github.com/ValentinKolb/dGate/lib/gate"
)

func TestDefaultConfig(t *testing.T) {
	fcfg, err := FeatureConfig(&NodeConfig{StorageFormat: "v4"})
	if err != nil {
		t.Fatalf("FeatureConfig returned error: %v", err)
	}

	// experimental capabilities are off by default
	for _, name := range []string{
		gate.FeatureLockManagerV2,
		gate.FeatureShardRebalancing,
		gate.FeatureSupportsRaftClusterManagement,
		gate.FeatureUsesRaftClusterManagement,
	} {
		if !fcfg.DisabledFeatures.Contains(name) {
			t.Errorf("Expected %s disabled by default", name)
		}
	}

	// format features are available on the newest format
	if fcfg.DisabledFeatures.Contains(gate.FeatureMapleV3Format) ||
		fcfg.DisabledFeatures.Contains(gate.FeatureMapleV4Format) {
		t.Errorf("Expected no format features disabled on v4")
	}

	if len(fcfg.MaskedFeatures) != 0 {
		t.Errorf("Expected no masked features by default, got %v", fcfg.MaskedFeatures.Sorted())
	}
}

func TestStorageFormatImplications(t *testing.T) {
	fcfg, err := FeatureConfig(&NodeConfig{StorageFormat: "v2"})
	if err != nil {
		t.Fatalf("FeatureConfig returned error: %v", err)
	}
	if !fcfg.DisabledFeatures.Contains(gate.FeatureMapleV3Format) ||
		!fcfg.DisabledFeatures.Contains(gate.FeatureMapleV4Format) {
		t.Errorf("Expected v2 format to disable both newer format features")
	}

	fcfg, err = FeatureConfig(&NodeConfig{StorageFormat: "v3"})
	if err != nil {
		t.Fatalf("FeatureConfig returned error: %v", err)
	}
	if fcfg.DisabledFeatures.Contains(gate.FeatureMapleV3Format) {
		t.Errorf("Expected v3 format to keep MAPLE_V3_FORMAT")
	}
	if !fcfg.DisabledFeatures.Contains(gate.FeatureMapleV4Format) {
		t.Errorf("Expected v3 format to disable MAPLE_V4_FORMAT")
	}
}

func TestUnknownStorageFormatIsError(t *testing.T) {
	if _, err := FeatureConfig(&NodeConfig{StorageFormat: "v9"}); err == nil {
		t.Errorf("Expected unknown storage format to fail")
	}
}

func TestLockManagerV2RequiresExperimentalOptIn(t *testing.T) {
	// flag without the experimental opt-in is an inconsistent configuration
	_, err := FeatureConfig(&NodeConfig{
		StorageFormat:       "v4",
		EnableLockManagerV2: true,
	})
	if err == nil {
		t.Fatalf("Expected lock manager v2 without opt-in to fail")
	}

	// both switches together are accepted
	fcfg, err := FeatureConfig(&NodeConfig{
		StorageFormat:        "v4",
		EnableLockManagerV2:  true,
		ExperimentalFeatures: []ExperimentalFeature{ExperimentalLockManagerV2},
	})
	if err != nil {
		t.Fatalf("FeatureConfig returned error: %v", err)
	}
	if fcfg.DisabledFeatures.Contains(gate.FeatureLockManagerV2) {
		t.Errorf("Expected LOCK_MANAGER_V2 to be available")
	}
}

func TestRaftClusterManagementOptInMasksUses(t *testing.T) {
	fcfg, err := FeatureConfig(&NodeConfig{
		StorageFormat:        "v4",
		ExperimentalFeatures: []ExperimentalFeature{ExperimentalRaftClusterManagement},
	})
	if err != nil {
		t.Fatalf("FeatureConfig returned error: %v", err)
	}

	if fcfg.DisabledFeatures.Contains(gate.FeatureSupportsRaftClusterManagement) {
		t.Errorf("Expected SUPPORTS_RAFT_CLUSTER_MANAGEMENT to be available after opt-in")
	}
	// the "uses" feature must not be advertised ahead of an explicit unlock
	if !fcfg.MaskedFeatures.Contains(gate.FeatureUsesRaftClusterManagement) {
		t.Errorf("Expected USES_RAFT_CLUSTER_MANAGEMENT to be masked after opt-in")
	}
	if fcfg.DisabledFeatures.Contains(gate.FeatureUsesRaftClusterManagement) {
		t.Errorf("Expected USES_RAFT_CLUSTER_MANAGEMENT to be masked, not disabled")
	}
}

func TestUnknownExperimentalFeatureIsError(t *testing.T) {
	_, err := FeatureConfig(&NodeConfig{
		StorageFormat:        "v4",
		ExperimentalFeatures: []ExperimentalFeature{"time-travel"},
	})
	if err == nil {
		t.Errorf("Expected unknown experimental feature to fail")
	}
}

func TestExplicitDisabledFeaturesAreMerged(t *testing.T) {
	fcfg, err := FeatureConfig(&NodeConfig{
		StorageFormat:    "v4",
		DisabledFeatures: []string{gate.FeatureRangeDelete},
	})
	if err != nil {
		t.Fatalf("FeatureConfig returned error: %v", err)
	}
	if !fcfg.DisabledFeatures.Contains(gate.FeatureRangeDelete) {
		t.Errorf("Expected explicit disable list to be merged")
	}
}
