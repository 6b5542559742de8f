package gate

import (
	"testing"
)

func TestNodeFeaturesRegisterAll(t *testing.T) {
	svc := newTestService(t, Config{})

	nf := NewNodeFeatures(svc)
	defer nf.Close()

	known := svc.KnownFeatureSet()
	for _, name := range []string{
		FeatureSnapshotCompression,
		FeatureRangeDelete,
		FeatureMapleV3Format,
		FeatureMapleV4Format,
		FeatureBinarySerializerV2,
		FeatureLockManagerV2,
		FeatureShardRebalancing,
		FeatureSupportsRaftClusterManagement,
		FeatureUsesRaftClusterManagement,
		FeatureTTLMetadataV2,
	} {
		if !known.Contains(name) {
			t.Errorf("Expected %s in known set", name)
		}
	}
}

func TestNodeFeaturesCloseUnregistersAll(t *testing.T) {
	svc := newTestService(t, Config{})

	nf := NewNodeFeatures(svc)
	nf.Close()

	if n := len(svc.RegisteredFeatures()); n != 0 {
		t.Errorf("Expected empty registry after Close, got %d features", n)
	}
}

func TestMaxStorageFormat(t *testing.T) {
	svc := newTestService(t, Config{})

	nf := NewNodeFeatures(svc)
	defer nf.Close()

	if got := nf.MaxStorageFormat(); got != "v2" {
		t.Errorf("Expected baseline format v2 before any agreement, got %s", got)
	}

	nf.MapleV3Format.Enable()
	if got := nf.MaxStorageFormat(); got != "v3" {
		t.Errorf("Expected format v3, got %s", got)
	}

	nf.MapleV4Format.Enable()
	if got := nf.MaxStorageFormat(); got != "v4" {
		t.Errorf("Expected format v4, got %s", got)
	}
}
