package gate

// --------------------------------------------------------------------------
// Feature Names
// --------------------------------------------------------------------------

// Canonical names of the cluster features this binary ships with. Names are
// stable across releases and never renamed: they are gossiped to peers and
// written to the local enablement record.
const (
	FeatureSnapshotCompression           = "SNAPSHOT_COMPRESSION"
	FeatureRangeDelete                   = "RANGE_DELETE"
	FeatureMapleV3Format                 = "MAPLE_V3_FORMAT"
	FeatureMapleV4Format                 = "MAPLE_V4_FORMAT"
	FeatureBinarySerializerV2            = "BINARY_SERIALIZER_V2"
	FeatureLockManagerV2                 = "LOCK_MANAGER_V2"
	FeatureShardRebalancing              = "SHARD_REBALANCING"
	FeatureSupportsRaftClusterManagement = "SUPPORTS_RAFT_CLUSTER_MANAGEMENT"
	FeatureUsesRaftClusterManagement     = "USES_RAFT_CLUSTER_MANAGEMENT"
	FeatureTTLMetadataV2                 = "TTL_METADATA_V2"
)

// DeprecatedFeatures are legacy capability names assumed permanently true
// in the code. They are still advertised via gossip for peers that check
// for them, but they are never registered, disabled or masked. The set is
// versioned with the binary and must not be derived at runtime.
var DeprecatedFeatures = NewSet(
	"KEY_EXPIRY",
	"LOCK_MANAGER",
	"GOB_SERIALIZER",
	"SNAPSHOT_TRANSFER",
	"MAPLE_V2_FORMAT",
	"WRITE_INDEX",
)

// --------------------------------------------------------------------------
// Node Feature Bundle
// --------------------------------------------------------------------------

// NodeFeatures bundles the full set of negotiable features of this binary.
// A node constructs exactly one bundle right after the gate service; each
// field registers itself under its canonical name. Subsystems that own a
// capability hold the corresponding *Feature and subscribe to it.
type NodeFeatures struct {
	SnapshotCompression           *Feature
	RangeDelete                   *Feature
	MapleV3Format                 *Feature
	MapleV4Format                 *Feature
	BinarySerializerV2            *Feature
	LockManagerV2                 *Feature
	ShardRebalancing              *Feature
	SupportsRaftClusterManagement *Feature
	UsesRaftClusterManagement     *Feature
	TTLMetadataV2                 *Feature
}

// NewNodeFeatures registers every feature of this binary with the given
// service and returns the bundle.
func NewNodeFeatures(service *Service) *NodeFeatures {
	return &NodeFeatures{
		SnapshotCompression:           NewFeature(service, FeatureSnapshotCompression),
		RangeDelete:                   NewFeature(service, FeatureRangeDelete),
		MapleV3Format:                 NewFeature(service, FeatureMapleV3Format),
		MapleV4Format:                 NewFeature(service, FeatureMapleV4Format),
		BinarySerializerV2:            NewFeature(service, FeatureBinarySerializerV2),
		LockManagerV2:                 NewFeature(service, FeatureLockManagerV2),
		ShardRebalancing:              NewFeature(service, FeatureShardRebalancing),
		SupportsRaftClusterManagement: NewFeature(service, FeatureSupportsRaftClusterManagement),
		UsesRaftClusterManagement:     NewFeature(service, FeatureUsesRaftClusterManagement),
		TTLMetadataV2:                 NewFeature(service, FeatureTTLMetadataV2),
	}
}

// Close unregisters all features of the bundle. Call before stopping the
// gate service.
func (nf *NodeFeatures) Close() {
	for _, f := range nf.all() {
		f.Close()
	}
}

// MaxStorageFormat projects the on-disk format features into the newest
// maple format this node may write. Until the cluster has agreed on a
// newer format feature, writers must stick to the baseline v2 format.
func (nf *NodeFeatures) MaxStorageFormat() string {
	switch {
	case nf.MapleV4Format.IsEnabled():
		return "v4"
	case nf.MapleV3Format.IsEnabled():
		return "v3"
	default:
		return "v2"
	}
}

func (nf *NodeFeatures) all() []*Feature {
	return []*Feature{
		nf.SnapshotCompression,
		nf.RangeDelete,
		nf.MapleV3Format,
		nf.MapleV4Format,
		nf.BinarySerializerV2,
		nf.LockManagerV2,
		nf.ShardRebalancing,
		nf.SupportsRaftClusterManagement,
		nf.UsesRaftClusterManagement,
		nf.TTLMetadataV2,
	}
}
