package cluster

import (
	"github.com/ValentinKolb/dGate/lib/gate"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var log = logger.GetLogger("cluster")

// --------------------------------------------------------------------------
// Agreement Coordinator
// --------------------------------------------------------------------------

// Coordinator glues the gossip layer to the feature gate. The transport
// feeds it the supported-feature set of every live peer; the coordinator
// computes the set supported by all members and drives the gate's bulk
// enablement with it. Quorum and liveness semantics stay with the caller:
// whoever calls UpdatePeer/RemovePeer decides who counts as a live member.
//
// Like the gate itself, the coordinator assumes a single logical thread of
// control driving updates and Reconcile; reads of the peer map are safe
// from any goroutine.
type Coordinator struct {
	service *gate.Service
	peers   *xsync.MapOf[string, gate.Set]
}

// NewCoordinator creates a coordinator for the given gate service.
func NewCoordinator(service *gate.Service) *Coordinator {
	return &Coordinator{
		service: service,
		peers:   xsync.NewMapOf[string, gate.Set](),
	}
}

// UpdatePeer records the supported-feature set a peer currently advertises.
func (c *Coordinator) UpdatePeer(nodeID string, supported gate.Set) {
	c.peers.Store(nodeID, supported.Clone())
}

// RemovePeer forgets a departed peer. Its advertised set no longer
// constrains the cluster agreement.
func (c *Coordinator) RemovePeer(nodeID string) {
	c.peers.Delete(nodeID)
}

// CommonFeatures returns the intersection of this node's supported set and
// the advertised set of every tracked peer: the features every live member
// agrees on.
func (c *Coordinator) CommonFeatures() gate.Set {
	common := c.service.SupportedFeatureSet()
	c.peers.Range(func(_ string, supported gate.Set) bool {
		common = common.Intersect(supported)
		return true
	})
	return common
}

// Reconcile enables every feature the whole cluster supports. It is called
// after each gossip round; enablement is idempotent, so recomputing the
// agreement continuously is safe and doubles as the retry mechanism for
// failed persistence writes.
func (c *Coordinator) Reconcile() error {
	common := c.CommonFeatures()
	log.Debugf("reconciling cluster-agreed features: %s", common.Join())
	return c.service.EnableSet(common)
}
