// Package cluster glues the gossip layer to the feature gate. The
// Coordinator tracks the supported-feature set each live peer advertises,
// computes the set every member agrees on, and drives the gate's bulk
// enablement with it after each gossip round.
//
// The gossip wire format, transport failure handling and quorum/liveness
// semantics are out of scope: the transport decides which peers count as
// live members and feeds the coordinator via UpdatePeer and RemovePeer.
package cluster
