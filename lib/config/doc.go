// Package config translates the node's startup configuration into the
// initial disabled and masked feature sets consumed by the gate service.
// Inconsistent combinations of settings (for example requesting a
// capability without its experimental opt-in) are startup errors: the
// process must not start with an inconsistent feature configuration.
package config
