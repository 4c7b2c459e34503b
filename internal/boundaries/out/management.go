// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (management endpoint, history storage).
package out

import "context"

// ManagementClient defines the operations exposed by a database node's
// remote management endpoint.
type ManagementClient interface {
	// ListKeyspaces returns every keyspace known to the node, in the order the node reports them.
	ListKeyspaces(ctx context.Context) ([]string, error)
	// ForceKeyspaceFlush flushes the memtables of a keyspace to disk.
	// With no tables given, every table of the keyspace is flushed.
	ForceKeyspaceFlush(ctx context.Context, keyspace string, tables ...string) error
}
