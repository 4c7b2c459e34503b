package in

import "context"

// FlushService defines the keyspace flush use case.
type FlushService interface {
	// Run flushes the resolved keyspaces and returns those actually flushed.
	Run(ctx context.Context) ([]string, error)
}
