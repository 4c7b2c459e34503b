package domain

import "strings"

// AllKeyspaces selects every live keyspace in place of an explicit list.
// ALL is a reserved CQL keyword, so no keyspace can carry that name.
const AllKeyspaces = "all"

// SelectsAllKeyspaces reports whether a keyspace list is the AllKeyspaces selector.
func SelectsAllKeyspaces(list string) bool {
	return strings.EqualFold(strings.TrimSpace(list), AllKeyspaces)
}

// protectedKeyspaces are internal bookkeeping keyspaces that cluster
// maintenance must never target.
var protectedKeyspaces = map[string]struct{}{
	"system":                {},
	"system_schema":         {},
	"system_auth":           {},
	"system_distributed":    {},
	"system_traces":         {},
	"system_views":          {},
	"system_virtual_schema": {},
	"OpsCenter":             {},
}

// IsProtectedKeyspace reports whether the keyspace is excluded from cluster management.
func IsProtectedKeyspace(keyspace string) bool {
	_, ok := protectedKeyspaces[keyspace]
	return ok
}
