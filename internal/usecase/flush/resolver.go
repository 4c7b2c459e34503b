package flush

import (
	"context"
	"fmt"
	"strings"
)

// ListFunc fetches every keyspace known to the management endpoint.
type ListFunc func(ctx context.Context) ([]string, error)

// ResolveKeyspaces returns the keyspaces a run acts on.
//
// A non-empty configured list wins: it is split on commas, tokens are kept
// verbatim and in order, and existence is not checked here. Otherwise the
// live listing is returned as reported. The result is never nil.
func ResolveKeyspaces(ctx context.Context, configured string, list ListFunc) ([]string, error) {
	if configured != "" {
		return splitKeyspaces(configured), nil
	}

	keyspaces, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keyspaces: %w", err)
	}
	if keyspaces == nil {
		return []string{}, nil
	}
	return keyspaces, nil
}

// splitKeyspaces drops trailing empty tokens only, so "a,b," yields [a b]
// while "a,,b" keeps the empty name and fails validation later.
func splitKeyspaces(raw string) []string {
	tokens := strings.Split(raw, ",")
	end := len(tokens)
	for end > 0 && tokens[end-1] == "" {
		end--
	}
	return tokens[:end]
}
