// Package flush implements the keyspace flush use case.
package flush

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/keyflush/internal/boundaries/out"
	"github.com/bnema/keyflush/internal/domain"
)

// Config holds the flush settings consumed per run.
type Config struct {
	// Keyspaces is an optional comma-separated override of the keyspaces to flush.
	Keyspaces string
}

// Service flushes keyspaces through the management endpoint.
type Service struct {
	client out.ManagementClient
	config Config
	log    zerolog.Logger
}

// NewService creates a flush service.
func NewService(client out.ManagementClient, config Config, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		config: config,
		log:    log.With().Str("task", domain.TaskFlush).Logger(),
	}
}

// Run flushes every resolved, unprotected keyspace in order and returns the
// keyspaces flushed. The result may be empty but is never nil.
//
// An override naming an unknown keyspace fails with domain.ErrInvalidArgument
// before anything is flushed. A flush failure stops the run: the keyspaces
// flushed so far are returned together with a *domain.TaskError.
func (s *Service) Run(ctx context.Context) ([]string, error) {
	flushed := make([]string, 0)

	// The live listing is fetched at most once per run and shared between
	// resolution and the existence check.
	var live []string
	listed := false
	listLive := func(ctx context.Context) ([]string, error) {
		if listed {
			return live, nil
		}
		keyspaces, err := s.client.ListKeyspaces(ctx)
		if err != nil {
			return nil, err
		}
		live, listed = keyspaces, true
		return keyspaces, nil
	}

	keyspaces, err := ResolveKeyspaces(ctx, s.config.Keyspaces, listLive)
	if err != nil {
		return flushed, err
	}

	if len(keyspaces) == 0 {
		s.log.Warn().Msg("no op on requested flush as there are no keyspaces")
		return flushed, nil
	}

	existing, err := listLive(ctx)
	if err != nil {
		return flushed, fmt.Errorf("failed to list keyspaces: %w", err)
	}
	if err := validateKeyspaces(keyspaces, existing); err != nil {
		return flushed, err
	}

	for _, keyspace := range keyspaces {
		if domain.IsProtectedKeyspace(keyspace) {
			s.log.Debug().Str("keyspace", keyspace).Msg("skipping protected keyspace")
			continue
		}

		s.log.Debug().Str("keyspace", keyspace).Msg("flushing keyspace")
		if err := s.client.ForceKeyspaceFlush(ctx, keyspace); err != nil {
			s.log.Error().Err(err).Str("keyspace", keyspace).Strs("flushed", flushed).Msg("keyspace flush failed")
			return flushed, &domain.TaskError{Keyspace: keyspace, Err: err}
		}
		flushed = append(flushed, keyspace)
	}

	s.log.Info().Strs("keyspaces", flushed).Msg("flush completed")
	return flushed, nil
}

func validateKeyspaces(keyspaces, existing []string) error {
	known := make(map[string]struct{}, len(existing))
	for _, keyspace := range existing {
		known[keyspace] = struct{}{}
	}

	for _, keyspace := range keyspaces {
		if _, ok := known[keyspace]; !ok {
			return fmt.Errorf("%w: keyspace [%s] does not exist", domain.ErrInvalidArgument, keyspace)
		}
	}
	return nil
}
