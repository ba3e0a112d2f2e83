// internal/syncer/syncer.go
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "skillpulse/internal/errors"
	"skillpulse/internal/github"
	"skillpulse/internal/model"
	"skillpulse/internal/store"
)

// GithubClient is the slice of the GitHub wrapper the syncer consumes.
type GithubClient interface {
	AuthenticatedUser(ctx context.Context) (*github.Account, error)
	ListRepositories(ctx context.Context, userID string) ([]model.Repository, error)
}

// ClientFactory builds an authenticated GitHub client for one sync request.
// The token arrives with the request, so a client cannot be shared.
type ClientFactory func(token string) (GithubClient, error)

// Syncer orchestrates fetching a user's GitHub snapshot and storing it.
type Syncer struct {
	store     store.Store
	newClient ClientFactory
	logger    *slog.Logger
	now       func() time.Time
}

// NewSyncer creates a new Syncer instance.
func NewSyncer(st store.Store, factory ClientFactory, logger *slog.Logger) *Syncer {
	return &Syncer{
		store:     st,
		newClient: factory,
		logger:    logger,
		now:       time.Now,
	}
}

// Sync pulls the user's repositories and language maps from GitHub, stamps
// the profile row, and upserts the snapshot. It returns the number of
// repositories synced. A failure of the repository listing aborts the run
// with nothing written; individual language-fetch failures have already been
// absorbed by the client and arrive as empty maps.
func (s *Syncer) Sync(ctx context.Context, userID, githubToken string) (int, error) {
	if githubToken == "" {
		return 0, &apperrors.ValidationError{Field: "github_access_token"}
	}

	client, err := s.newClient(githubToken)
	if err != nil {
		return 0, err
	}

	logger := s.logger.With("user_id", userID)
	logger.Info("Starting repository sync")

	repos, err := client.ListRepositories(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list repositories: %w", err)
	}

	account, err := client.AuthenticatedUser(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch GitHub account: %w", err)
	}
	logger.Info("Fetched GitHub account", "login", account.Login)

	syncedAt := s.now().UTC()
	if err := s.store.UpdateProfile(ctx, userID, account.Login, account.AvatarURL, syncedAt); err != nil {
		return 0, err
	}

	for i := range repos {
		repos[i].LastSyncedAt = syncedAt
	}
	if err := s.store.UpsertRepositories(ctx, repos); err != nil {
		return 0, err
	}

	logger.Info("Repository sync finished", "count", len(repos))
	return len(repos), nil
}
