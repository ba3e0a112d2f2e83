// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillpulse/internal/model"
)

// Store is the persistence surface the sync and query flows depend on.
type Store interface {
	UpsertRepositories(ctx context.Context, repos []model.Repository) error
	UpdateProfile(ctx context.Context, userID, username, avatarURL string, connectedAt time.Time) error
	ListRepositories(ctx context.Context, userID string) ([]model.Repository, error)
}

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres creates a Postgres store.
func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger}
}

const upsertRepositorySQL = `
INSERT INTO repositories (
	user_id, github_id, name, full_name, description,
	primary_language, languages, topics, stars, forks,
	default_branch, last_synced_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (user_id, github_id) DO UPDATE SET
	name = EXCLUDED.name,
	full_name = EXCLUDED.full_name,
	description = EXCLUDED.description,
	primary_language = EXCLUDED.primary_language,
	languages = EXCLUDED.languages,
	topics = EXCLUDED.topics,
	stars = EXCLUDED.stars,
	forks = EXCLUDED.forks,
	default_branch = EXCLUDED.default_branch,
	last_synced_at = EXCLUDED.last_synced_at`

// UpsertRepositories writes the batch in a single transaction, matched on
// (user_id, github_id). Existing rows are fully overwritten; rows absent
// from the batch are left untouched.
func (s *Postgres) UpsertRepositories(ctx context.Context, repos []model.Repository) error {
	if len(repos) == 0 {
		return nil
	}
	s.logger.Debug("Upserting repository batch", "count", len(repos))

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback is a no-op once committed.

	batch := &pgx.Batch{}
	for _, r := range repos {
		langs, err := json.Marshal(r.Languages)
		if err != nil {
			return fmt.Errorf("marshal languages for %s: %w", r.FullName, err)
		}
		batch.Queue(upsertRepositorySQL,
			r.UserID, r.GithubID, r.Name, r.FullName, r.Description,
			r.PrimaryLanguage, langs, r.Topics, r.Stars, r.Forks,
			r.DefaultBranch, r.LastSyncedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range repos {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("upsert repository batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close repository batch: %w", err)
	}

	return tx.Commit(ctx)
}

// UpdateProfile stamps the user's profile row with the linked GitHub account.
// The write is unconditional on every successful sync.
func (s *Postgres) UpdateProfile(ctx context.Context, userID, username, avatarURL string, connectedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE profiles
		SET github_username = $2, github_avatar_url = $3, github_connected_at = $4
		WHERE id = $1`,
		userID, username, avatarURL, connectedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update profile: no profile row for user %s", userID)
	}
	return nil
}

// ListRepositories returns every stored repository for the user, most
// recently synced first with github_id as the stable tiebreak.
func (s *Postgres) ListRepositories(ctx context.Context, userID string) ([]model.Repository, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, github_id, name, full_name, description,
		       primary_language, languages, topics, stars, forks,
		       default_branch, last_synced_at
		FROM repositories
		WHERE user_id = $1
		ORDER BY last_synced_at DESC, github_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	defer rows.Close()

	var repos []model.Repository
	for rows.Next() {
		var r model.Repository
		var langs []byte
		if err := rows.Scan(
			&r.UserID, &r.GithubID, &r.Name, &r.FullName, &r.Description,
			&r.PrimaryLanguage, &langs, &r.Topics, &r.Stars, &r.Forks,
			&r.DefaultBranch, &r.LastSyncedAt,
		); err != nil {
			return nil, fmt.Errorf("scan repository row: %w", err)
		}
		if err := json.Unmarshal(langs, &r.Languages); err != nil {
			return nil, fmt.Errorf("unmarshal languages for %s: %w", r.FullName, err)
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}
