// internal/model/models.go
package model

import (
	"database/sql"
	"time"
)

// Repository is one GitHub repository snapshot for one user. A row is
// uniquely identified by (UserID, GithubID); re-syncing overwrites in place.
type Repository struct {
	UserID          string         `json:"user_id"`
	GithubID        int64          `json:"github_id"`
	Name            string         `json:"name"`
	FullName        string         `json:"full_name"`
	Description     string         `json:"description"`
	PrimaryLanguage string         `json:"primary_language"`
	Languages       map[string]int `json:"languages"`
	Topics          []string       `json:"topics"`
	Stars           int            `json:"stars"`
	Forks           int            `json:"forks"`
	DefaultBranch   string         `json:"default_branch"`
	LastSyncedAt    time.Time      `json:"last_synced_at"`
}

// Profile is the per-user account row. It is created by the auth system;
// the sync flow only updates the GitHub fields. A non-null GithubConnectedAt
// is the sole signal that the account is linked.
type Profile struct {
	ID                string       `json:"id"`
	GithubUsername    string       `json:"github_username"`
	GithubAvatarURL   string       `json:"github_avatar_url"`
	GithubConnectedAt sql.NullTime `json:"github_connected_at"`
}

// Turn roles for the mock-interview conversation.
const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// Turn is one message exchange in a mock interview. Turns live only in the
// client session; the full history is re-sent on every request.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
