// internal/syncer/syncer_test.go
package syncer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "skillpulse/internal/errors"
	"skillpulse/internal/github"
	"skillpulse/internal/model"
)

// MockStore is a mock of the store.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) UpsertRepositories(ctx context.Context, repos []model.Repository) error {
	args := m.Called(ctx, repos)
	return args.Error(0)
}

func (m *MockStore) UpdateProfile(ctx context.Context, userID, username, avatarURL string, connectedAt time.Time) error {
	args := m.Called(ctx, userID, username, avatarURL, connectedAt)
	return args.Error(0)
}

func (m *MockStore) ListRepositories(ctx context.Context, userID string) ([]model.Repository, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Repository), args.Error(1)
}

// fakeGithubClient is a canned GithubClient.
type fakeGithubClient struct {
	account *github.Account
	repos   []model.Repository
	listErr error
	userErr error
}

func (f *fakeGithubClient) AuthenticatedUser(_ context.Context) (*github.Account, error) {
	return f.account, f.userErr
}

func (f *fakeGithubClient) ListRepositories(_ context.Context, _ string) ([]model.Repository, error) {
	return f.repos, f.listErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncer_Sync(t *testing.T) {
	ctx := context.Background()
	syncTime := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	newFactory := func(client GithubClient) ClientFactory {
		return func(token string) (GithubClient, error) { return client, nil }
	}

	t.Run("stamps the profile and upserts all repositories", func(t *testing.T) {
		client := &fakeGithubClient{
			account: &github.Account{Login: "octocat", AvatarURL: "https://example.com/a.png"},
			repos: []model.Repository{
				{UserID: "user-1", GithubID: 1, Name: "alpha", Languages: map[string]int{"Go": 10}},
				{UserID: "user-1", GithubID: 2, Name: "beta", Languages: map[string]int{}},
			},
		}
		mockStore := new(MockStore)
		mockStore.On("UpdateProfile", ctx, "user-1", "octocat", "https://example.com/a.png", syncTime).Return(nil).Once()
		mockStore.On("UpsertRepositories", ctx, mock.MatchedBy(func(repos []model.Repository) bool {
			if len(repos) != 2 {
				return false
			}
			for _, r := range repos {
				if !r.LastSyncedAt.Equal(syncTime) {
					return false
				}
			}
			// A failed language fetch still arrives as an empty map.
			return repos[1].Languages != nil && len(repos[1].Languages) == 0
		})).Return(nil).Once()

		s := NewSyncer(mockStore, newFactory(client), testLogger())
		s.now = func() time.Time { return syncTime }

		count, err := s.Sync(ctx, "user-1", "gh-token")

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		mockStore.AssertExpectations(t)
	})

	t.Run("missing token fails before the client is built", func(t *testing.T) {
		mockStore := new(MockStore)
		factoryCalled := false
		factory := func(token string) (GithubClient, error) {
			factoryCalled = true
			return nil, nil
		}

		s := NewSyncer(mockStore, factory, testLogger())
		_, err := s.Sync(ctx, "user-1", "")

		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.False(t, factoryCalled)
		mockStore.AssertNotCalled(t, "UpdateProfile")
		mockStore.AssertNotCalled(t, "UpsertRepositories")
	})

	t.Run("listing failure aborts with nothing written", func(t *testing.T) {
		client := &fakeGithubClient{
			listErr: &apperrors.UpstreamError{API: "GitHub", Status: 403},
		}
		mockStore := new(MockStore)

		s := NewSyncer(mockStore, newFactory(client), testLogger())
		_, err := s.Sync(ctx, "user-1", "gh-token")

		var upErr *apperrors.UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, 403, upErr.Status)
		mockStore.AssertNotCalled(t, "UpdateProfile")
		mockStore.AssertNotCalled(t, "UpsertRepositories")
	})

	t.Run("profile write failure aborts before the upsert", func(t *testing.T) {
		client := &fakeGithubClient{
			account: &github.Account{Login: "octocat"},
			repos:   []model.Repository{{GithubID: 1}},
		}
		mockStore := new(MockStore)
		dbErr := errors.New("connection reset")
		mockStore.On("UpdateProfile", ctx, "user-1", "octocat", "", mock.Anything).Return(dbErr).Once()

		s := NewSyncer(mockStore, newFactory(client), testLogger())
		_, err := s.Sync(ctx, "user-1", "gh-token")

		require.ErrorIs(t, err, dbErr)
		mockStore.AssertNotCalled(t, "UpsertRepositories")
	})
}
