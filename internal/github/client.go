// internal/github/client.go
package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	apperrors "skillpulse/internal/errors"
	"skillpulse/internal/model"
)

const (
	// Page size for the repository listing, sorted by most recent update.
	reposPerPage = 100

	defaultConcurrency = 5
)

// Client is a wrapper around the go-github client, authenticated with a
// user-supplied personal access token.
type Client struct {
	gh          *github.Client
	logger      *slog.Logger
	concurrency int
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at an alternative API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) error {
		gh, err := c.gh.WithEnterpriseURLs(url, url)
		if err != nil {
			return err
		}
		c.gh = gh
		return nil
	}
}

// WithConcurrency bounds the per-repository language fetch fan-out.
func WithConcurrency(n int) Option {
	return func(c *Client) error {
		if n > 0 {
			c.concurrency = n
		}
		return nil
	}
}

// NewClient creates and configures a new Client instance. The token is
// required; a missing token fails before any network call is made.
func NewClient(token string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, &apperrors.AuthenticationError{Reason: "GitHub access token is required"}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	gh := github.NewClient(tc)
	gh.UserAgent = "SkillPulse-App"

	c := &Client{
		gh:          gh,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Account holds the fields of the authenticated GitHub user that the sync
// flow writes to the profile row.
type Account struct {
	Login     string
	AvatarURL string
}

// AuthenticatedUser fetches the profile of the token's owner.
func (c *Client) AuthenticatedUser(ctx context.Context) (*Account, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, translateError(err)
	}
	return &Account{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

// ListRepositories fetches the authenticated user's repositories, most
// recently updated first, and attaches each repository's language byte
// counts. A non-2xx from the listing endpoint aborts the whole call; a
// failed language lookup for an individual repository is absorbed and that
// repository is returned with an empty language map. The fan-out is bounded
// but completion order is irrelevant: results rejoin in listing order.
func (c *Client) ListRepositories(ctx context.Context, userID string) ([]model.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Sort: "updated",
		ListOptions: github.ListOptions{
			PerPage: reposPerPage,
		},
	}

	ghRepos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, translateError(err)
	}
	c.logger.Info("Fetched repositories from GitHub", "count", len(ghRepos))

	repos := make([]model.Repository, len(ghRepos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, ghRepo := range ghRepos {
		i, ghRepo := i, ghRepo
		g.Go(func() error {
			repo := toInternalRepository(userID, ghRepo)

			langs, _, err := c.gh.Repositories.ListLanguages(gctx, ghRepo.GetOwner().GetLogin(), ghRepo.GetName())
			if err != nil {
				c.logger.Warn("Failed to fetch languages, continuing with empty map",
					"repo", ghRepo.GetFullName(), "error", err)
				langs = map[string]int{}
			}
			repo.Languages = langs

			repos[i] = repo
			return nil
		})
	}
	// Goroutines never return errors; Wait is only the completion barrier.
	_ = g.Wait()

	return repos, nil
}

// toInternalRepository translates a github.Repository to our internal model,
// applying the defaults the rest of the pipeline relies on.
func toInternalRepository(userID string, r *github.Repository) model.Repository {
	repo := model.Repository{
		UserID:          userID,
		GithubID:        r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.GetDescription(),
		PrimaryLanguage: r.GetLanguage(),
		Topics:          r.Topics,
		Stars:           r.GetStargazersCount(),
		Forks:           r.GetForksCount(),
		DefaultBranch:   r.GetDefaultBranch(),
	}
	if repo.PrimaryLanguage == "" {
		repo.PrimaryLanguage = "Unknown"
	}
	if repo.DefaultBranch == "" {
		repo.DefaultBranch = "main"
	}
	if repo.Topics == nil {
		repo.Topics = []string{}
	}
	return repo
}

// translateError maps go-github transport errors to the service taxonomy.
func translateError(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if ghErr.Response.StatusCode == http.StatusUnauthorized {
			return &apperrors.AuthenticationError{Reason: "GitHub rejected the access token"}
		}
		return &apperrors.UpstreamError{API: "GitHub", Status: ghErr.Response.StatusCode}
	}
	return err
}
