package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"

	"github.com/kurihiro0119/course-site/internal/domain"
	apperrors "github.com/kurihiro0119/course-site/internal/errors"
)

// githubCollector implements ProfileCollector using the GitHub API
type githubCollector struct {
	client      *github.Client
	rateLimiter RateLimiter
}

// NewGitHubCollector creates a new GitHub collector. An empty token uses
// unauthenticated requests; a non-empty baseURL points the client at a
// different API root. limiter, when not nil, receives the quota reported
// by each response.
func NewGitHubCollector(token, baseURL string, limiter RateLimiter) (ProfileCollector, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	client := github.NewClient(httpClient)

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		client.BaseURL = u
	}

	return &githubCollector{
		client:      client,
		rateLimiter: limiter,
	}, nil
}

// GetUserInfo retrieves the public profile of a GitHub user
func (c *githubCollector) GetUserInfo(ctx context.Context, login string) (*domain.GitHubProfile, error) {
	user, resp, err := c.client.Users.Get(ctx, login)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("GitHub user %s", login))
		}
		if _, ok := err.(*github.RateLimitError); ok {
			return nil, apperrors.NewRateLimitedError(err.Error())
		}
		return nil, fmt.Errorf("failed to get GitHub user %s: %w", login, err)
	}

	c.updateRateLimitFromResponse(resp)

	profile := &domain.GitHubProfile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		HTMLURL:     user.GetHTMLURL(),
		Bio:         user.GetBio(),
		Blog:        user.GetBlog(),
		Company:     user.GetCompany(),
		Location:    user.GetLocation(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}
	if user.CreatedAt != nil {
		profile.CreatedAt = user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return profile, nil
}

// updateRateLimitFromResponse feeds the response quota to the rate limiter
func (c *githubCollector) updateRateLimitFromResponse(resp *github.Response) {
	if c.rateLimiter == nil || resp == nil || resp.Rate.Limit == 0 {
		return
	}
	c.rateLimiter.UpdateLimit(resp.Rate.Remaining, resp.Rate.Reset.Time)
}
