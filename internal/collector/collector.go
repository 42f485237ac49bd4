package collector

import (
	"context"

	"github.com/kurihiro0119/course-site/internal/domain"
)

// ProfileCollector fetches profile information for a code hosting account
type ProfileCollector interface {
	// GetUserInfo returns the profile of login. A missing account yields an
	// error for which errors.IsNotFound is true.
	GetUserInfo(ctx context.Context, login string) (*domain.GitHubProfile, error)
}

// ArticleCollector fetches metadata for a blog post URL
type ArticleCollector interface {
	// FetchArticle returns the article behind url. A missing article yields
	// an error for which errors.IsNotFound is true.
	FetchArticle(ctx context.Context, url string) (*domain.Article, error)
}

// AccountChecker tells whether an account page is reachable
type AccountChecker interface {
	CheckAccount(ctx context.Context, login string) (bool, error)
}
