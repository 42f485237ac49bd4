// Package enricher merges externally fetched data into loaded records,
// consulting the fetch cache first so repeated runs stay offline.
package enricher

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kurihiro0119/course-site/internal/collector"
	"github.com/kurihiro0119/course-site/internal/domain"
	apperrors "github.com/kurihiro0119/course-site/internal/errors"
	"github.com/kurihiro0119/course-site/internal/storage"
)

// ProfileEnricher attaches GitHub profile data to people
type ProfileEnricher struct {
	store     storage.Storage
	collector collector.ProfileCollector
	limiter   collector.RateLimiter
	logger    *zap.Logger
}

// NewProfileEnricher creates a ProfileEnricher. limiter is consulted before
// every uncached fetch only.
func NewProfileEnricher(store storage.Storage, coll collector.ProfileCollector, limiter collector.RateLimiter, logger *zap.Logger) *ProfileEnricher {
	return &ProfileEnricher{
		store:     store,
		collector: coll,
		limiter:   limiter,
		logger:    logger,
	}
}

// Enrich sets Person.GH for every person whose profile is cached or can be
// fetched. Unknown accounts are skipped. The cache is saved once at the end.
func (e *ProfileEnricher) Enrich(ctx context.Context, people []*domain.Person) error {
	cache, err := e.store.Load(ctx, storage.NamespaceGitHubPeople)
	if err != nil {
		return fmt.Errorf("failed to load profile cache: %w", err)
	}

	fetched := 0
	for _, person := range people {
		id := person.GitHub
		if _, ok := cache[id]; !ok {
			if err := e.limiter.Wait(ctx); err != nil {
				return err
			}
			profile, err := e.collector.GetUserInfo(ctx, id)
			if apperrors.IsNotFound(err) {
				e.logger.Warn("GitHub user not found, skipping", zap.String("github", id))
				continue
			}
			if err != nil {
				return err
			}
			raw, err := json.Marshal(profile)
			if err != nil {
				return fmt.Errorf("failed to encode profile of %s: %w", id, err)
			}
			cache[id] = raw
			fetched++
		}

		var profile domain.GitHubProfile
		if err := json.Unmarshal(cache[id], &profile); err != nil {
			return fmt.Errorf("corrupt profile cache entry %s: %w", id, err)
		}
		person.GH = &profile
	}

	e.logger.Info("Profiles enriched", zap.Int("people", len(people)), zap.Int("fetched", fetched))
	if err := e.store.Save(ctx, storage.NamespaceGitHubPeople, cache); err != nil {
		return fmt.Errorf("failed to save profile cache: %w", err)
	}
	return nil
}

// ArticleEnricher attaches article metadata to posts
type ArticleEnricher struct {
	store     storage.Storage
	collector collector.ArticleCollector
	limiter   collector.RateLimiter
	logger    *zap.Logger
}

// NewArticleEnricher creates an ArticleEnricher
func NewArticleEnricher(store storage.Storage, coll collector.ArticleCollector, limiter collector.RateLimiter, logger *zap.Logger) *ArticleEnricher {
	return &ArticleEnricher{
		store:     store,
		collector: coll,
		limiter:   limiter,
		logger:    logger,
	}
}

// Enrich sets Post.Details for every post URL, from the cache or a fetch.
// Articles that no longer exist are cached as empty details.
func (e *ArticleEnricher) Enrich(ctx context.Context, people []*domain.Person) error {
	cache, err := e.store.Load(ctx, storage.NamespaceForem)
	if err != nil {
		return fmt.Errorf("failed to load article cache: %w", err)
	}

	fetched := 0
	for _, person := range people {
		for _, post := range person.Posts {
			if _, ok := cache[post.URL]; !ok {
				if err := e.limiter.Wait(ctx); err != nil {
					return err
				}
				article, err := e.collector.FetchArticle(ctx, post.URL)
				if apperrors.IsNotFound(err) {
					// cached empty so later runs do not ask again
					e.logger.Warn("Article not found, using post metadata",
						zap.String("url", post.URL), zap.String("github", person.GitHub))
					article, err = &domain.Article{}, nil
				}
				if err != nil {
					return err
				}
				raw, err := json.Marshal(article)
				if err != nil {
					return fmt.Errorf("failed to encode article %s: %w", post.URL, err)
				}
				cache[post.URL] = raw
				fetched++
			}

			var article domain.Article
			if err := json.Unmarshal(cache[post.URL], &article); err != nil {
				return fmt.Errorf("corrupt article cache entry %s: %w", post.URL, err)
			}
			post.Details = &article
		}
	}

	e.logger.Info("Articles enriched", zap.Int("fetched", fetched))
	if err := e.store.Save(ctx, storage.NamespaceForem, cache); err != nil {
		return fmt.Errorf("failed to save article cache: %w", err)
	}
	return nil
}
