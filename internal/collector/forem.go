package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kurihiro0119/course-site/internal/domain"
	apperrors "github.com/kurihiro0119/course-site/internal/errors"
)

// DefaultTimeout is the HTTP timeout for article and account requests
const DefaultTimeout = 30 * time.Second

// foremArticle is the subset of the Forem article payload we keep
type foremArticle struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	URL                string   `json:"url"`
	PublishedAt        string   `json:"published_at"`
	CoverImage         string   `json:"cover_image"`
	TagList            []string `json:"tag_list"`
	ReadingTimeMinutes int      `json:"reading_time_minutes"`
	Reactions          int      `json:"public_reactions_count"`
	Comments           int      `json:"comments_count"`
}

// foremCollector implements ArticleCollector for Forem sites such as dev.to.
// Posts hosted elsewhere are handed to fallback.
type foremCollector struct {
	baseURL    *url.URL
	httpClient *http.Client
	fallback   ArticleCollector
}

// NewForemCollector creates an article collector for the Forem instance at
// baseURL. fallback may be nil, in which case foreign URLs are not found.
func NewForemCollector(baseURL string, fallback ArticleCollector) (ArticleCollector, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid Forem base URL %q", baseURL)
	}
	return &foremCollector{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		fallback:   fallback,
	}, nil
}

// FetchArticle retrieves article details through the Forem API
func (c *foremCollector) FetchArticle(ctx context.Context, articleURL string) (*domain.Article, error) {
	apiURL, ok := c.apiURL(articleURL)
	if !ok {
		if c.fallback == nil {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("article %s", articleURL))
		}
		return c.fallback.FetchArticle(ctx, articleURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", articleURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article %s: %w", articleURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("article %s", articleURL))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apperrors.NewRateLimitedError(fmt.Sprintf("Forem rate limit hit for %s", articleURL))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to fetch article %s: HTTP status %d", articleURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read article %s: %w", articleURL, err)
	}

	var fa foremArticle
	if err := json.Unmarshal(body, &fa); err != nil {
		return nil, fmt.Errorf("failed to decode article %s: %w", articleURL, err)
	}

	article := &domain.Article{
		URL:                fa.URL,
		Title:              fa.Title,
		Description:        fa.Description,
		PublishedAt:        fa.PublishedAt,
		CoverImage:         fa.CoverImage,
		Tags:               fa.TagList,
		ReadingTimeMinutes: fa.ReadingTimeMinutes,
		Reactions:          fa.Reactions,
		Comments:           fa.Comments,
	}
	if article.URL == "" {
		article.URL = articleURL
	}
	return article, nil
}

// apiURL maps https://<forem>/<user>/<slug> to the articles endpoint
func (c *foremCollector) apiURL(articleURL string) (string, bool) {
	u, err := url.Parse(articleURL)
	if err != nil || !strings.EqualFold(u.Host, c.baseURL.Host) {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return fmt.Sprintf("%s/api/articles/%s/%s", c.baseURL.String(), parts[0], parts[1]), true
}
