package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kurihiro0119/course-site/internal/domain"
	apperrors "github.com/kurihiro0119/course-site/internal/errors"
)

// DefaultUserAgent is sent with page requests
const DefaultUserAgent = "Mozilla/5.0 (compatible; CourseSite/1.0)"

// openGraphCollector reads article metadata from a page's OpenGraph tags
type openGraphCollector struct {
	httpClient *http.Client
}

// NewOpenGraphCollector creates an ArticleCollector that scrapes og:* meta tags
func NewOpenGraphCollector() ArticleCollector {
	return &openGraphCollector{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// FetchArticle downloads the page and extracts its metadata
func (c *openGraphCollector) FetchArticle(ctx context.Context, articleURL string) (*domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", articleURL, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %s: %w", articleURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("article %s", articleURL))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page %s: HTTP status %d", articleURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML of %s: %w", articleURL, err)
	}

	article := &domain.Article{
		URL:         firstNonEmpty(meta(doc, "og:url"), articleURL),
		Title:       firstNonEmpty(meta(doc, "og:title"), strings.TrimSpace(doc.Find("title").First().Text())),
		Description: firstNonEmpty(meta(doc, "og:description"), meta(doc, "description")),
		PublishedAt: meta(doc, "article:published_time"),
		CoverImage:  meta(doc, "og:image"),
	}
	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, s *goquery.Selection) {
		if tag, ok := s.Attr("content"); ok && tag != "" {
			article.Tags = append(article.Tags, tag)
		}
	})
	return article, nil
}

// meta returns the content of a <meta property=...> or <meta name=...> tag
func meta(doc *goquery.Document, key string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
