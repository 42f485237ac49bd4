package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kurihiro0119/course-site/internal/errors"
)

func TestForemCollector_FetchArticle(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		if r.URL.Path != "/api/articles/bob/hello-world-1a2b" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"title": "Hello World",
			"description": "A first post",
			"url": "https://dev.to/bob/hello-world-1a2b",
			"published_at": "2023-01-02T10:00:00Z",
			"tag_list": ["go", "beginners"],
			"reading_time_minutes": 3
		}`))
	}))
	defer server.Close()

	coll, err := NewForemCollector(server.URL, nil)
	require.NoError(t, err)

	article, err := coll.FetchArticle(context.Background(), server.URL+"/bob/hello-world-1a2b")
	require.NoError(t, err)
	assert.Equal(t, "/api/articles/bob/hello-world-1a2b", requested)
	assert.Equal(t, "Hello World", article.Title)
	assert.Equal(t, "A first post", article.Description)
	assert.Equal(t, "2023-01-02T10:00:00Z", article.PublishedAt)
	assert.Equal(t, []string{"go", "beginners"}, article.Tags)
	assert.Equal(t, 3, article.ReadingTimeMinutes)
}

func TestForemCollector_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	coll, err := NewForemCollector(server.URL, nil)
	require.NoError(t, err)

	_, err = coll.FetchArticle(context.Background(), server.URL+"/bob/gone")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestForemCollector_ForeignURLUsesFallback(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<title>Ignored title</title>
			<meta property="og:title" content="My Blog Post">
			<meta property="og:description" content="About things">
			<meta property="og:image" content="https://img.example/cover.png">
			<meta property="article:published_time" content="2023-05-06T07:08:09Z">
			<meta property="article:tag" content="go">
			<meta property="article:tag" content="testing">
		</head><body></body></html>`))
	}))
	defer page.Close()

	coll, err := NewForemCollector("https://dev.to", NewOpenGraphCollector())
	require.NoError(t, err)

	article, err := coll.FetchArticle(context.Background(), page.URL+"/posts/my-post")
	require.NoError(t, err)
	assert.Equal(t, "My Blog Post", article.Title)
	assert.Equal(t, "About things", article.Description)
	assert.Equal(t, "https://img.example/cover.png", article.CoverImage)
	assert.Equal(t, "2023-05-06T07:08:09Z", article.PublishedAt)
	assert.Equal(t, page.URL+"/posts/my-post", article.URL)
	assert.Equal(t, []string{"go", "testing"}, article.Tags)
}

func TestForemCollector_ForeignURLWithoutFallback(t *testing.T) {
	coll, err := NewForemCollector("https://dev.to", nil)
	require.NoError(t, err)

	_, err = coll.FetchArticle(context.Background(), "https://blog.example.com/post")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestOpenGraphCollector_TitleFallback(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title> Plain Title </title>
			<meta name="description" content="Plain description"></head></html>`))
	}))
	defer page.Close()

	article, err := NewOpenGraphCollector().FetchArticle(context.Background(), page.URL)
	require.NoError(t, err)
	assert.Equal(t, "Plain Title", article.Title)
	assert.Equal(t, "Plain description", article.Description)
}

func TestNewForemCollector_InvalidBaseURL(t *testing.T) {
	_, err := NewForemCollector("not a url", nil)
	require.Error(t, err)
}
