package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/course-site/internal/domain"
)

func publishedOrder(posts []*domain.Article) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.PublishedAt)
	}
	return out
}

func TestCollectPosts_NewestFirst(t *testing.T) {
	alice := &domain.Person{GitHub: "alice", Posts: []*domain.Post{
		{URL: "u1", Title: "first", PublishedAt: "2023-01-02"},
		{URL: "u2", Title: "second", PublishedAt: "2023-01-01"},
	}}

	posts := CollectPosts([]*domain.Person{alice})
	assert.Equal(t, []string{"2023-01-02", "2023-01-01"}, publishedOrder(posts))
}

func TestCollectPosts_SortedAcrossPeople(t *testing.T) {
	alice := &domain.Person{GitHub: "alice", Posts: []*domain.Post{
		{URL: "a1", Title: "a1", PublishedAt: "2023-01-01"},
		{URL: "a2", Title: "a2", PublishedAt: "2023-03-01T08:00:00Z"},
	}}
	bob := &domain.Person{GitHub: "bob", Posts: []*domain.Post{
		{URL: "b1", Title: "b1", PublishedAt: "2023-02-15"},
	}}
	carol := &domain.Person{GitHub: "carol"}

	posts := CollectPosts([]*domain.Person{alice, carol, bob})
	require.Len(t, posts, 3)
	for i := 1; i < len(posts); i++ {
		assert.GreaterOrEqual(t, posts[i-1].PublishedAt, posts[i].PublishedAt)
	}
	assert.Equal(t, "a2", posts[0].URL)
	assert.Same(t, bob, posts[1].Author)
}

func TestCollectPosts_DetailsWithoutDateOrTitle(t *testing.T) {
	alice := &domain.Person{GitHub: "alice", Posts: []*domain.Post{
		{URL: "https://blog.example/old", Title: "Old", PublishedAt: "2023-01-01"},
		{
			URL:         "https://blog.example/new",
			Title:       "Declared title",
			PublishedAt: "2023-06-01",
			Details:     &domain.Article{URL: "https://blog.example/new", Title: "Scraped title"},
		},
		{
			URL:         "https://blog.example/untitled",
			Title:       "Untitled post",
			PublishedAt: "2023-03-01",
			Details:     &domain.Article{URL: "https://blog.example/untitled", PublishedAt: "2023-03-01T09:00:00Z"},
		},
	}}

	posts := CollectPosts([]*domain.Person{alice})
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"2023-06-01", "2023-03-01T09:00:00Z", "2023-01-01"}, publishedOrder(posts))
	assert.Equal(t, "Scraped title", posts[0].Title)
	assert.Equal(t, "Untitled post", posts[1].Title)
	assert.Empty(t, alice.Posts[1].Details.PublishedAt)
}

func TestCollectPosts_TiesKeepInputOrder(t *testing.T) {
	alice := &domain.Person{GitHub: "alice", Posts: []*domain.Post{
		{URL: "x", Title: "x", PublishedAt: "2023-01-01"},
		{URL: "y", Title: "y", PublishedAt: "2023-01-01"},
	}}

	posts := CollectPosts([]*domain.Person{alice})
	assert.Equal(t, "x", posts[0].URL)
	assert.Equal(t, "y", posts[1].URL)
}

func TestCollectPosts_DetailsAndFallback(t *testing.T) {
	alice := &domain.Person{GitHub: "alice", Posts: []*domain.Post{
		{
			URL: "https://dev.to/alice/a", Title: "declared", PublishedAt: "2023-01-01",
			Details: &domain.Article{URL: "https://dev.to/alice/a", Title: "Fetched", Description: "desc", PublishedAt: "2023-01-01T09:00:00Z"},
		},
		{URL: "https://blog/alice/b", Title: "plain", PublishedAt: "2022-12-31"},
		{URL: "https://blog/alice/c", Title: "empty details", PublishedAt: "2022-12-30", Details: &domain.Article{}},
	}}

	posts := CollectPosts([]*domain.Person{alice})
	require.Len(t, posts, 3)

	assert.Equal(t, "Fetched", posts[0].Title)
	assert.Equal(t, "desc", posts[0].Description)
	assert.Same(t, alice, posts[0].Author)
	assert.Nil(t, alice.Posts[0].Details.Author, "the cached details are not mutated")

	assert.Equal(t, "plain", posts[1].Title)
	assert.Equal(t, "", posts[1].Description)
	assert.Equal(t, "2022-12-31", posts[1].PublishedAt)
	assert.Same(t, alice, posts[1].Author)

	assert.Equal(t, "empty details", posts[2].Title)
}

func TestCollectPosts_NoPosts(t *testing.T) {
	assert.Empty(t, CollectPosts([]*domain.Person{{GitHub: "alice"}}))
}

func TestSortByName(t *testing.T) {
	people := []*domain.Person{{GitHub: "c", Name: "Carol"}, {GitHub: "a", Name: "Alice"}, {GitHub: "b", Name: "Bob"}}
	SortByName(people)
	assert.Equal(t, "a", people[0].GitHub)
	assert.Equal(t, "b", people[1].GitHub)
	assert.Equal(t, "c", people[2].GitHub)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	projects := []domain.Project{{URL: "p1"}, {URL: "p2"}}
	posts := []*domain.Article{{URL: "a"}}
	participants := []*domain.Person{{GitHubPage: true}, {}, {GitHubPage: true}}

	stats := ComputeStats(projects, posts, participants, now)
	assert.Equal(t, 2, stats.Projects)
	assert.Equal(t, 1, stats.Articles)
	assert.Equal(t, 2, stats.GitHubPages)
	assert.Equal(t, now, stats.GeneratedAt)
}
