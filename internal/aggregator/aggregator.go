package aggregator

import (
	"sort"
	"time"

	"github.com/kurihiro0119/course-site/internal/domain"
)

// CollectPosts flattens the posts of all people into articles, newest first.
// Posts without fetched details fall back to the metadata declared in the
// person's file, as do fetched details missing a title or publish time. Posts with equal timestamps keep their input order.
func CollectPosts(people []*domain.Person) []*domain.Article {
	var posts []*domain.Article
	for _, person := range people {
		for _, post := range person.Posts {
			if !post.Details.IsEmpty() {
				article := *post.Details
				article.Author = person
				if article.PublishedAt == "" {
					article.PublishedAt = post.PublishedAt
				}
				if article.Title == "" {
					article.Title = post.Title
				}
				posts = append(posts, &article)
				continue
			}
			posts = append(posts, &domain.Article{
				URL:         post.URL,
				Title:       post.Title,
				Description: "",
				Author:      person,
				PublishedAt: post.PublishedAt,
			})
		}
	}

	// ISO-8601 timestamps order correctly as strings
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt > posts[j].PublishedAt
	})
	return posts
}

// SortByName orders people by display name, keeping the input order for ties
func SortByName(people []*domain.Person) {
	sort.SliceStable(people, func(i, j int) bool {
		return people[i].Name < people[j].Name
	})
}

// ComputeStats counts what the about page reports
func ComputeStats(projects []domain.Project, posts []*domain.Article, participants []*domain.Person, now time.Time) domain.Stats {
	stats := domain.Stats{
		Projects:    len(projects),
		Articles:    len(posts),
		GeneratedAt: now,
	}
	for _, person := range participants {
		if person.GitHubPage {
			stats.GitHubPages++
		}
	}
	return stats
}
