package domain

import "time"

// ProjectKind identifies which URL shape a project matched
type ProjectKind string

const (
	ProjectKindGitHubRepo         ProjectKind = "github_repo"
	ProjectKindHeptapodRepo       ProjectKind = "heptapod_repo"
	ProjectKindGitHubOrganization ProjectKind = "github_organization"
)

// Project is a validated project URL with its display name
type Project struct {
	URL  string      `json:"url"`
	Name string      `json:"name"`
	Kind ProjectKind `json:"-"`
}

// Course holds the settings read from course.json
type Course struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Stats are the counters shown on the about page
type Stats struct {
	Projects    int
	Articles    int
	GitHubPages int
	GeneratedAt time.Time
}
