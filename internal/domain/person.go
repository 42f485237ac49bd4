package domain

import "strings"

// Role tells which input directory a person was loaded from
type Role string

const (
	RoleMentor      Role = "mentor"
	RoleParticipant Role = "participant"
)

// Person represents a mentor or participant loaded from one JSON file
type Person struct {
	GitHub      string   `json:"github" validate:"required"`
	Name        string   `json:"name"`
	GitHubPage  bool     `json:"github_page,omitempty"`
	Posts       []*Post  `json:"posts,omitempty" validate:"dive,required"`
	ProjectURLs []string `json:"projects,omitempty"`

	// Filled in by the pipeline
	Projects []Project     `json:"-"`
	GH       *GitHubProfile `json:"gh,omitempty"`
	Role     Role           `json:"-"`
}

// Slug returns the lowercase identifier used for file names and page paths
func (p *Person) Slug() string {
	return strings.ToLower(p.GitHub)
}

// GitHubProfile is the profile information fetched from the GitHub API
type GitHubProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Blog        string `json:"blog,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at,omitempty"`
}
