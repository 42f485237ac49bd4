// Package projects classifies the project URLs declared by people.
package projects

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/kurihiro0119/course-site/internal/domain"
	apperrors "github.com/kurihiro0119/course-site/internal/errors"
)

type shape struct {
	kind    domain.ProjectKind
	pattern *regexp.Regexp
	group   int // submatch holding the display name
}

// Checked in order, first match wins
var shapes = []shape{
	{domain.ProjectKindGitHubRepo, regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)$`), 2},
	{domain.ProjectKindHeptapodRepo, regexp.MustCompile(`^https://foss\.heptapod\.net/([^/]+)/([^/]+)$`), 2},
	{domain.ProjectKindGitHubOrganization, regexp.MustCompile(`^https://github\.com/([^/]+)$`), 1},
}

// CheckProject classifies url. ok is false when no known shape matches.
func CheckProject(url string) (kind domain.ProjectKind, name string, ok bool) {
	for _, s := range shapes {
		if m := s.pattern.FindStringSubmatch(url); m != nil {
			return s.kind, m[s.group], true
		}
	}
	return "", "", false
}

// CheckProjects replaces each person's raw project URLs with structured
// projects and returns all of them in order. It stops at the first
// unrecognized URL.
func CheckProjects(people []*domain.Person, logger *zap.Logger) ([]domain.Project, error) {
	var all []domain.Project
	for _, person := range people {
		if len(person.ProjectURLs) == 0 {
			continue
		}
		projects := make([]domain.Project, 0, len(person.ProjectURLs))
		for _, url := range person.ProjectURLs {
			kind, name, ok := CheckProject(url)
			if !ok {
				err := apperrors.NewInvalidProjectError(url, person.Name, person.GitHub)
				logger.Error("Invalid project", zap.String("url", url),
					zap.String("name", person.Name), zap.String("github", person.GitHub))
				return nil, err
			}
			projects = append(projects, domain.Project{URL: url, Name: name, Kind: kind})
		}
		person.Projects = projects
		all = append(all, projects...)
	}
	return all, nil
}
