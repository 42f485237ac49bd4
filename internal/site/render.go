// Package site renders the static course website.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kurihiro0119/course-site/internal/domain"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const layoutTemplate = "layout.html"

// Site is everything the pages are rendered from
type Site struct {
	Course       *domain.Course
	Mentors      []*domain.Person
	Participants []*domain.Person
	Posts        []*domain.Article
	Projects     []domain.Project
	Stats        domain.Stats
	Readme       string // HTML produced by RenderReadme
}

// page is the data handed to every template
type page struct {
	Title        string
	Root         string // relative path back to the output root
	Course       *domain.Course
	Mentors      []*domain.Person
	Participants []*domain.Person
	Person       *domain.Person
	Content      template.HTML
	Articles     []*domain.Article
	Projects     []domain.Project
	Stats        domain.Stats
	Now          time.Time
}

// Renderer writes the HTML files of a Site
type Renderer struct {
	templates fs.FS
	logger    *zap.Logger
}

// NewRenderer uses the templates in dir, or the embedded ones when dir is empty
func NewRenderer(dir string, logger *zap.Logger) (*Renderer, error) {
	var templates fs.FS
	if dir != "" {
		templates = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, err
		}
		templates = sub
	}
	return &Renderer{templates: templates, logger: logger}, nil
}

// OutputDir returns where pages go. Staging builds are nested under the
// course id so several courses can share one site.
func OutputDir(siteDir string, course *domain.Course, production bool) string {
	if production {
		return siteDir
	}
	return filepath.Join(siteDir, course.ID)
}

// Render writes all pages under siteDir and returns the output directory
func (r *Renderer) Render(site *Site, siteDir string, production bool) (string, error) {
	outDir := OutputDir(siteDir, site.Course, production)
	if err := os.MkdirAll(filepath.Join(outDir, "p"), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	if !production {
		stub := fmt.Sprintf(`<a href="%s/">%s</a>`, site.Course.ID, site.Course.ID)
		if err := os.WriteFile(filepath.Join(siteDir, "index.html"), []byte(stub), 0o644); err != nil {
			return "", fmt.Errorf("failed to write redirect page: %w", err)
		}
	}

	base := page{
		Course:       site.Course,
		Mentors:      site.Mentors,
		Participants: site.Participants,
	}

	people := make([]*domain.Person, 0, len(site.Mentors)+len(site.Participants))
	people = append(people, site.Mentors...)
	people = append(people, site.Participants...)
	for _, person := range people {
		p := base
		p.Title = person.Name
		p.Root = "../"
		p.Person = person
		if err := r.render("person.html", filepath.Join(outDir, "p", person.Slug()+".html"), p); err != nil {
			return "", err
		}
	}

	index := base
	index.Title = site.Course.Title
	index.Content = template.HTML(site.Readme)
	if err := r.render("index.html", filepath.Join(outDir, "index.html"), index); err != nil {
		return "", err
	}

	articles := base
	articles.Title = "Articles"
	articles.Articles = site.Posts
	if err := r.render("articles.html", filepath.Join(outDir, "articles.html"), articles); err != nil {
		return "", err
	}

	projects := base
	projects.Title = "Projects"
	projects.Projects = site.Projects
	if err := r.render("projects.html", filepath.Join(outDir, "projects.html"), projects); err != nil {
		return "", err
	}

	about := base
	about.Title = "About"
	about.Stats = site.Stats
	about.Now = site.Stats.GeneratedAt
	if err := r.render("about.html", filepath.Join(outDir, "about.html"), about); err != nil {
		return "", err
	}

	r.logger.Info("Site rendered", zap.String("dir", outDir), zap.Int("people", len(people)))
	return outDir, nil
}

func (r *Renderer) render(name, path string, data page) error {
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(r.templates, layoutTemplate, name)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := tmpl.ExecuteTemplate(f, name, data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	// day trims an ISO-8601 timestamp to its date
	"day": func(ts string) string {
		if len(ts) > 10 {
			return ts[:10]
		}
		return ts
	},
}
