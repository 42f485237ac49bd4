// Package generator runs the whole site build: load, enrich, validate,
// aggregate and render.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kurihiro0119/course-site/internal/aggregator"
	"github.com/kurihiro0119/course-site/internal/collector"
	"github.com/kurihiro0119/course-site/internal/config"
	"github.com/kurihiro0119/course-site/internal/domain"
	"github.com/kurihiro0119/course-site/internal/enricher"
	"github.com/kurihiro0119/course-site/internal/loader"
	"github.com/kurihiro0119/course-site/internal/projects"
	"github.com/kurihiro0119/course-site/internal/site"
	"github.com/kurihiro0119/course-site/internal/storage"
	"github.com/kurihiro0119/course-site/internal/storage/jsonfile"
	"github.com/kurihiro0119/course-site/internal/storage/postgres"
	"github.com/kurihiro0119/course-site/internal/storage/sqlite"
)

// Input directory and file names inside the data directory
const (
	MentorsDir      = "mentors"
	ParticipantsDir = "participants"
	CourseFile      = "course.json"
)

// Sources are the external collaborators of a build
type Sources struct {
	Profiles       collector.ProfileCollector
	Articles       collector.ArticleCollector
	ProfileLimiter collector.RateLimiter
	ArticleLimiter collector.RateLimiter
}

// Result describes a finished build
type Result struct {
	RunID        string
	OutputDir    string
	Mentors      []*domain.Person
	Participants []*domain.Person
	Posts        []*domain.Article
	Projects     []domain.Project
	Stats        domain.Stats
}

// Generator builds the site for one run
type Generator struct {
	cfg     *config.Config
	store   storage.Storage
	sources Sources
	logger  *zap.Logger
}

// New creates a Generator
func New(cfg *config.Config, store storage.Storage, sources Sources, logger *zap.Logger) *Generator {
	return &Generator{
		cfg:     cfg,
		store:   store,
		sources: sources,
		logger:  logger,
	}
}

// NewSources builds the GitHub and Forem collectors described by cfg
func NewSources(cfg *config.Config, logger *zap.Logger) (Sources, error) {
	profileLimiter := collector.NewRateLimiter(cfg.RateLimit, logger)
	profiles, err := collector.NewGitHubCollector(cfg.GitHubToken, cfg.GitHubAPIURL, profileLimiter)
	if err != nil {
		return Sources{}, err
	}
	articles, err := collector.NewForemCollector(cfg.ForemBaseURL, collector.NewOpenGraphCollector())
	if err != nil {
		return Sources{}, err
	}
	return Sources{
		Profiles:       profiles,
		Articles:       articles,
		ProfileLimiter: profileLimiter,
		ArticleLimiter: collector.NewRateLimiter(cfg.RateLimit, logger),
	}, nil
}

// OpenStorage returns the cache backend selected by cfg
func OpenStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStorage(cfg.PostgresURL)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, err
		}
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	default:
		return jsonfile.NewJSONStorage(cfg.CacheDir), nil
	}
}

// LoadPeople reads the mentor and participant directories
func (g *Generator) LoadPeople() (mentors, participants []*domain.Person, err error) {
	mentors, err = loader.ReadPeople(filepath.Join(g.cfg.DataDir, MentorsDir), domain.RoleMentor)
	if err != nil {
		return nil, nil, err
	}
	participants, err = loader.ReadPeople(filepath.Join(g.cfg.DataDir, ParticipantsDir), domain.RoleParticipant)
	if err != nil {
		return nil, nil, err
	}
	return mentors, participants, nil
}

// Validate loads the people and checks their projects without any network access
func (g *Generator) Validate() ([]domain.Project, error) {
	mentors, participants, err := g.LoadPeople()
	if err != nil {
		return nil, err
	}
	return projects.CheckProjects(append(mentors, participants...), g.logger)
}

// Run performs a full build. Nothing is rendered if any stage fails; caches
// saved by earlier stages stay on disk.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	logger := g.logger.With(zap.String("run_id", runID))
	logger.Info("Starting to generate site", zap.String("data_dir", g.cfg.DataDir), zap.Bool("production", g.cfg.Production))

	mentors, participants, err := g.LoadPeople()
	if err != nil {
		return nil, err
	}
	people := make([]*domain.Person, 0, len(mentors)+len(participants))
	people = append(people, mentors...)
	people = append(people, participants...)
	logger.Info("People loaded", zap.Int("mentors", len(mentors)), zap.Int("participants", len(participants)))

	articles := enricher.NewArticleEnricher(g.store, g.sources.Articles, g.sources.ArticleLimiter, logger)
	if err := articles.Enrich(ctx, people); err != nil {
		return nil, fmt.Errorf("article enrichment failed: %w", err)
	}
	profiles := enricher.NewProfileEnricher(g.store, g.sources.Profiles, g.sources.ProfileLimiter, logger)
	if err := profiles.Enrich(ctx, people); err != nil {
		return nil, fmt.Errorf("profile enrichment failed: %w", err)
	}

	allProjects, err := projects.CheckProjects(people, logger)
	if err != nil {
		return nil, err
	}

	posts := aggregator.CollectPosts(people)
	aggregator.SortByName(participants)
	stats := aggregator.ComputeStats(allProjects, posts, participants, g.cfg.Now)

	course, err := site.ReadCourse(filepath.Join(g.cfg.DataDir, CourseFile))
	if err != nil {
		return nil, err
	}

	readme, err := g.readme()
	if err != nil {
		return nil, err
	}

	renderer, err := site.NewRenderer(g.cfg.TemplatesDir, logger)
	if err != nil {
		return nil, err
	}
	outDir, err := renderer.Render(&site.Site{
		Course:       course,
		Mentors:      mentors,
		Participants: participants,
		Posts:        posts,
		Projects:     allProjects,
		Stats:        stats,
		Readme:       readme,
	}, g.cfg.SiteDir, g.cfg.Production)
	if err != nil {
		return nil, err
	}

	logger.Info("Site generated", zap.String("output", outDir),
		zap.Int("articles", stats.Articles), zap.Int("projects", stats.Projects))
	return &Result{
		RunID:        runID,
		OutputDir:    outDir,
		Mentors:      mentors,
		Participants: participants,
		Posts:        posts,
		Projects:     allProjects,
		Stats:        stats,
	}, nil
}

// readme renders the README, which is optional
func (g *Generator) readme() (string, error) {
	source, err := os.ReadFile(g.cfg.ReadmePath)
	if errors.Is(err, fs.ErrNotExist) {
		g.logger.Warn("README not found, index page has no content", zap.String("path", g.cfg.ReadmePath))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read README: %w", err)
	}
	return site.RenderReadme(source)
}
