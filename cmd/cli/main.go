package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kurihiro0119/course-site/internal/collector"
	"github.com/kurihiro0119/course-site/internal/config"
	"github.com/kurihiro0119/course-site/internal/generator"
	"github.com/kurihiro0119/course-site/internal/storage"
)

var (
	dataDir     string
	storageType string
	production  bool
	verbose     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "course-site",
	Short: "Course website generator",
	Long: `A CLI tool that builds the static website of a course.

It reads one JSON file per mentor and participant, enriches them with
GitHub profiles and blog article metadata (cached between runs), checks
the declared project URLs and renders the HTML pages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the site",
	Long:  `Load all people, fetch missing profile and article data, check projects and render the site.`,
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the data files without network access",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

var cacheCmd = &cobra.Command{
	Use:       "cache [github_people|forem]",
	Short:     "List the keys stored in a cache",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{storage.NamespaceGitHubPeople, storage.NamespaceForem},
	RunE:      runCache,
}

var checkAccountsCmd = &cobra.Command{
	Use:   "check-accounts",
	Short: "Check that every participant's GitHub account exists",
	Args:  cobra.NoArgs,
	RunE:  runCheckAccounts,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "course data directory (default is DATA_DIR or .)")
	rootCmd.PersistentFlags().StringVar(&storageType, "storage", "", "cache storage: json, sqlite or postgres (default is STORAGE_TYPE or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	generateCmd.Flags().BoolVar(&production, "production", false, "write the production layout (also enabled by GITHUB_ACTIONS)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(checkAccountsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies the command line overrides on top of the environment
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.SetDataDir(dataDir)
	}
	if storageType != "" {
		cfg.StorageType = storageType
	}
	if production {
		cfg.Production = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := generator.OpenStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	sources, err := generator.NewSources(cfg, logger)
	if err != nil {
		return err
	}

	result, err := generator.New(cfg, store, sources, logger).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Site written to %s\n", result.OutputDir)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Mentors", strconv.Itoa(len(result.Mentors))})
	table.Append([]string{"Participants", strconv.Itoa(len(result.Participants))})
	table.Append([]string{"Articles", strconv.Itoa(result.Stats.Articles)})
	table.Append([]string{"Projects", strconv.Itoa(result.Stats.Projects)})
	table.Append([]string{"GitHub Pages", strconv.Itoa(result.Stats.GitHubPages)})
	table.Render()

	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	projects, err := generator.New(cfg, nil, generator.Sources{}, logger).Validate()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Project", "Type", "URL"})
	for _, p := range projects {
		table.Append([]string{p.Name, string(p.Kind), p.URL})
	}
	table.Render()
	fmt.Printf("%d projects OK\n", len(projects))

	return nil
}

func runCache(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := generator.OpenStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	entries, err := store.Load(cmd.Context(), name)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Size"})
	for _, key := range keys {
		table.Append([]string{key, strconv.Itoa(len(entries[key]))})
	}
	table.Render()
	fmt.Printf("%d entries in %s\n", len(keys), name)

	return nil
}

func runCheckAccounts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, participants, err := generator.New(cfg, nil, generator.Sources{}, logger).LoadPeople()
	if err != nil {
		return err
	}

	checker := collector.NewAccountChecker(cfg.GitHubWebURL)
	ctx := cmd.Context()

	missing := 0
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"GitHub", "Name", "Status"})
	for _, person := range participants {
		ok, err := checker.CheckAccount(ctx, person.GitHub)
		if err != nil {
			return err
		}
		status := "ok"
		if !ok {
			status = "missing"
			missing++
		}
		table.Append([]string{person.GitHub, person.Name, status})
	}
	table.Render()

	if missing > 0 {
		return fmt.Errorf("%d participant accounts not found", missing)
	}
	return nil
}
