package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kdigest/internal/adfilter"
	"kdigest/internal/config"
	"kdigest/internal/database"
	"kdigest/internal/digest"
	"kdigest/internal/fetch"
	"kdigest/internal/netinfo"
	"kdigest/internal/pipeline"
	"kdigest/internal/render"
	"kdigest/internal/search"
	"kdigest/internal/server"
	"kdigest/internal/weather"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "kdigest",
	Short:   "Daily Korean keyword digests",
	Long:    "kdigest searches Google News for configured keywords, filters and summarizes the results, and assembles daily news/blog digests with weather and network info.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kdigest", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/kdigest/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure keywords, blog sites, and the weather address.")
		return nil
	},
}

// newsPipeline wires the news search, fetch and filter chain.
func newsPipeline() *pipeline.Pipeline {
	searcher := search.NewNews(0)
	extractor := fetch.New(fetch.NewsProfile(), 0)
	return pipeline.New(
		pipeline.NewsProfile(adfilter.Mode(cfg.Search.News.AdFilter)),
		searcher.FetchItems,
		extractor.PageText,
	)
}

// blogPipeline wires the blog-platform chain.
func blogPipeline() *pipeline.Pipeline {
	searcher := search.NewBlogs(cfg.Search.Blogs.Sites, 0)
	extractor := fetch.New(fetch.BlogProfile(), 0)
	return pipeline.New(
		pipeline.BlogProfile(adfilter.Mode(cfg.Search.Blogs.AdFilter)),
		searcher.FetchItems,
		extractor.PageText,
	)
}

// --- search command ---

var searchSection string

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search one keyword and print the results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword := args[0]
		ctx := context.Background()

		if searchSection == "news" || searchSection == "both" {
			opts := pipeline.Options{
				MaxResults: cfg.Search.News.MaxResults,
				HoursBack:  cfg.Search.News.HoursBack,
			}
			records := newsPipeline().Run(ctx, keyword, opts)
			fmt.Print(render.Text(records, keyword, render.News))
		}
		if searchSection == "blogs" || searchSection == "both" {
			opts := pipeline.Options{
				MaxResults: cfg.Search.Blogs.MaxResults,
				HoursBack:  cfg.Search.Blogs.HoursBack,
			}
			records := blogPipeline().Run(ctx, keyword, opts)
			fmt.Print(render.Text(records, keyword, render.Blogs))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchSection, "section", "s", "both", "Section to search: news, blogs, or both")
}

// --- run command ---

var printBody bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build today's digest and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		var wc *weather.Client
		if cfg.Weather.Enabled {
			wc = weather.New()
		}
		var nc *netinfo.Client
		if cfg.Network.Enabled {
			nc = netinfo.New()
		}

		builder := digest.NewBuilder(cfg, newsPipeline(), blogPipeline(), wc, nc)
		d := builder.Build(context.Background())

		if err := digest.Store(db, d); err != nil {
			return err
		}

		fmt.Printf("Digest for %s stored (%d items).\n", d.RunDate, d.ItemCount())
		if printBody {
			fmt.Print(d.BodyText)
		} else {
			fmt.Println("Run 'kdigest serve' to view it, or 'kdigest show' to print it.")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&printBody, "print", false, "Print the digest body after storing")
}

// --- history command ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored digests",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		digests, err := db.GetAllDigests()
		if err != nil {
			return err
		}
		if len(digests) == 0 {
			fmt.Println("No digests stored. Run 'kdigest run' first.")
			return nil
		}

		fmt.Println("Stored digests:")
		for _, d := range digests {
			fmt.Printf("  %s  %3d items  %s\n", d.RunDate, d.ItemCount, d.Subject)
		}
		return nil
	},
}

// --- show command ---

var showMarkdown bool

var showCmd = &cobra.Command{
	Use:   "show [run-date]",
	Short: "Print a stored digest (latest when no date is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runDate := ""
		if len(args) > 0 {
			runDate = args[0]
		} else {
			runDate, err = db.GetLastRunDate()
			if err != nil {
				return err
			}
			if runDate == "" {
				fmt.Println("No digests stored. Run 'kdigest run' first.")
				return nil
			}
		}

		d, err := db.GetDigest(runDate)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("no digest stored for %s", runDate)
		}

		if showMarkdown {
			fmt.Print(d.BodyMarkdown)
		} else {
			fmt.Print(d.BodyText)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showMarkdown, "markdown", false, "Print the markdown body instead of plain text")
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}
		lastRun, _ := db.GetLastRunDate()

		fmt.Printf("Keywords: %d configured\n", len(cfg.Keywords))
		if lastRun != "" {
			fmt.Printf("Last run: %s\n", lastRun)
		} else {
			fmt.Println("Last run: never")
		}
		fmt.Println("\nStored:")
		fmt.Printf("  Digests: %d\n", stats.TotalDigests)
		fmt.Printf("  Items: %d (%d news, %d blog)\n", stats.TotalItems, stats.NewsItems, stats.BlogItems)
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "kdigest.db")
	return database.Open(dbPath)
}
