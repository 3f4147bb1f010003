package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/vidsearch/internal/config"
	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/invidious"
	"github.com/mmcdole/vidsearch/internal/log"
	"github.com/mmcdole/vidsearch/internal/player"
	"github.com/mmcdole/vidsearch/internal/service"
	"github.com/mmcdole/vidsearch/internal/store"
	"github.com/mmcdole/vidsearch/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		debug       bool
		query       string
		writeConfig bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&debug, "debug", false, "log at debug level")
	flag.StringVar(&query, "q", "", "search to run on startup")
	flag.BoolVar(&writeConfig, "write-config", false, "write the effective configuration to the config file and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: vidsearch [flags] [query...]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("vidsearch %s\n", Version)
		return
	}

	if query == "" {
		query = strings.Join(flag.Args(), " ")
	}

	if err := run(query, debug, writeConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(query string, debug, writeConfig bool) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if writeConfig {
		path, err := config.SaveConfig(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("vidsearch needs an interactive terminal")
	}

	// Setup logger
	logger, closer, err := log.SetupLogger(cfg.Logging, debug)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting vidsearch", "version", Version, "server", cfg.Server.URL)

	// Create Invidious client
	client, err := invidious.NewClient(cfg.Server.URL, logger, invidious.Options{
		Timeout:    cfg.Server.Timeout,
		SearchType: cfg.Search.Type,
		Region:     cfg.Search.Region,
	})
	if err != nil {
		return fmt.Errorf("failed to create invidious client: %w", err)
	}

	// Thumbnail pipeline (disabled entirely by search.thumbnails: false)
	var thumbnails domain.ThumbnailFetcher
	if cfg.Search.Thumbnails {
		cache := openThumbnailStore(cfg, logger)
		defer cache.Close()
		thumbnails = service.NewThumbnailService(client, cache, logger)
	}

	// Create services
	task := service.NewFetchTask(client, thumbnails, cfg.Search.ThumbnailWorkers, logger)
	coordinator := service.NewCoordinator(task, logger)
	defer coordinator.Close()

	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)
	playbackSvc := service.NewPlaybackService(launcher, cfg.Player.URLTemplate, logger)

	// Create TUI model
	model := tui.NewModel(coordinator, playbackSvc, tui.Options{
		ClearOnSubmit: cfg.Search.ClearOnSubmit,
		ListPercent:   cfg.UI.ListPercent,
		InitialQuery:  query,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// openThumbnailStore opens the on-disk cache, falling back to memory only
func openThumbnailStore(cfg *config.Config, logger *slog.Logger) *store.ThumbnailStore {
	cache, err := store.NewThumbnailStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		logger.Warn("thumbnail cache unavailable, using memory only", "dir", cfg.Cache.Dir, "error", err)
		cache, _ = store.NewThumbnailStore("", cfg.Server.URL)
		return cache
	}

	if cache.Persistent() && cfg.Cache.MaxAge > 0 {
		removed, err := cache.Prune(cfg.Cache.MaxAge)
		if err != nil {
			logger.Warn("failed to prune thumbnail cache", "error", err)
		} else if removed > 0 {
			logger.Debug("pruned thumbnail cache", "removed", removed)
		}
	}
	return cache
}
