package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/swexplorer/internal/config"
	"github.com/mmcdole/swexplorer/internal/log"
	"github.com/mmcdole/swexplorer/internal/store"
	"github.com/mmcdole/swexplorer/internal/swapi"
	"github.com/mmcdole/swexplorer/internal/tui"
	"github.com/mmcdole/swexplorer/internal/tui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "swexplorer",
	Short:         "Browse Star Wars characters from the terminal",
	Long:          "swexplorer pages through the Star Wars API character list and resolves each character's homeworld, films and vehicles on demand.",
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ~/.config/swexplorer/config.yaml)")
	flags.String("base-url", "", "API root URL")
	flags.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("log-file", "", "log file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired components shared by every command
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
	store  *store.Store
}

// newApp loads configuration and wires logger, client and store
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, closer = log.NullLogger(), io.NopCloser(nil)
	}
	slog.SetDefault(logger)

	client := swapi.NewClient(cfg.SWAPI.BaseURL, swapi.Options{
		Timeout:   cfg.SWAPI.Timeout,
		RateLimit: cfg.SWAPI.RateLimit,
		UserAgent: cfg.SWAPI.UserAgent,
	}, logger)

	st := store.New(client, store.Options{
		BaseURL:            cfg.SWAPI.BaseURL,
		ResolveConcurrency: cfg.Store.ResolveConcurrency,
	}, logger)

	logger.Info("starting swexplorer", "version", Version, "command", cmd.Name(), "baseURL", cfg.SWAPI.BaseURL)
	return &app{cfg: cfg, logger: logger, closer: closer, store: st}, nil
}

func (a *app) Close() {
	a.logger.Info("shutting down")
	_ = a.closer.Close()
}

func runRoot(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		a.logger.Info("stdout is not a terminal, printing page", "page", a.cfg.UI.DefaultPage)
		return printPage(cmd.Context(), cmd.OutOrStdout(), a.store, a.cfg.UI.DefaultPage)
	}

	styles.ApplyTheme(a.cfg.UI.Theme)
	model := tui.NewModel(a.store, tui.Options{
		StartPage:      a.cfg.UI.DefaultPage,
		RequestTimeout: a.cfg.SWAPI.Timeout,
		Logger:         a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
