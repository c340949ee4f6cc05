package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bfhl/src/bfhl"
)

var (
	configPath      string
	baseURL         string
	themeName       string
	timeoutFlag     time.Duration
	logFile         string
	verbose         bool
	allowConcurrent bool

	cfg    *Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bfhl",
	Short: "Terminal client for the /bfhl classification endpoint",
	Long: `bfhl sends a JSON payload of the form {"data": [...]} to a /bfhl server
and shows the classified response, filtered by Alphabets, Numbers and
Highest Alphabet.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = resolveConfig(cmd)
		if err != nil {
			return err
		}

		// The interactive UI owns the terminal
		if cmd == cmd.Root() {
			logger, err = newTUILogger(cfg.Logging, verbose)
		} else {
			logger, err = newCLILogger(cfg.Logging, verbose)
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range GetAvailableThemes() {
			marker := " "
			if name == cfg.Theme {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = DefaultConfigPath()
		}
		if path == "" {
			return fmt.Errorf("cannot determine config path, use --config")
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: ~/.bfhl/config.yaml)")
	flags.StringVar(&baseURL, "base-url", "", "Server base URL (or set BFHL_API_URL env)")
	flags.StringVar(&themeName, "theme", "", "Theme name (or set BFHL_THEME env)")
	flags.DurationVar(&timeoutFlag, "timeout", bfhl.DefaultTimeout, "Request timeout, 0 disables it")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&allowConcurrent, "allow-concurrent", false, "Allow a new submit while one is in flight")

	rootCmd.AddCommand(submitCmd, themesCmd, initConfigCmd)
}

// resolveConfig layers flags over environment over file over defaults.
func resolveConfig(cmd *cobra.Command) (*Config, error) {
	path := configPath
	if path == "" {
		path = DefaultConfigPath()
	}
	c, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		c.BaseURL = baseURL
	}
	if flags.Changed("theme") {
		c.Theme = themeName
	}
	if flags.Changed("timeout") {
		c.Timeout = timeoutFlag.String()
	}
	if flags.Changed("log-file") {
		c.Logging.File = logFile
	}
	if flags.Changed("allow-concurrent") {
		c.AllowConcurrentSubmits = allowConcurrent
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(c *Config, log *zap.Logger) (*bfhl.Client, error) {
	return bfhl.NewClient(c.BaseURL,
		bfhl.WithTimeout(c.GetTimeout()),
		bfhl.WithLogger(log),
	)
}

func runInteractive(ctx context.Context) error {
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting bfhl", zap.String("endpoint", client.Endpoint()), zap.String("theme", cfg.Theme))

	m := newModel(ctx, client, LoadTheme(cfg.Theme), logger, modelOptions{
		allowConcurrent: cfg.AllowConcurrentSubmits,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
