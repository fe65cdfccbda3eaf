// Package cli wires the wikiview commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kyaoi/wikiview/internal/app"
	"github.com/kyaoi/wikiview/internal/config"
	"github.com/kyaoi/wikiview/internal/logging"
)

var (
	cfgFile    string
	contentDir string
	startPage  string
)

var rootCmd = &cobra.Command{
	Use:   "wikiview",
	Short: "Browse an Arch-wiki style knowledge base in the terminal",
	Long: `wikiview shows a small wiki in the terminal: a navigation sidebar, a
table of contents, rendered pages and code samples that can be copied to
the clipboard. Pages ship with the binary and can be overridden from a
directory of markdown files.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "", "directory of <page>.md files overriding the built-in pages")
	rootCmd.Flags().StringVar(&startPage, "page", "", "page to open first")
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}
	if f := cmd.Flags().Lookup("page"); f != nil && f.Changed {
		cfg.StartPage = startPage
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.LogFile, level); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logging.Close()

	slog.Info("starting wikiview", "version", Version, "config", configPath())
	if err := app.Run(cfg); err != nil {
		slog.Error("program exited with error", "error", err)
		return err
	}
	return nil
}
