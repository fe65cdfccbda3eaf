package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/kyaoi/wikiview/internal/content"
	"github.com/kyaoi/wikiview/internal/render"
	"github.com/kyaoi/wikiview/internal/wiki"
)

var showCmd = &cobra.Command{
	Use:   "show <page>",
	Short: "Print a rendered page without starting the viewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Int("width", 80, "wrap width in columns")
	showCmd.Flags().String("theme", "", "dark or light (defaults to the configured theme)")
	showCmd.Flags().Bool("plain", false, "strip colours and styles")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	page, err := wiki.ParsePage(args[0])
	if err != nil {
		return err
	}

	theme := cfg.InitialTheme()
	if name, _ := cmd.Flags().GetString("theme"); name != "" {
		theme, err = wiki.ParseTheme(name)
		if err != nil {
			return err
		}
	}
	width, _ := cmd.Flags().GetInt("width")
	plain, _ := cmd.Flags().GetBool("plain")

	src, err := content.NewSource(cfg.ContentDir)
	if err != nil {
		return err
	}
	doc, err := content.NewLibrary(src).Document(page)
	if err != nil {
		return err
	}
	r, err := render.New(width, theme)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Document(doc, nil, nil)
	if err != nil {
		return err
	}

	text := out.Content
	if plain {
		text = ansi.Strip(text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
