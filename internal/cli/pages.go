package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyaoi/wikiview/internal/content"
	"github.com/kyaoi/wikiview/internal/wiki"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the available pages",
	Args:  cobra.NoArgs,
	RunE:  runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := content.NewSource(cfg.ContentDir)
	if err != nil {
		return err
	}
	library := content.NewLibrary(src)

	out := cmd.OutOrStdout()
	for _, page := range wiki.Pages() {
		doc, err := library.Document(page)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-14s %s\n", page.Slug(), doc.Title)
	}
	return nil
}
