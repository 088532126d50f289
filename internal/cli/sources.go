package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconforge/iconforge/pkg/source"
)

// sourcesCommand creates the sources command, which lists discoverable icon
// categories without packing anything.
func (c *CLI) sourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources [source-dir]",
		Short: "List icon categories found under a source directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := sourceRoot(args)
			categories, err := source.Discover(root)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				printInfo("No icon categories found under %s", root)
				return nil
			}

			total := 0
			for _, cat := range categories {
				fmt.Println(StyleValue.Render(cat.Name))
				printDetail("slug: %s", cat.Slug)
				printDetail("icons: %d", len(cat.Icons))
				total += len(cat.Icons)
			}
			printNewline()
			printSuccess("%d categories, %d icons", len(categories), total)
			return nil
		},
	}
}
