package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adnanhd/adnanhd.github.io/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site",
	Long: `Loads every data record, merges the timeline, renders the sections and
markdown content through the layouts, and writes the site to the output
directory. The output directory is only replaced once all data has loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		builder, err := site.NewBuilder(appConfig, logger)
		if err != nil {
			return err
		}
		res, err := builder.Build(cmd.Context())
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages into %s in %s\n", res.Pages, res.OutputDir, res.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
