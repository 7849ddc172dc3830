package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"logscope/internal/config"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Generate profiling reports for all datasets",
	Long: `Generates one standalone HTML profiling report per dataset into the
reports directory. A dataset that fails to load or profile is reported
and skipped; the remaining datasets are still processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		_, reports, err := buildServices(cfg)
		if err != nil {
			return err
		}

		results := reports.GenerateAll(cmd.Context())
		failed := 0
		for _, result := range results {
			if result.Err != nil {
				failed++
				fmt.Printf("FAIL  %-20s %v\n", result.Kind, result.Err)
				continue
			}
			fmt.Printf("OK    %-20s %s\n", result.Kind, result.Path)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d reports failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}
