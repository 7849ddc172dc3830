package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "logscope",
	Short: "Logscope - server log analysis dashboard",
	Long: `Logscope analyzes synthetic server log datasets: user logins, access
sessions, authentication attempts, security events, and service
subscriptions. It serves an interactive metrics dashboard and produces
standalone HTML profiling reports for each dataset.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// Load environment variables from .env file if present
		_ = godotenv.Load()
	})
}
