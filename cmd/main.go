package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd serves the site when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "clinic-cms",
	Short: "Clinic website and admin CMS",
	Long: `clinic-cms serves the public clinic website and the admin panel.

Run without arguments to start the HTTP server. The maintenance
subcommands (migrate, seed, cache) are also the allow-listed scripts
the admin panel can run.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.Flags().BoolVar(&warmCache, "warm-cache", false, "Precompute public pages before accepting traffic")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
