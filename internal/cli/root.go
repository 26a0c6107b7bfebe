// Package cli implements the anirec command line tool.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "anirec",
	Short: "anime recommendations from a handful of ratings",
	Long: `anirec - anime recommendations from a handful of ratings
  - recommend: run the recommender over ratings given on the command line or stored for a user
  - catalog: list the genre categories and curated lists`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(catalogCmd)
}
