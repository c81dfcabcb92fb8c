package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "signalist",
	Short: "Market-data resolution backend",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
