package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	version    = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "claimwizard",
	Short: "Guided disability claim wizard with a scripted assistant",
	Long: `ClaimWizard walks a veteran through a four step disability claim:
select conditions, review evidence requirements, upload evidence and submit.
A chat assistant answers common questions along the way.

Quick Start:
  claimwizard serve --config config.yaml   # Run the web server
  claimwizard conditions ears              # Search the condition catalog`,
	Version:      version,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(conditionsCmd)
}
