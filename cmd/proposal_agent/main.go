// Package main provides the entry point for the proposal assistant API server and CLI tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "proposal_agent",
	Short: "Freelance proposal assistant",
	Long: `Proposal assistant rates freelance marketplace projects, prices them and drafts a bid proposal.

It serves the HTTP API used by the browser extension and offers offline tools to analyze project files.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (defaults to ./proposal.yaml when present)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
