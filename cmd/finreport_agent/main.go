// Package main provides the entry point for the financial report discovery agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finreport_agent",
	Short: "Financial report discovery agent",
	Long:  "Discovers, classifies, and selects annual financial report URLs for a batch of organizations, emitting one primary report and five alternate references per organization.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
