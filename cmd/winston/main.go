// Package main provides the entry point for the Winston lead scraper.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "winston",
	Short: "Winston Global Scraper",
	Long:  "Winston discovers pages for a search keyword, extracts contact leads with emails, phones and social links, scores them, and exports CSV artifacts via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
