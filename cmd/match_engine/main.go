// Package main provides the entry point for the talent matching service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_engine",
	Short: "Talent matching service",
	Long:  "match_engine blends vector-similarity retrieval with metadata scoring to recommend jobs to seekers and candidates to employers, via REST API or one-off CLI runs.",
}

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the match_engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
