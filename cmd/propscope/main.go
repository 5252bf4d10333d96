// Package main is the entry point for the propscope CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mfaias/propscope/internal/cli"
	"github.com/mfaias/propscope/internal/logging"
)

func main() {
	// Optional .env for DATABASE_URL and scraping credentials.
	_ = godotenv.Load()

	logging.Setup(os.Getenv("PROPSCOPE_ENV") != "production")

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
