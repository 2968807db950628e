package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main loads a product file into the configured document store.
// Usage: go run ./cmd/seed --file products.json
// This is a standalone development tool; the storefront itself never writes.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
