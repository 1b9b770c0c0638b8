// Command parseo converts withholding and perception spreadsheets into the
// fixed-format text files the Argentine tax authorities accept.
package main

import (
	"fmt"
	"os"

	_ "github.com/JonMunkholm/parseos/internal/core/formats" // Register all formats
)

// Set at build time via -ldflags "-X main.Version=... -X main.BuildDate=...".
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
