// Command cohumain runs a team definition through the CoHumAIn orchestration
// core and prints results, compliance reports, and agent summaries.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ashita-ai/cohumain/cmd/cohumain/commands"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run0())
}

func run0() int {
	// Load .env file if present (non-fatal).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
