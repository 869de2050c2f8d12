package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/config"
	sqlitestore "github.com/sqlpilot/sqlpilot/internal/store/sqlite"
)

func main() {
	force := flag.Bool("force", false, "drop and recreate tables before seeding")
	flag.Parse()

	cfg, err := config.LoadFromEnv("sqlpilot-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.Path == "" {
		fmt.Fprintln(os.Stderr, "SQLPILOT_DB_PATH is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sqlitestore.Seed(ctx, cfg.Database.Path, *force); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("sample database ready at %s (10 customers, 15 orders)\n", cfg.Database.Path)
}
