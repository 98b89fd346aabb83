// goverdict-mcp: viability verdicts as MCP tools
//
// Serves calculate_viability, viability_thresholds and get_verdict over
// stdio. Configuration comes from the same environment as the HTTP server;
// with DATABASE_URL set, verdicts are stored and get_verdict can find them.
//
// Usage:
//
//	goverdict-mcp            # Start MCP server (stdio transport)
//	goverdict-mcp version    # Print version
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"goverdict/adapters/mcptools"
	"goverdict/internal"
	"goverdict/internal/config"
	"goverdict/internal/container"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("goverdict-mcp v%s\n", mcptools.Version)
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
			os.Exit(1)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// stdout carries the MCP protocol; everything else goes to stderr
	log.SetOutput(os.Stderr)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(cfg.Log.Level))

	c, err := container.New(cfg)
	if err != nil {
		return fmt.Errorf("creating container: %w", err)
	}
	defer c.Shutdown(context.Background())

	ctx := context.Background()
	if cfg.Database.URL != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()
		if err := c.InitWithDatabase(db); err != nil {
			return err
		}
	}
	if err := c.InitWithRedis(ctx); err != nil {
		return err
	}

	service, err := c.Build()
	if err != nil {
		return err
	}

	return server.ServeStdio(mcptools.NewServer(service))
}
