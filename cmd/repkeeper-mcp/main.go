package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/repkeeper/internal/config"
	repmcp "github.com/claude/repkeeper/internal/mcp"
	"github.com/claude/repkeeper/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode)")
	remoteURL := flag.String("url", "", "base URL of a running server (remote mode)")
	token := flag.String("token", "", "bearer token for remote mode")
	flag.Parse()

	// Logs go to stderr; stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds repmcp.DataSource
	switch {
	case *remoteURL != "":
		if *token == "" {
			fmt.Fprintln(os.Stderr, "remote mode needs -token (obtain one via GET /api/v1/users/auth)")
			os.Exit(1)
		}
		ds = repmcp.NewHTTPClient(*remoteURL, *token)
		log.Info("remote mode", "url", *remoteURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		var store *storage.Store
		switch cfg.Database.Driver {
		case "postgres":
			store, err = storage.OpenPostgres(context.Background(), cfg.Database.DSN())
		case "sqlite":
			store, err = storage.OpenSQLite(cfg.Database.Path)
		}
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		ds = store
		log.Info("local mode", "driver", cfg.Database.Driver)
	default:
		fmt.Fprintln(os.Stderr, "Usage: repkeeper-mcp -config config.yaml  (local)")
		fmt.Fprintln(os.Stderr, "       repkeeper-mcp -url https://host -token <jwt>  (remote)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	mcpServer := repmcp.New(ds, Version, log)
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
