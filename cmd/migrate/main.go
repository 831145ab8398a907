package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Rrens/docchat/internal/config"
	"github.com/Rrens/docchat/internal/logger"
	"github.com/Rrens/docchat/internal/repository/sqlite"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if _, err := logger.Setup(cfg.Logging, os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to set up logging: %v", err))
	}

	if cfg.Storage.Driver != "" && cfg.Storage.Driver != "sqlite" {
		fmt.Printf("Storage driver %q has no schema, nothing to migrate\n", cfg.Storage.Driver)
		return
	}

	fmt.Printf("Opening database at %s...\n", cfg.Storage.SQLite.Path)

	db, err := sqlite.Open(context.Background(), cfg.Storage.SQLite.Path)
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		fmt.Printf("Error applying migrations: %v\n", err)
		db.Close()
		os.Exit(1)
	}

	fmt.Println("Migrations applied successfully")
}
