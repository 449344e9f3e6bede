package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/ppetru/igsync/internal/migrations"
	"github.com/ppetru/igsync/pkg/config"
	_ "modernc.org/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset]")
	}
	command := os.Args[1]

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.LedgerDSN())
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}
	defer db.Close()

	fmt.Printf("Ledger: %s\n", cfg.Ledger.Path)

	switch command {
	case "up":
		if err := migrations.Up(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := migrations.Down(db); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := migrations.Status(db); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "reset":
		if err := migrations.Reset(db); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
