// migrate-to-postgres copies character data from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/stormhavenmud.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user stormhaven \
//	    -pg-password stormhaven \
//	    -pg-database stormhaven
package main

import (
	"flag"
	"log"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/database"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/stormhavenmud.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "stormhaven", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "stormhaven", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "stormhaven", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	source, err := database.Open(database.DefaultConfig(*sqlitePath))
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer source.Close()

	names, err := source.ListCharacters()
	if err != nil {
		log.Fatalf("Failed to list characters: %v", err)
	}
	log.Printf("Found %d characters to migrate", len(names))

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
		for _, name := range names {
			log.Printf("  would migrate: %s", name)
		}
		return
	}

	pgCfg := database.Config{
		Driver: "postgres",
		Postgres: database.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			User:     *pgUser,
			Password: *pgPassword,
			Database: *pgDatabase,
			SSLMode:  *pgSSLMode,
		},
	}
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	target, err := database.Open(pgCfg)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer target.Close()

	migrated := 0
	for _, name := range names {
		snap, err := source.LoadCharacter(name)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", name, err)
		}
		if err := target.SaveCharacter(snap); err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
		migrated++
	}

	log.Println("====================================")
	log.Printf("Migration complete! Characters migrated: %d", migrated)
}
