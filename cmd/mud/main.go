package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/character"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/class"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/config"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/database"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/leveling"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/logger"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/progression"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
)

func main() {
	serverConfigFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	dbFile := flag.String("db", "data/stormhavenmud.db", "Path to character database file (SQLite)")
	dbDriver := flag.String("db-driver", "sqlite", "Database driver: sqlite or postgres")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting Stormhaven MUD Server")

	serverCfg, err := config.LoadConfig(*serverConfigFile)
	if err != nil {
		logger.Warning("Failed to load server config, using defaults", "path", *serverConfigFile, "error", err)
		serverCfg = config.DefaultConfig()
	}

	// Load the skill catalog
	catalog := skills.NewCatalog()
	if err := catalog.LoadFromYAML(serverCfg.Data.SkillsFile); err != nil {
		log.Fatalf("Failed to load skill catalog: %v", err)
	}
	logger.Info("Skill catalog loaded", "path", serverCfg.Data.SkillsFile, "skills", catalog.Len())

	// Load class definitions
	registry := class.NewRegistry()
	if err := registry.LoadDir(serverCfg.Data.ClassesDir); err != nil {
		log.Fatalf("Failed to load class definitions: %v", err)
	}
	if registry.Len() == 0 {
		log.Fatalf("No class definitions found in %s", serverCfg.Data.ClassesDir)
	}
	logger.Info("Classes loaded", "dir", serverCfg.Data.ClassesDir, "classes", registry.Names())

	// Open the character database
	dbCfg := database.DefaultConfig(*dbFile)
	dbCfg.Driver = *dbDriver
	db, err := database.Open(dbCfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	params := serverCfg.Progression.Params()
	residents, err := loadResidents(db, registry, params)
	if err != nil {
		log.Fatalf("Failed to load characters: %v", err)
	}
	logger.Info("Characters loaded", "count", len(residents))

	logger.Info("MUD Server running",
		"heartbeat", serverCfg.HeartbeatInterval(), "save_interval", serverCfg.SaveInterval())
	logger.Info("Press Ctrl+C to shutdown")

	runLoop(serverCfg, db, residents)

	logger.Info("Server stopped")
}

// loadResidents restores every stored character and runs their offline
// catch-up. Characters whose class no longer exists load with an empty
// ladder so their skills still pulse.
func loadResidents(db *database.Database, registry *class.Registry, params progression.Params) ([]*character.Character, error) {
	names, err := db.ListCharacters()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	residents := make([]*character.Character, 0, len(names))
	for _, name := range names {
		snap, err := db.LoadCharacter(name)
		if err != nil {
			return nil, err
		}

		c := character.Restore(snap, buildLadder(snap, registry), params)
		if deltas := c.OnLogin(now); len(deltas) > 0 {
			logger.Info("Offline catch-up applied", "character", name, "skills", len(deltas))
		}
		residents = append(residents, c)
	}
	return residents, nil
}

func buildLadder(snap character.Snapshot, registry *class.Registry) *leveling.Ladder {
	cfg, ok := registry.Get(snap.Class)
	if !ok {
		logger.Warning("Character class not registered, leveling disabled",
			"character", snap.Name, "class", snap.Class)
		return nil
	}
	return class.BuildLadder(snap.Name, cfg)
}

// runLoop is the heartbeat: tick every resident on the game cadence,
// flush to the database periodically, and save once more on shutdown.
func runLoop(cfg *config.ServerConfig, db *database.Database, residents []*character.Character) {
	heartbeat := time.NewTicker(cfg.HeartbeatInterval())
	defer heartbeat.Stop()

	var save <-chan time.Time
	if interval := cfg.SaveInterval(); interval > 0 {
		saveTicker := time.NewTicker(interval)
		defer saveTicker.Stop()
		save = saveTicker.C
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case now := <-heartbeat.C:
			for _, c := range residents {
				c.Tick(now)
			}
		case <-save:
			saveAll(db, residents)
		case sig := <-sigChan:
			logger.Info("Shutting down server", "signal", sig.String())
			now := time.Now()
			for _, c := range residents {
				c.OnLogout(now)
			}
			saveAll(db, residents)
			return
		}
	}
}

func saveAll(db *database.Database, residents []*character.Character) {
	saved := 0
	for _, c := range residents {
		if err := db.SaveCharacter(c.Snapshot()); err != nil {
			logger.Error("Failed to save character", "character", c.Name, "error", err)
			continue
		}
		saved++
	}
	logger.Info("Characters saved", "count", saved)
}
