package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haryoiro/orderdesk/internal/config"
	"github.com/haryoiro/orderdesk/internal/database"
	"github.com/haryoiro/orderdesk/internal/format"
	"github.com/haryoiro/orderdesk/internal/logger"
	"github.com/haryoiro/orderdesk/internal/structures"
	"github.com/haryoiro/orderdesk/internal/systems"
	"github.com/haryoiro/orderdesk/internal/ui"
	"github.com/haryoiro/orderdesk/internal/version"
)

const (
	appName = "orderdesk"
	banner  = `
  ___          _              _           _
 / _ \ _ __ __| | ___ _ __ __| | ___  ___| | __
| | | | '__/ _' |/ _ \ '__/ _' |/ _ \/ __| |/ /
| |_| | | | (_| |  __/ | | (_| |  __/\__ \   <
 \___/|_|  \__,_|\___|_|  \__,_|\___||___/_|\_\
                    orders at the terminal`
)

func main() {
	// Parse command line flags
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showFiles   = flag.Bool("files", false, "Show file locations")
		showVersion = flag.Bool("version", false, "Show version")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
		clearCache  = flag.Bool("clear-cache", false, "Delete the local order cache")
		seedCount   = flag.Int("seed", 0, "Fill the local cache with N demo orders and exit")
		configFlag  = flag.String("config", "", "Config file (.toml, .yaml or .yml)")
	)

	flag.Parse()

	if *showHelp {
		fmt.Println(banner)
		fmt.Println("\nUsage: orderdesk [OPTIONS]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		fmt.Println("\nKeyboard shortcuts:")
		fmt.Println("    ↑ or k      - Move selection up")
		fmt.Println("    ↓ or j      - Move selection down")
		fmt.Println("    PgUp/PgDn   - Move by one screen")
		fmt.Println("    g / G       - Jump to top / bottom")
		fmt.Println("    /           - Search orders")
		fmt.Println("    Enter or l  - Expand order details")
		fmt.Println("    Esc         - Go back / clear search")
		fmt.Println("    r           - Reload from the cache")
		fmt.Println("    Ctrl+C/D    - Quit application")
		fmt.Println("\nDebug options:")
		fmt.Println("  --debug     - Enable debug logging to file")
		return
	}

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	configDir, dataDir := getDirectories()
	configPath := filepath.Join(configDir, "config.toml")
	if *configFlag != "" {
		configPath = *configFlag
	}
	logFile := filepath.Join(dataDir, appName+".log")

	if *showFiles {
		fmt.Println("# orderdesk file locations:")
		fmt.Printf("  Config: %s\n", configPath)
		fmt.Printf("  Data:   %s\n", dataDir)
		fmt.Printf("  Logs:   %s\n", logFile)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.Store.Path
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, appName+".db")
	}

	if *clearCache {
		fmt.Println("⚠️  WARNING: This will delete the local order cache at:")
		fmt.Printf("  %s\n", dbPath)
		fmt.Println("\nAre you sure you want to continue? (y/N): ")

		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cache clearing cancelled.")
			return
		}

		for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				fmt.Printf("Failed to remove %s: %v\n", path, err)
			}
		}
		fmt.Println("✓ Order cache cleared")
		return
	}

	if err := logger.InitLogger(logFile, cfg.Log, *debugMode); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.CloseLogger()
	logger.Info("%s starting, debug mode: %v", version.String(), *debugMode)

	store, err := database.OpenSQLite(dbPath)
	if err != nil {
		logger.Fatal("Failed to open order cache: %v", err)
	}
	logger.Debug("Order cache opened at %s", dbPath)

	if *seedCount > 0 {
		if err := database.Seed(context.Background(), store, *seedCount, int64(*seedCount), cfg.Store.Currency); err != nil {
			store.Close()
			logger.Fatal("Failed to seed order cache: %v", err)
		}
		n, _ := store.Count(context.Background())
		store.Close()
		fmt.Printf("✓ Added %d demo orders, %d orders cached\n", *seedCount, n)
		return
	}

	appSystems := systems.New(cfg, store, configPath)
	if err := appSystems.Start(context.Background()); err != nil {
		appSystems.Stop()
		logger.Fatal("Failed to start systems: %v", err)
	}
	defer func() {
		logger.Debug("Stopping all application systems...")
		if err := appSystems.Stop(); err != nil {
			logger.Warn("Failed to close order cache: %v", err)
		}
	}()
	logger.Info("All systems started successfully")

	if err := ui.RunSimple(appSystems, cfg); err != nil {
		logger.Error("Application error: %v", err)
		return
	}

	logger.Info("orderdesk shutdown complete")
}

// loadConfig loads path, writing the defaults there on first run. Invalid
// files are an error; unreadable ones fall back to the defaults.
func loadConfig(path string) (*structures.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, config.ErrInvalidConfig):
		return nil, err
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Default()
		if err := config.Save(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save default config: %v\n", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
	}

	if _, err := format.CurrencyMinor(0, cfg.Store.Currency); err != nil {
		return nil, fmt.Errorf("%w: store.currency: %v", config.ErrInvalidConfig, err)
	}
	return cfg, nil
}

func getDirectories() (config, data string) {
	// Use XDG Base Directory specification
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		config = filepath.Join(xdgConfig, appName)
	} else if home, err := os.UserHomeDir(); err == nil {
		config = filepath.Join(home, ".config", appName)
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		data = filepath.Join(xdgData, appName)
	} else if home, err := os.UserHomeDir(); err == nil {
		data = filepath.Join(home, ".local", "share", appName)
	}

	os.MkdirAll(config, 0755)
	os.MkdirAll(data, 0755)

	return
}
