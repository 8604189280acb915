package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/config"
	"github.com/sandeepkv93/dayplan/internal/logging"
	"github.com/sandeepkv93/dayplan/internal/planner"
	"github.com/sandeepkv93/dayplan/internal/storage"
	"github.com/sandeepkv93/dayplan/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dayplan failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath(), "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)

	logger, closeLog, err := logging.Open(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrCorruptState) {
			return err
		}
		logger.Warn("persisted state unreadable, starting empty", "err", err)
	}

	p := planner.New()
	p.Restore(snap)
	logger.Info("loaded snapshot", "tasks", len(snap.Tasks), "slots", len(snap.Slots))

	program := tea.NewProgram(update.NewModel(p, cfg.Priority()))
	if _, err := program.Run(); err != nil {
		return err
	}

	if err := store.Save(p.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	logger.Info("saved snapshot", "tasks", len(p.Tasks()))
	return nil
}

func openStore(cfg config.Config) (storage.Store, error) {
	path := cfg.ResolveDataPath()
	switch cfg.Backend {
	case config.BackendSQLite:
		return storage.OpenSQLite(path)
	default:
		return storage.NewJSONStore(path), nil
	}
}
