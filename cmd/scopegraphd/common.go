package main

import (
	"context"
	"fmt"

	"github.com/viant/afs"

	"github.com/viant/scopegraph/config"
	"github.com/viant/scopegraph/parse"
	"github.com/viant/scopegraph/repository"
	"github.com/viant/scopegraph/workspace"
)

// loadConfig reads configPath if set, applying the override snapshot path
// flag on top, otherwise returns config.Default().
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if snapshotPath != "" {
		cfg.SnapshotPath = snapshotPath
	}
	return cfg, nil
}

// openRepository builds a Repository from the effective configuration and
// bulk-initializes it from root: a snapshot load if configured, otherwise a
// full reparse of every recognized source file under root.
func openRepository(ctx context.Context, root string) (*repository.Repository, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	fs := afs.New()
	repo := repository.New(cfg, parse.NewRegistry(), fs, nil)

	paths, err := workspace.SourceFiles(ctx, fs, root)
	if err != nil {
		return nil, fmt.Errorf("list source files under %s: %w", root, err)
	}
	if err := repo.BulkInit(ctx, paths); err != nil {
		return nil, fmt.Errorf("bulk init: %w", err)
	}
	return repo, nil
}
