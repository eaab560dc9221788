package config

import (
	"fmt"
	"os"
	"path/filepath"

	"todo-api/internal/repository/sqlite"
)

// CreateRepository opens the configured database file, creating its
// directory first when needed
func CreateRepository(config *Config) (sqlite.Repository, error) {
	dbPath := config.Database.Path

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
