package cli

import (
	"context"

	"todo-api/internal/config"
	"todo-api/internal/logging"
)

// InitDBCommand creates the database file and the todos table, then exits
type InitDBCommand struct {
	config       *config.Config
	errorHandler *ErrorHandler
}

// NewInitDBCommand creates a new init-db command handler
func NewInitDBCommand(cfg *config.Config) *InitDBCommand {
	return &InitDBCommand{
		config:       cfg,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the init-db command
func (c *InitDBCommand) Execute(ctx context.Context) error {
	repo, err := config.CreateRepository(c.config)
	if err != nil {
		return c.errorHandler.Handle("initialize database", err)
	}
	if err := repo.Close(); err != nil {
		return c.errorHandler.Handle("close database", err)
	}

	logging.Info("Database ready at %s", c.config.Database.Path)
	return nil
}
