package cli

import (
	"context"

	"todo-api/internal/api"
	"todo-api/internal/config"
	"todo-api/internal/logging"
	"todo-api/internal/services"
)

// ServeCommand opens storage and serves the HTTP API until ctx is done
type ServeCommand struct {
	config       *config.Config
	errorHandler *ErrorHandler
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(cfg *config.Config) *ServeCommand {
	return &ServeCommand{
		config:       cfg,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	repo, err := config.CreateRepository(c.config)
	if err != nil {
		return c.errorHandler.Handle("initialize database", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Error(err, "close database")
		}
	}()
	logging.Debug("using database %s", c.config.Database.Path)

	router := api.NewRouter(services.NewTodoService(repo), c.config.CORS.AllowedOrigins)
	server := api.NewServer(c.config.Address(), router, c.config.Server.ShutdownTimeout)

	if err := server.Run(ctx); err != nil {
		return c.errorHandler.Handle("serve", err)
	}
	return nil
}
