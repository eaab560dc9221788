package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"todo-api/internal/config"
	"todo-api/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "todos",
		Short: "A to-do list HTTP service backed by SQLite",
		Long: `todos serves a small JSON API for managing to-do items stored in a
local SQLite database.

ROUTES:
  GET    /todos[?completed=true|false]   List items, optionally by completion
  POST   /todos                          Create an item {"task", "priority"}
  PUT    /todos/complete-all             Mark every item completed
  PUT    /todos/{id}                     Update task, priority or completed
  DELETE /todos/{id}                     Delete an item

EXAMPLES:
  todos                                  # Serve on localhost:3000 using ./todos.db
  todos serve --port 8080                # Serve on another port
  todos init-db --db-path data/todos.db  # Create the database and exit

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env file > defaults

    TODO_SERVER_HOST                       Listen host (default: localhost)
    TODO_SERVER_PORT                       Listen port (default: 3000)
    TODO_SHUTDOWN_TIMEOUT                  Graceful shutdown timeout (default: 10s)
    TODO_DB_PATH                           Database file (default: todos.db)
    TODO_DB_DIR_PERMISSIONS                Mode for a created database directory (default: 0755)
    TODO_CORS_ALLOWED_ORIGINS              Comma separated origins (default: *)
    TODO_APP_VERBOSE                       Enable verbose output (default: false)
    TODO_DEBUG                             Enable debug output (default: unset)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Resolve configuration from every source before any command runs
			return root.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runServe(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every
// command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments parsed by Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command and log output
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// Config returns the configuration resolved by the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Server configuration
	flags.String("host", "", "Listen host (overrides TODO_SERVER_HOST)")
	flags.Int("port", 0, "Listen port (overrides TODO_SERVER_PORT)")
	flags.Duration("shutdown-timeout", 0, "Graceful shutdown timeout (overrides TODO_SHUTDOWN_TIMEOUT)")
	flags.StringSlice("cors-origins", nil, "Allowed CORS origins (overrides TODO_CORS_ALLOWED_ORIGINS)")

	// Database configuration
	flags.String("db-path", "", "Database file (overrides TODO_DB_PATH)")

	// Application configuration
	flags.Bool("verbose", false, "Enable verbose output (overrides TODO_APP_VERBOSE)")
	flags.String("env-file", config.DefaultEnvFile, "Dotenv file read before the environment; empty disables it")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the to-do HTTP API",
		Long: `Open (creating if needed) the database, then serve the HTTP API until
SIGINT or SIGTERM is received. In-flight requests get the shutdown timeout
to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runServe(cmd)
		},
	}

	initDBCmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the database and the todos table",
		Long:  "Create the database file and the todos table if they do not exist yet, then exit. Existing rows are left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewInitDBCommand(r.config).Execute(cmd.Context())
		},
	}

	r.cmd.AddCommand(
		serveCmd,
		initDBCmd,
	)
}

// runServe serves until the command context ends or a stop signal arrives
func (r *RootCommand) runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewServeCommand(r.config).Execute(ctx)
}

// loadConfig resolves the configuration and sets up logging for it
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()

	envFile, _ := flags.GetString("env-file")
	cfg, err := config.NewLoader().WithEnvFile(envFile).LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return NewErrorHandler().Handle("load configuration", err)
	}
	r.config = cfg

	logging.Init(r.cmd.OutOrStdout(), r.cmd.ErrOrStderr(), cfg.Application.Verbose)
	return nil
}

// getOverridesFromFlags collects the flags that were set on the command line
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("host") {
		host, _ := flags.GetString("host")
		overrides.Host = &host
	}
	if flags.Changed("port") {
		port, _ := flags.GetInt("port")
		overrides.Port = &port
	}
	if flags.Changed("shutdown-timeout") {
		timeout, _ := flags.GetDuration("shutdown-timeout")
		overrides.ShutdownTimeout = &timeout
	}
	if origins, _ := flags.GetStringSlice("cors-origins"); len(origins) > 0 {
		overrides.AllowedOrigins = origins
	}
	if flags.Changed("db-path") {
		path, _ := flags.GetString("db-path")
		overrides.DBPath = &path
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	return overrides
}
