package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agendum/agendum/internal/config"
	"github.com/agendum/agendum/internal/database"
	"github.com/agendum/agendum/internal/utils"
	"github.com/agendum/agendum/pkg/assistant"
	"github.com/agendum/agendum/pkg/chat"
	"github.com/agendum/agendum/pkg/event"
	"github.com/agendum/agendum/pkg/user"
)

var (
	configPath string
	userFlag   string
)

// rootCmd represents the base command for the agendum application
var rootCmd = &cobra.Command{
	Use:   "agendum",
	Short: "Smart calendar with CLI, web API and assistant front-ends",
	Long: `agendum keeps calendar events in a local SQLite store and exposes
the same operations through a command-line interface, a web API, a
natural-language assistant, and an MCP tool server for AI clients.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "agendum version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config/application.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "user to act as (defaults to the configured user)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListAllCmd())
	rootCmd.AddCommand(newListDateCmd())
	rootCmd.AddCommand(newListTitleCmd())
	rootCmd.AddCommand(newListNextCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newDeleteTitleCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMcpCmd())
}

// runtime bundles everything a one-shot command invocation needs: the open
// store, the services, and a context scoped to the acting user.
type runtime struct {
	cfg       config.Application
	db        *sql.DB
	events    event.EventService
	assistant *assistant.Assistant
	ctx       context.Context
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	clock := &utils.SystemClock{}
	events := event.NewEventService(event.NewEventRepo(db), clock)
	chatLog := chat.NewLog(cfg.Chat.HistoryPath)

	username := userFlag
	if username == "" {
		username = cfg.Chat.DefaultUser
	}

	return &runtime{
		cfg:       cfg,
		db:        db,
		events:    events,
		assistant: assistant.New(events, chatLog, clock),
		ctx:       user.WithUser(context.Background(), username),
	}, nil
}

func (rt *runtime) Close() {
	_ = rt.db.Close()
}
