package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "dragonword",
		Short: "CLI tool for the dragonword game API",
		Long: `dragonword is a CLI tool for playing dragonword over its JSON API.

It supports creating and joining sessions, the full game flow (starting,
voting, the dragon's guess), and streaming live game state over a
websocket. After joining, the session and player ids are saved so
subsequent commands don't need them repeated.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load game context from file if not provided via flags
			if err := cfg.LoadSession(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: DRAGONWORD_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionID, "game", cfg.SessionID, "Session id (defaults to the saved session)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "Player id (defaults to the saved session)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session context file path (env: DRAGONWORD_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
