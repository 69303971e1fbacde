package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameLeaveCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameVoteStartCmd())
	cmd.AddCommand(newGameVoteCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameTimerCmd())

	return cmd
}

// requireSession ensures a game context is available
func requireSession() error {
	if cfg.SessionID == "" || cfg.PlayerID == "" {
		return fmt.Errorf("no active session: join a game first or pass --game and --player")
	}
	return nil
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CreateResult

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			if cfg.Output != "json" {
				fmt.Printf("Share the session id, then: dragonword game join %s <nickname>\n", result.SessionID)
			}
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <session-id> <nickname>",
		Short: "Join a game session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := args[0]
			nickname := args[1]

			req := map[string]string{"nickname": nickname}
			var result JoinResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", sessionID), req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(result.SessionID, result.PlayerID, result.Nickname); err != nil {
				return fmt.Errorf("failed to save session context: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the current game session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]string{"player_id": cfg.PlayerID}
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/leave", cfg.SessionID), req, nil); err != nil {
				return err
			}

			if err := cfg.ClearSession(); err != nil {
				return fmt.Errorf("failed to clear session context: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left the session")
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game (host only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]string{"player_id": cfg.PlayerID}
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/start", cfg.SessionID), req, nil); err != nil {
				return err
			}

			// Show the player their word right away
			var state GameState
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/state?player_id=%s", cfg.SessionID, cfg.PlayerID), &state); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(state)
			return nil
		},
	}
}

func newGameVoteStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call-vote",
		Short: "Call a voting round (host only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]string{"player_id": cfg.PlayerID}
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/voting/start", cfg.SessionID), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Voting started")
			return nil
		},
	}
}

func newGameVoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote <target-player-id>",
		Short: "Vote to eliminate a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]string{
				"player_id": cfg.PlayerID,
				"target_id": args[0],
			}
			var result VoteResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/vote", cfg.SessionID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <word>",
		Short: "Guess the villager word (eliminated dragon only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]string{
				"player_id": cfg.PlayerID,
				"guess":     args[0],
			}
			var result GuessResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/guess", cfg.SessionID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timer [seconds]",
		Short: "Show the voting timer, or set it (host only, 0 disables)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				seconds, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid seconds: %w", err)
				}

				req := map[string]any{
					"player_id": cfg.PlayerID,
					"seconds":   seconds,
				}
				if err := client.Put(fmt.Sprintf("/api/v1/games/%s/timer", cfg.SessionID), req, nil); err != nil {
					return err
				}

				if seconds == 0 {
					out.PrintMessage("Voting timer disabled")
				} else {
					out.PrintMessage(fmt.Sprintf("Voting timer set to %d seconds", seconds))
				}
				return nil
			}

			var result TimerResult
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/timer", cfg.SessionID), &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
