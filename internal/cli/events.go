package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/spf13/cobra"
)

const pingInterval = 30 * time.Second

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream live game state over a websocket",
		Long: `Connect to the game's websocket endpoint and print your view of the
game as it changes.

Every mutation to the session (a player joining, the game starting, a
vote landing) pushes a fresh state tailored to your player. The
connection is kept alive with periodic pings.

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			return streamEvents(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output state updates as JSON lines")

	return cmd
}

// wsMessage is the envelope for everything the server pushes
type wsMessage struct {
	Type  string          `json:"type"`
	State json.RawMessage `json:"state,omitempty"`
}

func streamEvents(jsonOutput bool) error {
	wsURL := websocketURL(cfg.ServerURL) +
		"/api/v1/games/" + cfg.SessionID + "/ws?player_id=" + cfg.PlayerID

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

	if !jsonOutput {
		fmt.Printf("Connected to game %s\n", cfg.SessionID)
	}

	// Keep the connection alive
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		ping := []byte(`{"type":"ping"}`)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.Write(ctx, websocket.MessageText, ping); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			// Context cancellation is expected
			if ctx.Err() != nil {
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "state_update":
			printStateUpdate(msg.State, jsonOutput)
		case "pong":
			// Keepalive reply, nothing to show
		}
	}
}

func printStateUpdate(raw json.RawMessage, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(raw))
		return
	}

	var state GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	summary := fmt.Sprintf("state=%s players=%d alive=%d", state.State, state.PlayerCount, state.AliveCount)
	if state.State == "voting" {
		summary += fmt.Sprintf(" votes=%d/%d", state.VotesSubmitted, state.AliveCount)
	}
	if state.Winner != "" {
		summary += " winner=" + state.Winner
	}
	fmt.Printf("[%s] %s\n", timestamp, summary)

	if state.LastElimination != nil {
		fmt.Printf("[%s] eliminated: %s (%s)\n", timestamp, state.LastElimination.Nickname, state.LastElimination.Role)
	}
}

func websocketURL(serverURL string) string {
	url := strings.TrimSuffix(serverURL, "/")
	if strings.HasPrefix(url, "https://") {
		return "wss://" + strings.TrimPrefix(url, "https://")
	}
	if strings.HasPrefix(url, "http://") {
		return "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url
}
