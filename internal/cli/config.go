package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string
	Verbose     bool

	// Active game context, loaded from the session file unless
	// overridden by flags
	SessionID string
	PlayerID  string
}

// sessionContext is what gets persisted between invocations so that
// commands don't need the ids repeated every time
type sessionContext struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	Nickname  string `json:"nickname,omitempty"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("DRAGONWORD_SERVER", "http://localhost:8080"),
		SessionFile: getEnvOrDefault("DRAGONWORD_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadSession fills in the game context from the session file. Flags
// that already set the ids win.
func (c *Config) LoadSession() error {
	if c.SessionID != "" && c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No saved session is fine
		}
		return err
	}

	var saved sessionContext
	if err := json.Unmarshal(data, &saved); err != nil {
		return err
	}

	if c.SessionID == "" {
		c.SessionID = saved.SessionID
	}
	if c.PlayerID == "" {
		c.PlayerID = saved.PlayerID
	}
	return nil
}

// SaveSession persists the game context for later invocations
func (c *Config) SaveSession(sessionID, playerID, nickname string) error {
	c.SessionID = sessionID
	c.PlayerID = playerID

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(sessionContext{
		SessionID: sessionID,
		PlayerID:  playerID,
		Nickname:  nickname,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, data, 0600)
}

// ClearSession forgets the saved game context
func (c *Config) ClearSession() error {
	err := os.Remove(c.SessionFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dragonword/session"
	}
	return filepath.Join(home, ".dragonword", "session")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
