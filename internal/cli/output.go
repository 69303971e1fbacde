package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateResult:
		o.printCreateResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case GameState:
		o.printGameState(v)
	case VoteResult:
		o.printVoteResult(v)
	case GuessResult:
		o.printGuessResult(v)
	case TimerResult:
		o.printTimerResult(v)
	case StatsResult:
		o.printStatsResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CreateResult response type (matches API)
type CreateResult struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

// JoinResult response type
type JoinResult struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	Nickname  string `json:"nickname"`
	IsHost    bool   `json:"is_host"`
}

// StatePlayer response type
type StatePlayer struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	IsAlive  bool   `json:"is_alive"`
	IsHost   bool   `json:"is_host"`
	Role     string `json:"role,omitempty"`
}

// Elimination response type
type Elimination struct {
	PlayerID   string         `json:"player_id"`
	Nickname   string         `json:"nickname"`
	Role       string         `json:"role"`
	VoteCounts map[string]int `json:"vote_counts"`
	WasTie     bool           `json:"was_tie"`
}

// GameState response type
type GameState struct {
	SessionID          string        `json:"session_id"`
	State              string        `json:"state"`
	YourID             string        `json:"your_id"`
	YourWord           string        `json:"your_word,omitempty"`
	IsHost             bool          `json:"is_host"`
	IsAlive            bool          `json:"is_alive"`
	HasVoted           bool          `json:"has_voted"`
	Players            []StatePlayer `json:"players"`
	PlayerCount        int           `json:"player_count"`
	AliveCount         int           `json:"alive_count"`
	CanStart           bool          `json:"can_start"`
	VotesSubmitted     int           `json:"votes_submitted"`
	PlayerOrder        []string      `json:"player_order,omitempty"`
	VotingTimerSeconds int           `json:"voting_timer_seconds"`
	VotingEndsAt       string        `json:"voting_ends_at,omitempty"`
	LastElimination    *Elimination  `json:"last_elimination,omitempty"`
	YourRole           string        `json:"your_role,omitempty"`
	VillagerWord       string        `json:"villager_word,omitempty"`
	KnightWord         string        `json:"knight_word,omitempty"`
	Winner             string        `json:"winner,omitempty"`
	DragonGuess        string        `json:"dragon_guess,omitempty"`
}

// VoteResult response type
type VoteResult struct {
	RoundComplete bool         `json:"round_complete"`
	State         string       `json:"state"`
	Elimination   *Elimination `json:"elimination,omitempty"`
	Winner        string       `json:"winner,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Correct bool   `json:"correct"`
	Winner  string `json:"winner"`
}

// TimerResult response type
type TimerResult struct {
	Enabled          bool `json:"enabled"`
	Seconds          int  `json:"seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
	Expired          bool `json:"expired"`
}

// StatsResult response type
type StatsResult struct {
	TotalSessions  int `json:"total_sessions"`
	ActiveSessions int `json:"active_sessions"`
	TotalPlayers   int `json:"total_players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printCreateResult(c CreateResult) {
	fmt.Printf("Session: %s\n", c.SessionID)
	fmt.Printf("State: %s\n", c.State)
}

func (o *Output) printJoinResult(j JoinResult) {
	hostStr := ""
	if j.IsHost {
		hostStr = " [host]"
	}
	fmt.Printf("Joined session %s as %s%s\n", j.SessionID, j.Nickname, hostStr)
	fmt.Printf("Player ID: %s\n", j.PlayerID)
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Session: %s\n", g.SessionID)
	fmt.Printf("State: %s\n", g.State)

	if g.YourWord != "" {
		fmt.Printf("Your Word: %s\n", g.YourWord)
	}

	fmt.Printf("Players (%d, %d alive):\n", g.PlayerCount, g.AliveCount)
	for _, p := range g.Players {
		markers := []string{}
		if p.IsHost {
			markers = append(markers, "host")
		}
		if !p.IsAlive {
			markers = append(markers, "eliminated")
		}
		if p.Role != "" {
			markers = append(markers, p.Role)
		}
		markerStr := ""
		if len(markers) > 0 {
			markerStr = " [" + strings.Join(markers, ", ") + "]"
		}
		fmt.Printf("  - %s (%s)%s\n", p.Nickname, p.ID, markerStr)
	}

	if g.State == "voting" {
		fmt.Printf("Votes: %d/%d\n", g.VotesSubmitted, g.AliveCount)
		if g.VotingEndsAt != "" {
			fmt.Printf("Voting Ends: %s\n", g.VotingEndsAt)
		}
	}

	if g.LastElimination != nil {
		o.printElimination(g.LastElimination)
	}

	if g.State == "finished" {
		fmt.Printf("\nWinner: %s\n", g.Winner)
		fmt.Printf("Villager Word: %s\n", g.VillagerWord)
		fmt.Printf("Knight Word: %s\n", g.KnightWord)
		if g.DragonGuess != "" {
			fmt.Printf("Dragon's Guess: %s\n", g.DragonGuess)
		}
	}
}

func (o *Output) printElimination(e *Elimination) {
	tieStr := ""
	if e.WasTie {
		tieStr = " (tie broken at random)"
	}
	fmt.Printf("Eliminated: %s - was the %s%s\n", e.Nickname, e.Role, tieStr)

	ids := make([]string, 0, len(e.VoteCounts))
	for id := range e.VoteCounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %s: %d votes\n", id, e.VoteCounts[id])
	}
}

func (o *Output) printVoteResult(v VoteResult) {
	if !v.RoundComplete {
		fmt.Println("Vote recorded, waiting for others")
		return
	}

	fmt.Println("Round complete!")
	if v.Elimination != nil {
		o.printElimination(v.Elimination)
	}
	fmt.Printf("State: %s\n", v.State)
	if v.Winner != "" {
		fmt.Printf("Winner: %s\n", v.Winner)
	}
}

func (o *Output) printGuessResult(g GuessResult) {
	if g.Correct {
		fmt.Println("Correct! The dragon guessed the word.")
	} else {
		fmt.Println("Wrong guess.")
	}
	fmt.Printf("Winner: %s\n", g.Winner)
}

func (o *Output) printTimerResult(t TimerResult) {
	if !t.Enabled {
		fmt.Println("Voting timer: disabled")
		return
	}
	fmt.Printf("Voting timer: %d seconds\n", t.Seconds)
	if t.RemainingSeconds > 0 {
		fmt.Printf("Remaining: %d seconds\n", t.RemainingSeconds)
	}
	if t.Expired {
		fmt.Println("Timer expired - voting round was discarded")
	}
}

func (o *Output) printStatsResult(s StatsResult) {
	fmt.Printf("Sessions: %d (%d active)\n", s.TotalSessions, s.ActiveSessions)
	fmt.Printf("Players: %d\n", s.TotalPlayers)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
