package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/dragonword-go/internal/dependencies/clock"
	"github.com/mcoot/dragonword-go/internal/dependencies/random"
	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/services/roles"
	"github.com/mcoot/dragonword-go/internal/services/voting"
	"github.com/mcoot/dragonword-go/internal/services/win"
	"github.com/mcoot/dragonword-go/internal/services/words"
	"github.com/mcoot/dragonword-go/internal/storage"
)

const (
	// SessionIDLength is the length of generated session ids
	SessionIDLength = 12
	// SessionIDAlphabet is the characters used in session ids
	SessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultSessionTTL is how long a session lives from creation
	DefaultSessionTTL = time.Hour
)

// VoteResult reports what a vote did to the session. Elimination and
// winner fields are only set when the vote completed the round.
type VoteResult struct {
	RoundComplete bool
	Elimination   *model.Elimination
	NewState      model.SessionState
	Winner        model.Winner
}

// GuessResult reports the outcome of the dragon's word guess
type GuessResult struct {
	Correct bool
	Winner  model.Winner
}

// TimerStatus describes the voting timer as of the check
type TimerStatus struct {
	Enabled          bool
	Seconds          int
	RemainingSeconds int
	// Expired is true when this check returned the session to the
	// playing state
	Expired bool
}

// Stats summarizes the session registry
type Stats struct {
	TotalSessions  int `json:"total_sessions"`
	ActiveSessions int `json:"active_sessions"`
	TotalPlayers   int `json:"total_players"`
}

// Controller owns the session registry and the per-session state machine.
// Every mutating operation takes the session's lock from the lock table,
// loads the session, mutates it and saves it back, so concurrent requests
// against one session are serialized while unrelated sessions proceed
// independently.
type Controller struct {
	storage     storage.Storage
	wordService *words.Service
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	sessionTTL  time.Duration
	locks       *lockTable
}

// NewController creates a game controller. A non-positive sessionTTL
// falls back to DefaultSessionTTL.
func NewController(
	storage storage.Storage,
	wordService *words.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	sessionTTL time.Duration,
) *Controller {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Controller{
		storage:     storage,
		wordService: wordService,
		clock:       clock,
		random:      random,
		logger:      logger,
		sessionTTL:  sessionTTL,
		locks:       newLockTable(),
	}
}

// CreateSession creates an empty session in the lobby state with a fresh
// collision-checked id.
func (c *Controller) CreateSession(ctx context.Context) (*model.Session, error) {
	var id model.SessionID
	for {
		id = model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet))
		exists, err := c.storage.SessionExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := model.NewSession(id, c.clock.Now())
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
	)
	return session, nil
}

// GetSession retrieves a session by id
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// Join adds a player to a lobby-state session and returns the new player.
// The first player to join becomes the host.
func (c *Controller) Join(ctx context.Context, id model.SessionID, nickname string) (*model.Player, error) {
	cleaned, err := model.ValidateNickname(nickname)
	if err != nil {
		return nil, err
	}

	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireLobby(session); err != nil {
		return nil, err
	}
	if len(session.Players) >= model.MaxPlayers {
		return nil, model.ErrSessionFull
	}
	if session.PlayerByNickname(cleaned) != nil {
		return nil, model.ErrNicknameTaken
	}

	player := model.NewPlayer(cleaned, len(session.Players) == 0, c.clock.Now())
	session.Players = append(session.Players, player)

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(player.ID)),
		slog.String("nickname", player.Nickname),
		slog.Int("player_count", len(session.Players)),
	)
	return player, nil
}

// Leave removes a player from a session that has not yet started. If the
// host leaves, the longest-joined remaining player becomes host; an
// emptied session is deleted.
func (c *Controller) Leave(ctx context.Context, id model.SessionID, playerID model.PlayerID) error {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if err := requireLobby(session); err != nil {
		return err
	}

	idx := -1
	for i, p := range session.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.ErrPlayerNotFound
	}

	wasHost := session.Players[idx].IsHost
	session.Players = append(session.Players[:idx], session.Players[idx+1:]...)

	if len(session.Players) == 0 {
		if err := c.storage.DeleteSession(ctx, id); err != nil {
			return err
		}
		c.locks.forget(id)
		c.logger.Info("empty session deleted",
			slog.String("session_id", string(id)),
		)
		return nil
	}

	if wasHost {
		session.Players[0].IsHost = true
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("player left",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(session.Players)),
	)
	return nil
}

// Start moves the session out of the lobby: assigns roles, draws a word
// pair and shuffles the clue-giving order. Only the host may start.
func (c *Controller) Start(ctx context.Context, id model.SessionID, actorID model.PlayerID) error {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if err := requireHost(session, actorID); err != nil {
		return err
	}
	if err := requireLobby(session); err != nil {
		return err
	}
	if len(session.Players) < model.MinPlayers {
		return model.ErrTooFewPlayers
	}

	if err := roles.Assign(session.Players, c.random); err != nil {
		return err
	}

	pair, err := c.wordService.RandomPair(ctx)
	if err != nil {
		return err
	}
	session.VillagerWord = pair.VillagerWord
	session.KnightWord = pair.KnightWord

	order := make([]model.PlayerID, len(session.Players))
	for i, p := range session.Players {
		order[i] = p.ID
	}
	c.random.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	session.PlayerOrder = order

	session.State = model.StatePlaying
	session.ClearVotes()
	session.StartedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("session started",
		slog.String("session_id", string(id)),
		slog.Int("player_count", len(session.Players)),
	)
	return nil
}

// StartVoting moves the session from playing to voting. Only the host may
// call the vote.
func (c *Controller) StartVoting(ctx context.Context, id model.SessionID, actorID model.PlayerID) error {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if err := requireHost(session, actorID); err != nil {
		return err
	}
	if session.State != model.StatePlaying {
		return model.ErrNotPlayingPhase
	}
	if session.AliveCount() < model.MinAliveVoters {
		return model.ErrTooFewAlive
	}

	session.State = model.StateVoting
	session.ClearVotes()
	session.VotingStartedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("voting started",
		slog.String("session_id", string(id)),
		slog.Int("alive_count", session.AliveCount()),
	)
	return nil
}

// Vote records one player's vote. When the last alive player votes, the
// round is tallied and the session transitions: to the dragon's guess
// phase if the dragon was eliminated, to finished if the dragon won by
// survival, back to playing otherwise.
func (c *Controller) Vote(ctx context.Context, id model.SessionID, voterID, targetID model.PlayerID) (*VoteResult, error) {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	// An expired timer closes the round before this vote is considered
	if c.expireTimerLocked(session) {
		if err := c.storage.SaveSession(ctx, session); err != nil {
			return nil, err
		}
		return nil, model.ErrNotVotingPhase
	}

	if err := voting.CanVote(session, voterID); err != nil {
		return nil, err
	}
	if err := voting.ValidateTarget(session, targetID); err != nil {
		return nil, err
	}

	session.Votes[voterID] = targetID

	result := &VoteResult{NewState: session.State}

	if voting.AllVotesSubmitted(session) {
		elimination := voting.Tally(session, c.random)
		session.ClearVotes()

		result.RoundComplete = true
		result.Elimination = elimination

		if elimination.Role == model.RoleDragon {
			session.State = model.StateDragonGuess
		} else if winner, over := win.DetermineWinner(session); over {
			c.finish(session, winner)
			result.Winner = winner
		} else {
			session.State = model.StatePlaying
		}
		result.NewState = session.State
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if result.RoundComplete {
		c.logger.Info("vote round complete",
			slog.String("session_id", string(id)),
			slog.String("eliminated", string(result.Elimination.PlayerID)),
			slog.String("eliminated_role", string(result.Elimination.Role)),
			slog.Bool("was_tie", result.Elimination.WasTie),
			slog.String("new_state", string(session.State)),
		)
	}
	return result, nil
}

// Guess resolves the eliminated dragon's word guess and finishes the
// session. The guess matches the villager word case-insensitively after
// trimming surrounding whitespace.
func (c *Controller) Guess(ctx context.Context, id model.SessionID, actorID model.PlayerID, guess string) (*GuessResult, error) {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.State != model.StateDragonGuess {
		return nil, model.ErrNotGuessPhase
	}

	actor := session.Player(actorID)
	if actor == nil {
		return nil, model.ErrPlayerNotFound
	}
	if actor.Role != model.RoleDragon {
		return nil, model.ErrNotDragon
	}

	trimmed := strings.TrimSpace(guess)
	correct := strings.EqualFold(trimmed, session.VillagerWord)

	session.DragonGuess = trimmed
	winner := model.WinnerVillagers
	if correct {
		winner = model.WinnerDragon
	}
	c.finish(session, winner)

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("dragon guessed",
		slog.String("session_id", string(id)),
		slog.Bool("correct", correct),
		slog.String("winner", string(winner)),
	)
	return &GuessResult{Correct: correct, Winner: winner}, nil
}

// SetVotingTimer configures the per-round voting timer while in the
// lobby. Zero disables the timer; otherwise the value must lie in
// [MinVotingTimerSeconds, MaxVotingTimerSeconds].
func (c *Controller) SetVotingTimer(ctx context.Context, id model.SessionID, actorID model.PlayerID, seconds int) error {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if err := requireHost(session, actorID); err != nil {
		return err
	}
	if err := requireLobby(session); err != nil {
		return err
	}
	if seconds != 0 && (seconds < model.MinVotingTimerSeconds || seconds > model.MaxVotingTimerSeconds) {
		return model.ErrInvalidTimer
	}

	session.VotingTimerSeconds = seconds
	return c.storage.SaveSession(ctx, session)
}

// CheckVotingTimer reports the timer state, lazily expiring it: an
// overrun timer returns the session to playing with the round's votes
// discarded.
func (c *Controller) CheckVotingTimer(ctx context.Context, id model.SessionID) (*TimerStatus, error) {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	status := &TimerStatus{
		Enabled: session.VotingTimerSeconds > 0,
		Seconds: session.VotingTimerSeconds,
	}

	if c.expireTimerLocked(session) {
		if err := c.storage.SaveSession(ctx, session); err != nil {
			return nil, err
		}
		status.Expired = true
		c.logger.Info("voting timer expired",
			slog.String("session_id", string(id)),
		)
		return status, nil
	}

	if status.Enabled && session.State == model.StateVoting {
		deadline := session.VotingStartedAt.Add(time.Duration(session.VotingTimerSeconds) * time.Second)
		remaining := deadline.Sub(c.clock.Now())
		if remaining > 0 {
			status.RemainingSeconds = int(remaining.Round(time.Second) / time.Second)
		}
	}
	return status, nil
}

// expireTimerLocked returns the session to the playing state if the
// voting timer has run out. Caller holds the session lock and saves.
func (c *Controller) expireTimerLocked(session *model.Session) bool {
	if session.State != model.StateVoting || session.VotingTimerSeconds <= 0 {
		return false
	}
	deadline := session.VotingStartedAt.Add(time.Duration(session.VotingTimerSeconds) * time.Second)
	if c.clock.Now().Before(deadline) {
		return false
	}
	session.State = model.StatePlaying
	session.ClearVotes()
	session.VotingStartedAt = time.Time{}
	return true
}

// finish moves the session to its terminal state
func (c *Controller) finish(session *model.Session, winner model.Winner) {
	session.State = model.StateFinished
	session.Winner = winner
	session.FinishedAt = c.clock.Now()
}

// RemoveSession deletes a session in any state. Removing a session that
// does not exist is not an error.
func (c *Controller) RemoveSession(ctx context.Context, id model.SessionID) error {
	defer c.locks.acquire(id)()

	err := c.storage.DeleteSession(ctx, id)
	if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		return err
	}
	c.locks.forget(id)

	if err == nil {
		c.logger.Info("session removed",
			slog.String("session_id", string(id)),
		)
	}
	return nil
}

// SweepExpired deletes every session older than the TTL, regardless of
// state, and returns the removed ids.
func (c *Controller) SweepExpired(ctx context.Context) ([]model.SessionID, error) {
	sessions, err := c.storage.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	var removed []model.SessionID
	for _, session := range sessions {
		if now.Sub(session.CreatedAt) < c.sessionTTL {
			continue
		}
		if err := c.sweepOne(ctx, session.ID); err != nil {
			return removed, err
		}
		removed = append(removed, session.ID)
	}

	if len(removed) > 0 {
		c.logger.Info("expired sessions swept",
			slog.Int("removed", len(removed)),
		)
	}
	return removed, nil
}

// sweepOne deletes a single expired session under its lock, re-checking
// age in case the list read raced a deletion.
func (c *Controller) sweepOne(ctx context.Context, id model.SessionID) error {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			c.locks.forget(id)
			return nil
		}
		return err
	}
	if c.clock.Now().Sub(session.CreatedAt) < c.sessionTTL {
		return nil
	}

	if err := c.storage.DeleteSession(ctx, id); err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		return err
	}
	c.locks.forget(id)
	return nil
}

// Stats summarizes the registry. Active sessions are those not yet
// finished.
func (c *Controller) Stats(ctx context.Context) (*Stats, error) {
	sessions, err := c.storage.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalSessions: len(sessions)}
	for _, session := range sessions {
		if session.State != model.StateFinished {
			stats.ActiveSessions++
		}
		stats.TotalPlayers += len(session.Players)
	}
	return stats, nil
}

// Snapshot builds one player's view of a session. Reads take the session
// lock so a snapshot never observes a half-applied mutation; an overrun
// voting timer is expired on the way.
func (c *Controller) Snapshot(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*Snapshot, error) {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.expireTimerLocked(session) {
		if err := c.storage.SaveSession(ctx, session); err != nil {
			return nil, err
		}
	}

	return BuildSnapshot(session, playerID)
}

// Snapshots builds views for several players under a single lock
// acquisition, so broadcast recipients all see the same session state.
// Players no longer in the session are skipped.
func (c *Controller) Snapshots(ctx context.Context, id model.SessionID, playerIDs []model.PlayerID) (map[model.PlayerID]*Snapshot, error) {
	defer c.locks.acquire(id)()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshots := make(map[model.PlayerID]*Snapshot, len(playerIDs))
	for _, playerID := range playerIDs {
		snap, err := BuildSnapshot(session, playerID)
		if err != nil {
			continue
		}
		snapshots[playerID] = snap
	}
	return snapshots, nil
}

// requireLobby distinguishes the reason a non-lobby session rejects
// lobby-only operations.
func requireLobby(session *model.Session) error {
	switch session.State {
	case model.StateLobby:
		return nil
	case model.StateFinished:
		return model.ErrSessionFinished
	default:
		return model.ErrSessionStarted
	}
}

// requireHost checks the actor exists and holds the host seat
func requireHost(session *model.Session, actorID model.PlayerID) error {
	actor := session.Player(actorID)
	if actor == nil {
		return model.ErrPlayerNotFound
	}
	if !actor.IsHost {
		return model.ErrNotHost
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context) (*model.Session, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	Join(ctx context.Context, id model.SessionID, nickname string) (*model.Player, error)
	Leave(ctx context.Context, id model.SessionID, playerID model.PlayerID) error
	Start(ctx context.Context, id model.SessionID, actorID model.PlayerID) error
	StartVoting(ctx context.Context, id model.SessionID, actorID model.PlayerID) error
	Vote(ctx context.Context, id model.SessionID, voterID, targetID model.PlayerID) (*VoteResult, error)
	Guess(ctx context.Context, id model.SessionID, actorID model.PlayerID, guess string) (*GuessResult, error)
	SetVotingTimer(ctx context.Context, id model.SessionID, actorID model.PlayerID, seconds int) error
	CheckVotingTimer(ctx context.Context, id model.SessionID) (*TimerStatus, error)
	RemoveSession(ctx context.Context, id model.SessionID) error
	SweepExpired(ctx context.Context) ([]model.SessionID, error)
	Stats(ctx context.Context) (*Stats, error)
	Snapshot(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*Snapshot, error)
	Snapshots(ctx context.Context, id model.SessionID, playerIDs []model.PlayerID) (map[model.PlayerID]*Snapshot, error)
}

var _ ControllerInterface = (*Controller)(nil)
