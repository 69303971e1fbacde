package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/dragonword-go/internal/dependencies/clock"
	"github.com/mcoot/dragonword-go/internal/dependencies/random"
	"github.com/mcoot/dragonword-go/internal/realtime"
	"github.com/mcoot/dragonword-go/internal/services/game"
	"github.com/mcoot/dragonword-go/internal/services/words"
	"github.com/mcoot/dragonword-go/internal/storage"
	"github.com/mcoot/dragonword-go/internal/storage/memory"
	redisstorage "github.com/mcoot/dragonword-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordService *words.Service
	Controller  *game.Controller
	HubManager  *realtime.HubManager
	Broadcaster *realtime.Broadcaster
	Sweeper     *game.Sweeper
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionTTL is how long an untouched session lives (optional)
	// If zero, defaults to game.DefaultSessionTTL
	SessionTTL time.Duration
	// SweepInterval is how often expired sessions are swept (optional)
	// If zero, defaults to game.DefaultSweepInterval
	SweepInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.SessionTTL, cfg.SweepInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sessionTTL time.Duration,
	sweepInterval time.Duration,
	logger *slog.Logger,
) *App {
	// Create services
	wordService := words.NewService(store, rnd)
	controller := game.NewController(store, wordService, clk, rnd, logger, sessionTTL)
	hubManager := realtime.NewHubManager(logger)
	broadcaster := realtime.NewBroadcaster(hubManager, controller, logger)
	sweeper := game.NewSweeper(controller, hubManager, sweepInterval, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		WordService: wordService,
		Controller:  controller,
		HubManager:  hubManager,
		Broadcaster: broadcaster,
		Sweeper:     sweeper,
	}
}
