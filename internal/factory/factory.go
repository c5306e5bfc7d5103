package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/vkaradzhov/belot-server/internal/dependencies/clock"
	"github.com/vkaradzhov/belot-server/internal/dependencies/random"
	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/auth"
	"github.com/vkaradzhov/belot-server/internal/services/bidding"
	"github.com/vkaradzhov/belot-server/internal/services/dealer"
	"github.com/vkaradzhov/belot-server/internal/services/doubling"
	"github.com/vkaradzhov/belot-server/internal/services/scoring"
	"github.com/vkaradzhov/belot-server/internal/services/session"
	"github.com/vkaradzhov/belot-server/internal/services/trick"
	"github.com/vkaradzhov/belot-server/internal/storage"
	"github.com/vkaradzhov/belot-server/internal/storage/memory"
	redisstorage "github.com/vkaradzhov/belot-server/internal/storage/redis"
	"github.com/vkaradzhov/belot-server/internal/transport/sse"
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
	DealerService     *dealer.Service
	BiddingEngine     *bidding.Engine
	DoublingEngine    *doubling.Engine
	TrickEngine       *trick.Engine
	ScoringEngine     *scoring.Engine
	SessionController *session.Controller
	AuthService       *auth.Service

	// Transport
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DealSeed seeds the shuffle for reproducible deals. Zero means
	// cryptographic shuffling.
	DealSeed int64
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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

	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.DealSeed != 0 {
		rnd = random.NewSeeded(cfg.DealSeed)
	}

	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	dealerService := dealer.New(rnd, logger)
	biddingEngine := bidding.New(logger)
	doublingEngine := doubling.New(logger)
	trickEngine := trick.New(logger)
	scoringEngine := scoring.New(logger)
	sessionController := session.NewController(
		store, dealerService, biddingEngine, doublingEngine, trickEngine, scoringEngine, clk, logger,
	)
	authService := auth.New(store, clk, rnd, authCfg)

	hub := sse.NewHub(logger)
	broadcaster := sse.NewBroadcaster(hub, logger)
	sessionController.SetBroadcaster(broadcaster)
	hub.SetOnDisconnect(func(playerID model.PlayerID) {
		sessionController.HandleDisconnect(context.Background(), playerID)
	})

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DealerService:     dealerService,
		BiddingEngine:     biddingEngine,
		DoublingEngine:    doublingEngine,
		TrickEngine:       trickEngine,
		ScoringEngine:     scoringEngine,
		SessionController: sessionController,
		AuthService:       authService,
		Hub:               hub,
		Broadcaster:       broadcaster,
	}
}
