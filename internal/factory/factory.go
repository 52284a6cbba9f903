package factory

import (
	"errors"
	"io"
	"log/slog"

	"worldmark/internal/credstore"
	credmemory "worldmark/internal/credstore/memory"
	credredis "worldmark/internal/credstore/redis"
	"worldmark/internal/dependencies/clock"
	"worldmark/internal/dependencies/random"
	"worldmark/internal/geo"
	"worldmark/internal/palette"
	"worldmark/internal/services/auth"
	"worldmark/internal/services/mapview"
	"worldmark/internal/services/participants"
	"worldmark/internal/visitstore"
	storememory "worldmark/internal/visitstore/memory"
	storesqlite "worldmark/internal/visitstore/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
)

// Credential store type constants
const (
	CredStoreTypeMemory = "memory"
	CredStoreTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store visitstore.Store
	// StorePath is the backing file of the visit store, or "" when the
	// store is not file-backed
	StorePath string
	Creds     credstore.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Loaded data
	Countries *geo.Catalog
	Colours   *palette.Catalog

	// Services
	ParticipantsService *participants.Service
	MapviewService      *mapview.Service
	AuthService         *auth.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// BoundaryPath is the path to the country boundary GeoJSON
	BoundaryPath string
	// PalettePath is the path to the palette definition file (optional)
	// If loading fails, the built-in default palette is used
	PalettePath string
	// StorageType selects the visit store backend ("memory" or "sqlite")
	// If empty, defaults to "sqlite"
	StorageType string
	// StorePath is the visit store file (required if StorageType is "sqlite")
	StorePath string
	// CredStoreType selects the credential backend ("memory" or "redis")
	// If empty, defaults to "memory"
	CredStoreType string
	// RedisConfig holds Redis connection settings (required if CredStoreType is "redis")
	RedisConfig *credredis.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	countries, err := geo.Load(cfg.BoundaryPath)
	if err != nil {
		return nil, err
	}

	colours, err := palette.Load(cfg.PalettePath)
	if err != nil {
		logger.Warn("could not load palettes, using built-in defaults",
			slog.String("error", err.Error()),
		)
		colours = palette.Default()
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQLite
	}

	var store visitstore.Store
	var storePath string
	switch storageType {
	case StorageTypeMemory:
		store = storememory.New()
	case StorageTypeSQLite:
		sqliteStore := storesqlite.New(cfg.StorePath)
		store = sqliteStore
		storePath = sqliteStore.Path()
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'sqlite'")
	}

	app := &App{
		Store:     store,
		StorePath: storePath,
		Countries: countries,
		Colours:   colours,
	}

	credStoreType := cfg.CredStoreType
	if credStoreType == "" {
		credStoreType = CredStoreTypeMemory
	}

	switch credStoreType {
	case CredStoreTypeMemory:
		app.Creds = credmemory.New()
	case CredStoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when CredStoreType is redis")
		}
		redisCreds, err := credredis.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		app.Creds = redisCreds
		app.closers = append(app.closers, redisCreds)
	default:
		return nil, errors.New("invalid CredStoreType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app.Clock = clk
	app.Random = rnd
	app.ParticipantsService = participants.New(store, clk, logger)
	app.MapviewService = mapview.New(countries, colours)
	app.AuthService = auth.New(app.Creds, clk, authCfg, logger)

	return app, nil
}

// Close releases any held connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
