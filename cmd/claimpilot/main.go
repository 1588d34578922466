package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claimpilot/claimpilot/internal/api"
	"github.com/claimpilot/claimpilot/internal/flow"
	"github.com/claimpilot/claimpilot/internal/genai"
	"github.com/claimpilot/claimpilot/internal/session"
	"github.com/claimpilot/claimpilot/internal/store"
	"github.com/claimpilot/claimpilot/internal/util"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for ClaimPilot state data
	DefaultStateDir = "/var/lib/claimpilot"
	// DefaultDataDirName is the default claim data directory under the state directory
	DefaultDataDirName = "data"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	claims, err := store.NewStore(store.WithDriver(*flags.dbDriver), store.WithDSN(*flags.dbDSN))
	if err != nil {
		slog.Error("Failed to create claim store", "error", err)
		os.Exit(1)
	}
	defer claims.Close()

	// The understanding service is optional; without it the engine runs on
	// deterministic normalization alone.
	var client genai.ClientInterface
	genaiClient, err := genai.NewClient(
		genai.WithAPIKey(*flags.openaiKey),
		genai.WithTimeout(*flags.genaiTimeout),
	)
	if err != nil {
		slog.Warn("Understanding service unavailable, continuing without it", "error", err)
	} else {
		client = genaiClient
	}

	engine := flow.NewEngine(flow.DefaultCatalog(), client)
	sessions := session.NewManager(*flags.sessionLimit, *flags.sessionTTL)

	server := api.NewServer(engine, sessions, claims, api.WithAddr(*flags.apiAddr))
	slog.Info("Bootstrapping ClaimPilot", "addr", *flags.apiAddr, "store_dsn_set", *flags.dbDSN != "", "genai", client != nil)
	if err := server.Run(); err != nil {
		slog.Error("ClaimPilot failed to run", "error", err)
		os.Exit(1)
	}
}

// Config holds environment configuration
type Config struct {
	StateDir     string
	DbDriver     string
	DatabaseURL  string
	OpenAIKey    string
	APIAddr      string
	GenAITimeout time.Duration
	SessionTTL   time.Duration
	SessionLimit int
}

// Flags holds command line flag values
type Flags struct {
	stateDir     *string
	dbDriver     *string
	dbDSN        *string
	openaiKey    *string
	apiAddr      *string
	genaiTimeout *time.Duration
	sessionTTL   *time.Duration
	sessionLimit *int
}

// initializeLogger sets up structured logging. Debug logging is on by
// default and can be disabled with CLAIMPILOT_DEBUG=false.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("CLAIMPILOT_DEBUG", true) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		StateDir:     os.Getenv("CLAIMPILOT_STATE_DIR"),
		DbDriver:     os.Getenv("CLAIMPILOT_DB_DRIVER"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		APIAddr:      os.Getenv("API_ADDR"),
		GenAITimeout: util.ParseDurationEnv("GENAI_TIMEOUT", genai.DefaultTimeout),
		SessionTTL:   util.ParseDurationEnv("SESSION_TTL", session.DefaultTTL),
		SessionLimit: util.ParseIntEnv("SESSION_LIMIT", session.DefaultCapacity),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No CLAIMPILOT_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// Without a database URL, default to JSON claim files in the state directory.
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDataDirName)
		slog.Debug("No database DSN provided, defaulting to JSON file store", "data_dir", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"CLAIMPILOT_STATE_DIR", config.StateDir,
		"CLAIMPILOT_DB_DRIVER", config.DbDriver,
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr,
		"GENAI_TIMEOUT", config.GenAITimeout,
		"SESSION_TTL", config.SessionTTL,
		"SESSION_LIMIT", config.SessionLimit)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:     flag.String("state-dir", config.StateDir, "state directory for ClaimPilot data (overrides $CLAIMPILOT_STATE_DIR)"),
		dbDriver:     flag.String("db-driver", config.DbDriver, "claim store driver: json, sqlite3 or postgres (overrides $CLAIMPILOT_DB_DRIVER)"),
		dbDSN:        flag.String("db-dsn", config.DatabaseURL, "claim store DSN or data directory (overrides $DATABASE_URL)"),
		openaiKey:    flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		apiAddr:      flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		genaiTimeout: flag.Duration("genai-timeout", config.GenAITimeout, "per-call understanding service timeout (overrides $GENAI_TIMEOUT)"),
		sessionTTL:   flag.Duration("session-ttl", config.SessionTTL, "session expiry TTL (overrides $SESSION_TTL)"),
		sessionLimit: flag.Int("session-limit", config.SessionLimit, "maximum number of live sessions (overrides $SESSION_LIMIT)"),
	}

	flag.Parse()

	// Keep the data directory tied to the state directory when only the
	// latter was overridden.
	if *flags.dbDSN == config.DatabaseURL && config.DatabaseURL == filepath.Join(config.StateDir, DefaultDataDirName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDataDirName)
		slog.Debug("Updated db-dsn based on state directory", "new_state_dir", *flags.stateDir)
	}

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDriver", *flags.dbDriver,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr,
		"genaiTimeout", *flags.genaiTimeout,
		"sessionTTL", *flags.sessionTTL,
		"sessionLimit", *flags.sessionLimit)

	return flags
}
