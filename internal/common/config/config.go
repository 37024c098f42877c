package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kariua-parish/parish-site/internal/common/constants"
)

var (
	ErrMissingRequiredEnv  = errors.New("missing required environment variable")
	ErrInvalidStoreBackend = errors.New("STORE_BACKEND must be one of: postgres, memory")
	ErrInvalidTimezone     = errors.New("NOTIFY_TIMEZONE is not a known location")
)

type StoreBackend string

const (
	StoreBackendPostgres StoreBackend = "postgres"
	StoreBackendMemory   StoreBackend = "memory"
)

type Config struct {
	HTTPPort       string
	RequestTimeout time.Duration

	StoreBackend StoreBackend
	DatabaseURL  string

	Telegram TelegramConfig
	OpenAI   OpenAIConfig

	CircuitBreakerThreshold int32
	CircuitBreakerTimeout   time.Duration
	CircuitBreakerReset     time.Duration

	LogDir   string
	LogLevel string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIURL   string
	Timeout  time.Duration
	Location *time.Location
}

type OpenAIConfig struct {
	APIKey    string
	APIURL    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Load reads the process environment once. A .env file in the working
// directory is applied first when present; real environment values win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	env := envReader{lookup: lookup}

	databaseURL := env.get("DATABASE_URL", "")

	backend, err := resolveStoreBackend(env.get("STORE_BACKEND", ""), databaseURL)
	if err != nil {
		return Config{}, err
	}
	if backend == StoreBackendPostgres && databaseURL == "" {
		return Config{}, fmt.Errorf("%w: DATABASE_URL", ErrMissingRequiredEnv)
	}

	tzName := env.get("NOTIFY_TIMEZONE", constants.DefaultNotifyTimezone)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidTimezone, tzName)
	}

	return Config{
		HTTPPort:       env.get("HTTP_PORT", constants.DefaultHTTPPort),
		RequestTimeout: env.duration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		StoreBackend:   backend,
		DatabaseURL:    databaseURL,
		Telegram: TelegramConfig{
			BotToken: env.get("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   env.get("TELEGRAM_CHAT_ID", ""),
			APIURL:   strings.TrimRight(env.get("TELEGRAM_API_URL", constants.DefaultTelegramAPIURL), "/"),
			Timeout:  env.duration("NOTIFY_TIMEOUT", constants.DefaultNotifyTimeout),
			Location: loc,
		},
		OpenAI: OpenAIConfig{
			APIKey:    env.get("OPENAI_API_KEY", ""),
			APIURL:    strings.TrimRight(env.get("OPENAI_API_URL", constants.DefaultOpenAIAPIURL), "/"),
			Model:     env.get("OPENAI_MODEL", constants.DefaultOpenAIModel),
			MaxTokens: env.int("OPENAI_MAX_TOKENS", constants.DefaultOpenAIMaxTokens),
			Timeout:   env.duration("CHAT_TIMEOUT", constants.DefaultChatTimeout),
		},
		CircuitBreakerThreshold: int32(env.int("CIRCUIT_BREAKER_THRESHOLD", constants.DefaultCircuitBreakerThreshold)),
		CircuitBreakerTimeout:   env.duration("CIRCUIT_BREAKER_TIMEOUT", constants.DefaultCircuitBreakerTimeout),
		CircuitBreakerReset:     env.duration("CIRCUIT_BREAKER_RESET", constants.DefaultCircuitBreakerReset),
		LogDir:                  env.get("LOG_DIR", ""),
		LogLevel:                env.get("LOG_LEVEL", "info"),
	}, nil
}

func resolveStoreBackend(value, databaseURL string) (StoreBackend, error) {
	switch StoreBackend(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		if databaseURL != "" {
			return StoreBackendPostgres, nil
		}
		return StoreBackendMemory, nil
	case StoreBackendPostgres:
		return StoreBackendPostgres, nil
	case StoreBackendMemory:
		return StoreBackendMemory, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidStoreBackend, value)
	}
}

type envReader struct {
	lookup func(string) (string, bool)
}

func (e envReader) get(key, fallback string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func (e envReader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func (e envReader) int(key string, fallback int) int {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}
