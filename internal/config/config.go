package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// MinJWTSecretLength is the shortest accepted signing secret in bytes
const MinJWTSecretLength = 32

var (
	ErrJWTSecretMissing     = errors.New("JWT secret is not configured")
	ErrJWTSecretPlaceholder = errors.New("JWT secret is a placeholder value")
	ErrJWTSecretTooShort    = fmt.Errorf("JWT secret must be at least %d bytes", MinJWTSecretLength)
)

// placeholderSecrets are rejected at startup
var placeholderSecrets = map[string]struct{}{
	"jwt_secret":     {},
	"default_secret": {},
	"secret":         {},
	"changeme":       {},
}

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Database   DatabaseConfig
	JWT        JWTConfig
	Auth       AuthConfig
	Admin      AdminConfig
	RateLimit  RateLimitConfig
	Upload     UploadConfig
	Storage    StorageConfig
	AudioSync  AudioSyncConfig
	Log        LogConfig
	RosterSeed []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string // mysql or sqlite
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SQLitePath   string
	QueryTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AuthConfig holds password hashing configuration
type AuthConfig struct {
	BcryptCost      int
	HashConcurrency int
}

// AdminConfig holds the admin API key; empty disables admin routes
type AdminConfig struct {
	APIKey string
}

// RateLimitConfig holds per-minute request limits; 0 disables a limiter
type RateLimitConfig struct {
	PerMinute     int
	AuthPerMinute int
}

// UploadConfig holds profile picture upload settings
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// StorageConfig selects and configures the audio object store
type StorageConfig struct {
	Backend      string // local, s3 or gcs
	TracksDir    string
	TracksPrefix string
	R2           R2Config
	GCS          GCSConfig
}

// R2Config holds Cloudflare R2 (S3 API) settings
type R2Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// GCSConfig holds Google Cloud Storage settings
type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	PublicURL       string
}

// AudioSyncConfig holds the voice record sync job settings
type AudioSyncConfig struct {
	SourceDir string
	Schedule  string // cron spec, empty disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("⚠️ .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	jwtCfg := loadJWTConfig(appMode)
	if err := ValidateJWTSecret(jwtCfg.Secret); err != nil {
		return nil, err
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	rateLimit, err := loadRateLimitConfig()
	if err != nil {
		return nil, err
	}

	upload, err := loadUploadConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3001"),
		Database:  database,
		JWT:       jwtCfg,
		Auth:      auth,
		Admin:     AdminConfig{APIKey: getEnv("ADMIN_API_KEY", "")},
		RateLimit: rateLimit,
		Upload:    upload,
		Storage:   storage,
		AudioSync: AudioSyncConfig{
			SourceDir: getEnv("VOICE_RECORDS_DIR", "voicerecords"),
			Schedule:  strings.TrimSpace(getEnv("AUDIO_SYNC_CRON", "")),
		},
		Log:        LogConfig{Level: getEnv("LOG_LEVEL", "info")},
		RosterSeed: splitList(getEnv("ROSTER_SEED", "")),
	}

	defaultFormat := "console"
	if config.IsProd() {
		defaultFormat = "json"
	}
	config.Log.Format = getEnv("LOG_FORMAT", defaultFormat)

	return config, nil
}

// ValidateJWTSecret rejects empty, placeholder and short secrets
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return ErrJWTSecretMissing
	}
	if _, ok := placeholderSecrets[strings.ToLower(secret)]; ok {
		return ErrJWTSecretPlaceholder
	}
	if len(secret) < MinJWTSecretLength {
		return ErrJWTSecretTooShort
	}
	return nil
}

// modePrefix returns the env prefix for mode-specific settings
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	if driver != "mysql" && driver != "sqlite" {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'sqlite')", driver)
	}

	timeout, err := getDuration("DB_QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return DatabaseConfig{}, err
	}

	return DatabaseConfig{
		Driver:       driver,
		Host:         getEnv(prefix+"DB_HOST", "localhost"),
		Port:         getEnv(prefix+"DB_PORT", "3306"),
		User:         getEnv(prefix+"DB_USER", "root"),
		Password:     getEnv(prefix+"DB_PASS", ""),
		DBName:       getEnv(prefix+"DB_NAME", "policeapp"),
		SQLitePath:   getEnv("SQLITE_PATH", "policeapp.db"),
		QueryTimeout: timeout,
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret: getEnv(modePrefix(mode)+"JWT_SECRET", ""),
	}
}

func loadAuthConfig() (AuthConfig, error) {
	cost, err := getInt("BCRYPT_COST", 10)
	if err != nil {
		return AuthConfig{}, err
	}
	concurrency, err := getInt("HASH_CONCURRENCY", 0)
	if err != nil {
		return AuthConfig{}, err
	}
	return AuthConfig{BcryptCost: cost, HashConcurrency: concurrency}, nil
}

func loadRateLimitConfig() (RateLimitConfig, error) {
	perMinute, err := getInt("RATE_LIMIT_PER_MINUTE", 100)
	if err != nil {
		return RateLimitConfig{}, err
	}
	authPerMinute, err := getInt("AUTH_RATE_LIMIT_PER_MINUTE", 5)
	if err != nil {
		return RateLimitConfig{}, err
	}
	return RateLimitConfig{PerMinute: perMinute, AuthPerMinute: authPerMinute}, nil
}

func loadUploadConfig() (UploadConfig, error) {
	maxBytes, err := getInt("UPLOAD_MAX_BYTES", 5<<20)
	if err != nil {
		return UploadConfig{}, err
	}
	return UploadConfig{
		Dir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxBytes: int64(maxBytes),
	}, nil
}

func loadStorageConfig() (StorageConfig, error) {
	backend := strings.ToLower(getEnv("STORAGE_BACKEND", "local"))
	switch backend {
	case "local", "s3", "gcs":
	default:
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_BACKEND: '%s' (must be 'local', 's3' or 'gcs')", backend)
	}

	return StorageConfig{
		Backend:      backend,
		TracksDir:    getEnv("TRACKS_DIR", "public"),
		TracksPrefix: strings.Trim(getEnv("TRACKS_PREFIX", "voicerecords"), "/"),
		R2: R2Config{
			Endpoint:        getEnv("R2_ENDPOINT", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("R2_BUCKET", ""),
			PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		},
		GCS: GCSConfig{
			Bucket:          getEnv("GCS_BUCKET", ""),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
			PublicURL:       getEnv("GCS_PUBLIC_URL", ""),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		return "*"
	}
	return origins
}
