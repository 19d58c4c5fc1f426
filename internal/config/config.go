package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gridironhq/roster-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	StorageDriver                string
	DBURL                        string
	DBDisablePreparedBinary      bool
	SeasonStart                  time.Time
	SessionTTL                   time.Duration
	CORSAllowedOrigins           []string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	PprofEnabled                 bool
	PprofAddr                    string
	UptraceEnabled               bool
	UptraceDSN                   string
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	InternalJobToken             string
	CatalogEnabled               bool
	CatalogURL                   string
	CatalogTimeout               time.Duration
	CatalogMaxRetries            int
	CatalogCircuitEnabled        bool
	CatalogCircuitFailureCount   int
	CatalogCircuitOpenTimeout    time.Duration
	CatalogCircuitHalfOpenMaxReq int
	IngestMaxWorkers             int
	LogLevel                     logging.Level
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch storageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageMemory, StoragePostgres)
	}

	dbURL := strings.TrimSpace(getEnv("DATABASE_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=postgres")
	}

	seasonStart, err := time.ParseInLocation(time.DateOnly, getEnv("SEASON_START", "2025-09-01"), time.UTC)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_START: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	if sessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	catalogEnabled, err := strconv.ParseBool(getEnv("CATALOG_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_ENABLED: %w", err)
	}
	catalogURL := strings.TrimSpace(getEnv("CATALOG_URL", ""))
	if catalogEnabled && catalogURL == "" {
		return Config{}, fmt.Errorf("CATALOG_URL is required when CATALOG_ENABLED=true")
	}
	catalogTimeout, err := time.ParseDuration(getEnv("CATALOG_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_TIMEOUT: %w", err)
	}
	catalogMaxRetries, err := getEnvAsInt("CATALOG_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_MAX_RETRIES: %w", err)
	}
	if catalogMaxRetries < 0 {
		return Config{}, fmt.Errorf("CATALOG_MAX_RETRIES must be >= 0")
	}

	catalogCircuitEnabled, err := strconv.ParseBool(getEnv("CATALOG_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_ENABLED: %w", err)
	}
	catalogCircuitFailureCount, err := getEnvAsInt("CATALOG_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if catalogCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("CATALOG_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	catalogCircuitOpenTimeout, err := time.ParseDuration(getEnv("CATALOG_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if catalogCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CATALOG_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	catalogCircuitHalfOpenMaxReq, err := getEnvAsInt("CATALOG_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if catalogCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("CATALOG_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	ingestMaxWorkers, err := getEnvAsInt("INGEST_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_MAX_WORKERS: %w", err)
	}
	if ingestMaxWorkers < 1 {
		return Config{}, fmt.Errorf("INGEST_MAX_WORKERS must be >= 1")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("SERVICE_NAME", "roster-api"),
		ServiceVersion:               getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("HTTP_ADDR", ":8080"),
		StorageDriver:                storageDriver,
		DBURL:                        dbURL,
		DBDisablePreparedBinary:      dbDisablePreparedBinary,
		SeasonStart:                  seasonStart,
		SessionTTL:                   sessionTTL,
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    getEnv("PPROF_ADDR", ":6060"),
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
		InternalJobToken:             strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		CatalogEnabled:               catalogEnabled,
		CatalogURL:                   catalogURL,
		CatalogTimeout:               catalogTimeout,
		CatalogMaxRetries:            catalogMaxRetries,
		CatalogCircuitEnabled:        catalogCircuitEnabled,
		CatalogCircuitFailureCount:   catalogCircuitFailureCount,
		CatalogCircuitOpenTimeout:    catalogCircuitOpenTimeout,
		CatalogCircuitHalfOpenMaxReq: catalogCircuitHalfOpenMaxReq,
		IngestMaxWorkers:             ingestMaxWorkers,
		LogLevel:                     parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
