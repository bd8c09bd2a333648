package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/riskibarqy/live-corners/internal/platform/resilience"
)

const defaultLiveRefreshSeconds = 600

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	LogLevel                 logging.Level
	LogFormat                string
	CORSAllowedOrigins       []string
	StaticDir                string
	APIFootballKey           string
	APIFootballBaseURL       string
	APIFootballTimeout       time.Duration
	APIFootballRatePerMinute int
	APIFootballCircuit       resilience.CircuitBreakerConfig
	LiveRefreshInterval      time.Duration
	EvalCacheTTL             time.Duration
	LiveListCacheTTL         time.Duration
	OpenAIKey                string
	OpenAIBaseURL            string
	OpenAIModel              string
	OpenAITimeout            time.Duration
	OpenAICircuit            resilience.CircuitBreakerConfig
	SignalPolicyFile         string
	HistoryFile              string
	HistoryMaxItems          int
	DBURL                    string
	DBDisablePreparedBinary  bool
	UptraceEnabled           bool
	UptraceDSN               string
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
	PprofEnabled             bool
	PprofAddr                string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return loadFromEnv()
}

func loadFromEnv() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	logFormat, err := logging.ParseFormat(getEnv("APP_LOG_FORMAT", logging.FormatJSON))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_FORMAT: %w", err)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", 90*time.Second)
	if err != nil {
		return Config{}, err
	}

	apiFootballTimeout, err := getEnvAsDuration("API_FOOTBALL_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, err
	}
	apiFootballRate, err := getEnvAsInt("API_FOOTBALL_RATE_PER_MINUTE", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_RATE_PER_MINUTE: %w", err)
	}
	if apiFootballRate < 0 {
		return Config{}, fmt.Errorf("API_FOOTBALL_RATE_PER_MINUTE must be >= 0")
	}
	apiFootballCircuit, err := getCircuitConfig("API_FOOTBALL_CIRCUIT")
	if err != nil {
		return Config{}, err
	}

	evalCacheTTL, err := getEnvAsDuration("EVAL_CACHE_TTL", 120*time.Second)
	if err != nil {
		return Config{}, err
	}
	liveListCacheTTL, err := getEnvAsDuration("LIVE_LIST_CACHE_TTL", 60*time.Second)
	if err != nil {
		return Config{}, err
	}

	openAITimeout, err := getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second)
	if err != nil {
		return Config{}, err
	}
	openAICircuit, err := getCircuitConfig("OPENAI_CIRCUIT")
	if err != nil {
		return Config{}, err
	}

	historyMaxItems, err := getEnvAsInt("HISTORY_MAX_ITEMS", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse HISTORY_MAX_ITEMS: %w", err)
	}
	if historyMaxItems < 1 {
		return Config{}, fmt.Errorf("HISTORY_MAX_ITEMS must be >= 1")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
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

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "live-corners"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 httpAddr(),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		LogLevel:                 logLevel,
		LogFormat:                logFormat,
		CORSAllowedOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		StaticDir:                strings.TrimSpace(getEnv("STATIC_DIR", "./public")),
		APIFootballKey:           strings.TrimSpace(getEnv("API_FOOTBALL_KEY", "")),
		APIFootballBaseURL:       strings.TrimSpace(getEnv("API_FOOTBALL_BASE_URL", "https://v3.football.api-sports.io")),
		APIFootballTimeout:       apiFootballTimeout,
		APIFootballRatePerMinute: apiFootballRate,
		APIFootballCircuit:       apiFootballCircuit,
		LiveRefreshInterval:      parseRefreshSeconds(getEnv("LIVE_REFRESH_SECONDS", "")),
		EvalCacheTTL:             evalCacheTTL,
		LiveListCacheTTL:         liveListCacheTTL,
		OpenAIKey:                strings.TrimSpace(getEnv("OPENAI_API_KEY", "")),
		OpenAIBaseURL:            strings.TrimSpace(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")),
		OpenAIModel:              strings.TrimSpace(getEnv("OPENAI_MODEL", "gpt-5.2")),
		OpenAITimeout:            openAITimeout,
		OpenAICircuit:            openAICircuit,
		SignalPolicyFile:         strings.TrimSpace(getEnv("SIGNAL_POLICY_FILE", "")),
		HistoryFile:              strings.TrimSpace(getEnv("HISTORY_FILE", "./history.json")),
		HistoryMaxItems:          historyMaxItems,
		DBURL:                    strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:  dbDisablePreparedBinary,
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// httpAddr prefers APP_HTTP_ADDR and falls back to the bare PORT variable
// most hosting platforms inject.
func httpAddr() string {
	if addr := strings.TrimSpace(os.Getenv("APP_HTTP_ADDR")); addr != "" {
		return addr
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		return ":" + port
	}
	return ":3000"
}

// parseRefreshSeconds never fails: garbage falls back to the default and the
// result is clamped to [60s, 3600s].
func parseRefreshSeconds(raw string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		seconds = defaultLiveRefreshSeconds
	}
	seconds = max(60, min(3600, seconds))
	return time.Duration(seconds) * time.Second
}

func getCircuitConfig(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()

	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", "true"))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_FAILURE_COUNT", defaults.FailureThreshold)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	openTimeout, err := getEnvAsDuration(prefix+"_OPEN_TIMEOUT", defaults.OpenTimeout)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}

	cfg := resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}
	if err := cfg.Validate(prefix); err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	return cfg, nil
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

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
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

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
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
