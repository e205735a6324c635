package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// BlogIDStrategy selects which blog creation routes are mounted.
type BlogIDStrategy string

const (
	// StrategyAuto lets the database assign ids (POST /api/blog/bind_new).
	StrategyAuto BlogIDStrategy = "auto"
	// StrategyExplicit takes the id from the path (POST /api/blog/{id}/context).
	StrategyExplicit BlogIDStrategy = "explicit"
	// StrategyBoth mounts both creation routes.
	StrategyBoth BlogIDStrategy = "both"
)

// AllowsAuto reports whether the bind_new route is mounted.
func (s BlogIDStrategy) AllowsAuto() bool {
	return s == StrategyAuto || s == StrategyBoth
}

// AllowsExplicit reports whether the POST context route is mounted.
func (s BlogIDStrategy) AllowsExplicit() bool {
	return s == StrategyExplicit || s == StrategyBoth
}

// Config is the typed view of the environment used by the server.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Database Database

	AcceptedOrigins []string
	BlogIDStrategy  BlogIDStrategy
	ClientIPHeader  string

	AI AI

	LogLevel  string
	LogFormat string
}

// Database holds the connection settings for the relational store.
type Database struct {
	Type                 string
	SQLitePath           string
	DSN                  string
	ReplicaDSNs          []string
	AutoMigrate          bool
	GenerateColumnReport bool
}

// AI holds the text-generation settings used for post summaries.
type AI struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

const (
	DefaultClientIPHeader = "CF-Connecting-IP"
	DefaultAIModel        = "@cf/qwen/qwen1.5-14b-chat-awq"
)

// New returns the process environment as a map.
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// Load builds a Config from an environment map, applying defaults.
func Load(c map[string]string) Config {
	strategy := BlogIDStrategy(strings.ToLower(GetString(c, "BLOG_ID_STRATEGY", string(StrategyBoth))))
	switch strategy {
	case StrategyAuto, StrategyExplicit, StrategyBoth:
	default:
		strategy = StrategyBoth
	}

	return Config{
		Port:         GetString(c, "PORT", "8080"),
		ReadTimeout:  time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout: time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		Database: Database{
			Type:                 strings.ToLower(GetString(c, "DB_TYPE", "sqlite")),
			SQLitePath:           GetString(c, "SQLITE_PATH", "blog.db"),
			DSN:                  postgresDSN(c),
			ReplicaDSNs:          GetStrings(c, "DATABASE_REPLICA_DSNS", nil),
			AutoMigrate:          GetBool(c, "AUTO_MIGRATE", true),
			GenerateColumnReport: GetBool(c, "GENERATE_COLUMN_REPORT", false),
		},
		AcceptedOrigins: GetStrings(c, "ACCEPTED_ORIGINS", []string{"http://localhost:5173"}),
		BlogIDStrategy:  strategy,
		ClientIPHeader:  GetString(c, "CLIENT_IP_HEADER", DefaultClientIPHeader),
		AI: AI{
			Provider:    strings.ToLower(GetString(c, "AI_PROVIDER", "")),
			BaseURL:     GetString(c, "AI_BASE_URL", ""),
			APIKey:      GetString(c, "AI_API_KEY", ""),
			Model:       GetString(c, "AI_MODEL", DefaultAIModel),
			MaxTokens:   GetInt(c, "AI_MAX_TOKENS", 2048),
			Temperature: GetFloat(c, "AI_TEMPERATURE", 0.7),
		},
		LogLevel:  GetString(c, "LOG_LEVEL", "info"),
		LogFormat: GetString(c, "LOG_FORMAT", "console"),
	}
}

// postgresDSN prefers DATABASE_DSN and otherwise assembles the supabase pieces.
func postgresDSN(c map[string]string) string {
	if dsn := GetString(c, "DATABASE_DSN", ""); dsn != "" {
		return dsn
	}
	host := GetString(c, "SUPABASE_DB_HOST", "")
	if host == "" {
		return ""
	}
	return "host=" + host +
		" user=" + GetString(c, "SUPABASE_DB_USER", "") +
		" password=" + GetString(c, "SUPABASE_DB_PASSWORD", "") +
		" dbname=" + GetString(c, "SUPABASE_DB_NAME", "") +
		" port=" + GetString(c, "SUPABASE_DB_PORT", "5432") +
		" sslmode=require"
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetFloat(config map[string]string, key string, defaultValue float64) float64 {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asFloat, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultValue
	}
	return asFloat
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok || s == "" {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return asBool
}

// GetStrings splits a comma separated value, dropping blank entries.
func GetStrings(config map[string]string, key string, defaultValue []string) []string {
	s, ok := config[key]
	if !ok || strings.TrimSpace(s) == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
