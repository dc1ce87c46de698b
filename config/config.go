package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds environment driven configuration values.
// Secrets have no defaults in code and must come from config/config.json or the environment.
type AppConfig struct {
	AppPort            string
	RateLimitPerMinute int
	AllowedOrigins     []string
	GinMode            string
	GinPath            string

	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Redis for caching and token revocation; empty host disables it
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	// Token issuance
	JWTIssuer         string
	JWTPrivateKeyPath string
	JWTTTL            time.Duration
}

var (
	cfg      AppConfig
	loadOnce sync.Once
)

// Load reads configuration once. Precedence: defaults -> config/config.json -> environment.
func Load() AppConfig {
	loadOnce.Do(func() {
		v := viper.New()
		applyDefaults(v)

		v.SetConfigFile(filepath.Join("config", "config.json"))
		if err := v.ReadInConfig(); err != nil {
			// missing file is fine, malformed file is not
			if !errors.Is(err, fs.ErrNotExist) {
				log.Fatalf("invalid config file: %v", err)
			}
		}

		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		cfg = fromViper(v)
	})
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	return Load()
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.rate_limit_per_minute", 120)
	v.SetDefault("app.allowed_origins", []string{"*"})
	v.SetDefault("gin.mode", "release")
	v.SetDefault("gin.path", "logs/go_gin.log")

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.user", "root")
	v.SetDefault("db.name", "conduit")

	v.SetDefault("redis.port", 6379)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)

	v.SetDefault("jwt.issuer", "conduit")
	v.SetDefault("jwt.ttl", time.Hour)
}

func fromViper(v *viper.Viper) AppConfig {
	// flat env names kept for deployments that predate the grouped keys
	_ = v.BindEnv("app.port", "APP_PORT")
	_ = v.BindEnv("app.rate_limit_per_minute", "RATE_LIMIT_PER_MINUTE")
	_ = v.BindEnv("app.allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("gin.mode", "GIN_MODE")
	_ = v.BindEnv("gin.path", "GIN_PATH")
	_ = v.BindEnv("db.driver", "DB_DRIVER")
	_ = v.BindEnv("db.uri", "DATABASE_URI")
	_ = v.BindEnv("db.host", "DB_HOST")
	_ = v.BindEnv("db.port", "DB_PORT")
	_ = v.BindEnv("db.user", "DB_USER")
	_ = v.BindEnv("db.password", "DB_PASSWORD")
	_ = v.BindEnv("db.name", "DB_NAME")
	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.path", "LOG_PATH")
	_ = v.BindEnv("log.max_size_mb", "LOG_MAX_SIZE_MB")
	_ = v.BindEnv("log.max_backups", "LOG_MAX_BACKUPS")
	_ = v.BindEnv("log.max_age_days", "LOG_MAX_AGE_DAYS")
	_ = v.BindEnv("log.compress", "LOG_COMPRESS")
	_ = v.BindEnv("jwt.issuer", "JWT_ISSUER")
	_ = v.BindEnv("jwt.private_key_path", "JWT_PRIVATE_KEY_PATH")
	_ = v.BindEnv("jwt.ttl", "JWT_TTL")

	return AppConfig{
		AppPort:            v.GetString("app.port"),
		RateLimitPerMinute: v.GetInt("app.rate_limit_per_minute"),
		AllowedOrigins:     splitAndTrim(v.GetStringSlice("app.allowed_origins")),
		GinMode:            v.GetString("gin.mode"),
		GinPath:            v.GetString("gin.path"),

		DBDriver:    strings.ToLower(v.GetString("db.driver")),
		DatabaseURI: v.GetString("db.uri"),
		DBHost:      v.GetString("db.host"),
		DBPort:      v.GetString("db.port"),
		DBUser:      v.GetString("db.user"),
		DBPassword:  v.GetString("db.password"),
		DBName:      v.GetString("db.name"),

		RedisHost:     v.GetString("redis.host"),
		RedisPort:     v.GetInt("redis.port"),
		RedisDB:       v.GetInt("redis.db"),
		RedisPassword: v.GetString("redis.password"),

		LogLevel:      v.GetString("log.level"),
		LogPath:       v.GetString("log.path"),
		LogMaxSizeMB:  v.GetInt("log.max_size_mb"),
		LogMaxBackups: v.GetInt("log.max_backups"),
		LogMaxAgeDays: v.GetInt("log.max_age_days"),
		LogCompress:   v.GetBool("log.compress"),

		JWTIssuer:         v.GetString("jwt.issuer"),
		JWTPrivateKeyPath: v.GetString("jwt.private_key_path"),
		JWTTTL:            v.GetDuration("jwt.ttl"),
	}
}

// splitAndTrim accepts both JSON arrays and comma separated env values.
func splitAndTrim(raw []string) []string {
	items := []string{}
	for _, entry := range raw {
		for _, item := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				items = append(items, trimmed)
			}
		}
	}
	return items
}
