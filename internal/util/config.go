package util

import (
	"fmt"
	"time"
	
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment             string        `mapstructure:"ENVIRONMENT"`
	HTTPServerAddress       string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	AllowedOrigins          []string      `mapstructure:"ALLOWED_ORIGINS"`
	StoreDriver             string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL             string        `mapstructure:"DATABASE_URL"`
	RedisServerAddress      string        `mapstructure:"REDIS_SERVER_ADDRESS"`
	TokenSecretKey          string        `mapstructure:"TOKEN_SECRET_KEY"`
	AccessTokenDuration     time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	AllowAnonymousBidders   bool          `mapstructure:"ALLOW_ANONYMOUS_BIDDERS"`
	IdleTimeout             time.Duration `mapstructure:"IDLE_TIMEOUT"`
	StoreTimeout            time.Duration `mapstructure:"STORE_TIMEOUT"`
	MemberBufferSize        int           `mapstructure:"MEMBER_BUFFER_SIZE"`
	RoomRelayEnabled        bool          `mapstructure:"ROOM_RELAY_ENABLED"`
	RoomDrainAfter          time.Duration `mapstructure:"ROOM_DRAIN_AFTER"`
	RoomSweepInterval       time.Duration `mapstructure:"ROOM_SWEEP_INTERVAL"`
	NatsURL                 string        `mapstructure:"NATS_URL"`
	FirebaseCredentialsFile string        `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

// IsDevelopment reports whether the service runs in development mode.
func (config Config) IsDevelopment() bool {
	return config.Environment == "development"
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	setDefaults()
	
	// Prefer environment variables over config file
	viper.AutomaticEnv()
	
	// Load config file
	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		return
	}
	
	// Unmarshal config into struct
	err = viper.UnmarshalExact(&config)
	if err != nil {
		return
	}
	
	// Validate required configuration
	err = validateConfig(config)
	return
}

func setDefaults() {
	// Set defaults for non-sensitive config
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("ACCESS_TOKEN_DURATION", "24h")
	viper.SetDefault("ALLOW_ANONYMOUS_BIDDERS", false)
	viper.SetDefault("IDLE_TIMEOUT", "60s")
	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("MEMBER_BUFFER_SIZE", 256)
	viper.SetDefault("ROOM_RELAY_ENABLED", false)
	viper.SetDefault("ROOM_DRAIN_AFTER", "5m")
	viper.SetDefault("ROOM_SWEEP_INTERVAL", "1m")
}

func validateConfig(config Config) error {
	switch config.StoreDriver {
	case StoreDriverPostgres:
		if config.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, config.StoreDriver)
	}
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	if config.IdleTimeout <= 0 {
		return fmt.Errorf("IDLE_TIMEOUT must be positive")
	}
	if config.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if config.RoomSweepInterval <= 0 {
		return fmt.Errorf("ROOM_SWEEP_INTERVAL must be positive")
	}
	if config.MemberBufferSize <= 0 {
		return fmt.Errorf("MEMBER_BUFFER_SIZE must be positive")
	}
	
	return nil
}
