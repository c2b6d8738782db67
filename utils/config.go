package utils

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

const REVISION = "1.2.0"

type Config struct {
	Env           string `mapstructure:"ENV"`
	ServerPort    int    `mapstructure:"SERVER_PORT"`
	SigningKey    string `mapstructure:"SIGNING_KEY"`
	DBUsername    string `mapstructure:"DB_USERNAME"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBName        string `mapstructure:"DB_NAME"`
	SSLMode       string `mapstructure:"SSLMODE"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
}

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Disable environment variable prefix
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	// Create config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate critical configurations
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.ServerPort == 0 {
		return fmt.Errorf("server port must be specified")
	}

	if config.SigningKey == "" {
		return fmt.Errorf("token signing key must be provided")
	}

	if config.DBUsername == "" || config.DBPassword == "" {
		return fmt.Errorf("database credentials must be provided")
	}

	return nil
}

// Optional: Masking sensitive information for logging
func (c *Config) Redact() Config {
	redacted := *c
	redacted.SigningKey = "****"
	redacted.DBPassword = "****"
	redacted.RedisPassword = "****"
	return redacted
}

// ChainConfig is the provider-owned configuration block for the EVM
// chain client and its signer sidecar. Loaded via LoadCustomConfig.
type ChainConfig struct {
	RPCURL        string `mapstructure:"CHAIN_RPC_URL"`
	TokenContract string `mapstructure:"TOKEN_CONTRACT"`
	SignerURL     string `mapstructure:"SIGNER_URL"`
	SignerAPIKey  string `mapstructure:"SIGNER_API_KEY"`
	ScanChunkSize uint64 `mapstructure:"CHAIN_SCAN_CHUNK_SIZE"`
	MaxScanChunks int    `mapstructure:"CHAIN_MAX_SCAN_CHUNKS"`
}

// LoadCustomConfig decodes the env file into an arbitrary config struct.
// Used by providers that carry their own configuration block.
func LoadCustomConfig(path string, val interface{}) error {
	if path == "" {
		path = "."
	}

	v := viper.New()
	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	if err := v.Unmarshal(&val); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}

	return nil
}
