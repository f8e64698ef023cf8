package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the client, the CLI and the stub backend.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	API  APIConfig  `mapstructure:"api"`
	Auth AuthConfig `mapstructure:"auth"`
	S3   S3Config   `mapstructure:"s3"`
	Log  LogConfig  `mapstructure:"log"`
	Stub StubConfig `mapstructure:"stub"`
}

// APIConfig points the gateway at the backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Bearer is a fixed token used when no login has been stored.
	Bearer string `mapstructure:"bearer"`
}

// AuthConfig locates the encrypted token file.
type AuthConfig struct {
	TokenFile  string `mapstructure:"token_file"`
	Passphrase string `mapstructure:"passphrase"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	ShareExpiry     time.Duration `mapstructure:"share_expiry"`
}

// Enabled reports whether enough is configured to reach a bucket.
func (c S3Config) Enabled() bool {
	return c.BucketName != "" && c.Region != ""
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// StubConfig drives cmd/stubserver.
type StubConfig struct {
	Address       string        `mapstructure:"address"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
	RequireAuth   bool          `mapstructure:"require_auth"`
	Seed          bool          `mapstructure:"seed"`
}

var defaults = map[string]any{
	"api.base_url":         "http://localhost:3000/api",
	"api.timeout":          "30s",
	"api.bearer":           "",
	"auth.token_file":      "",
	"auth.passphrase":      "",
	"s3.endpoint":          "",
	"s3.region":            "",
	"s3.access_key_id":     "",
	"s3.secret_access_key": "",
	"s3.bucket_name":       "",
	"s3.use_ssl":           true,
	"s3.share_expiry":      "24h",
	"log.level":            "info",
	"log.pretty":           false,
	"stub.address":         ":3000",
	"stub.jwt_secret":      "learntrack-dev-secret",
	"stub.jwt_expiration":  "1h",
	"stub.require_auth":    false,
	"stub.seed":            false,
}

// LoadConfig reads config.yaml from path, then environment variables.
// A .env file in path is loaded into the environment first when present.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, err
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// api.base_url -> API_BASE_URL
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// every key needs a default for AutomaticEnv to reach it during Unmarshal
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return config, err
	}

	err = v.Unmarshal(&config)
	return config, err
}
