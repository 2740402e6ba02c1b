package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultUpstreamURL = "https://api.sandbox.treasuryprime.com"
	DefaultPort        = "3001"
	DefaultViewerPort  = "5173"
)

type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	GCP      GCPConfig      `mapstructure:"gcp"`
	Viewer   ViewerConfig   `mapstructure:"viewer"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// UpstreamConfig describes the banking API and where its Basic credentials
// come from. Plain values win; otherwise the secret and ciphertext fields are
// resolved at startup.
type UpstreamConfig struct {
	BaseURL            string        `mapstructure:"base_url" validate:"required,url"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	UsernameSecret     string        `mapstructure:"username_secret"`
	PasswordSecret     string        `mapstructure:"password_secret"`
	PasswordCiphertext string        `mapstructure:"password_ciphertext"`
}

type GCPConfig struct {
	ProjectID  string `mapstructure:"project_id"`
	KMSKeyName string `mapstructure:"kms_key_name"`
}

type ViewerConfig struct {
	Port      string        `mapstructure:"port" validate:"required,numeric"`
	ProxyURL  string        `mapstructure:"proxy_url" validate:"required,url"`
	AccountID string        `mapstructure:"account_id" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// envBindings keeps the variable names the service has always been deployed with.
var envBindings = map[string][]string{
	"log_level":                    {"LOGLEVEL"},
	"server.port":                  {"PORT"},
	"upstream.base_url":            {"TREASURY_PRIME_BASE_URL"},
	"upstream.username":            {"TREASURY_PRIME_USERNAME"},
	"upstream.password":            {"TREASURY_PRIME_PASSWORD"},
	"upstream.username_secret":     {"TREASURY_PRIME_USERNAME_SECRET"},
	"upstream.password_secret":     {"TREASURY_PRIME_PASSWORD_SECRET"},
	"upstream.password_ciphertext": {"TREASURY_PRIME_PASSWORD_CIPHERTEXT"},
	"gcp.project_id":               {"PROJECTID"},
	"gcp.kms_key_name":             {"KMSKEYNAME"},
	"viewer.port":                  {"VIEWER_PORT"},
	"viewer.proxy_url":             {"PROXY_URL"},
	"viewer.account_id":            {"ACCOUNT_ID"},
}

var validate = validator.New()

// Load reads config.yml from path when present, then applies the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if path != "" {
		v.AddConfigPath(path)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Upstream.BaseURL = strings.TrimRight(cfg.Upstream.BaseURL, "/")
	cfg.Viewer.ProxyURL = strings.TrimRight(cfg.Viewer.ProxyURL, "/")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("upstream.base_url", DefaultUpstreamURL)
	v.SetDefault("upstream.timeout", 30*time.Second)
	v.SetDefault("viewer.port", DefaultViewerPort)
	v.SetDefault("viewer.proxy_url", "http://localhost:"+DefaultPort)
	v.SetDefault("viewer.timeout", 30*time.Second)
}

// ValidateProxy checks the settings the proxy needs before it can start.
func (c *Config) ValidateProxy() error {
	if err := validate.Struct(c.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validate.Struct(c.Upstream); err != nil {
		return fmt.Errorf("upstream config: %w", err)
	}
	u := c.Upstream
	if u.Username == "" && u.UsernameSecret == "" {
		return errors.New("upstream config: username or username_secret is required")
	}
	if u.Password == "" && u.PasswordSecret == "" && u.PasswordCiphertext == "" {
		return errors.New("upstream config: password, password_secret or password_ciphertext is required")
	}
	if u.Password == "" && u.PasswordSecret == "" && c.GCP.KMSKeyName == "" {
		return errors.New("upstream config: password_ciphertext requires gcp.kms_key_name")
	}
	return nil
}

// ValidateViewer checks the settings the display client needs.
func (c *Config) ValidateViewer() error {
	if err := validate.Struct(c.Viewer); err != nil {
		return fmt.Errorf("viewer config: %w", err)
	}
	return nil
}

// NeedsSecretManager reports whether any credential lives in Secret Manager.
func (c *Config) NeedsSecretManager() bool {
	u := c.Upstream
	return (u.Username == "" && u.UsernameSecret != "") ||
		(u.Password == "" && u.PasswordSecret != "")
}

// NeedsKMS reports whether the password has to be decrypted with Cloud KMS.
func (c *Config) NeedsKMS() bool {
	u := c.Upstream
	return u.Password == "" && u.PasswordSecret == "" && u.PasswordCiphertext != ""
}
