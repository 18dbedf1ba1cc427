package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/penlight-studio/folio/pkg/storage"
)

// Config captures service level configuration. It is assembled once at
// startup from a YAML file overlaid with environment variables and passed
// down immutably; nothing reads the environment after Load returns.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Upload   UploadConfig   `yaml:"upload"`
	Admin    AdminConfig    `yaml:"admin"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  storage.Config `yaml:"storage"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// DatabaseConfig defines the database backend configuration.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL specific connection details.
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// PostgresConfig contains PostgreSQL specific connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// CORSConfig defines CORS middleware settings.
type CORSConfig struct {
	AllowOrigin      string `yaml:"allow_origin"`
	AllowMethods     string `yaml:"allow_methods"`
	AllowHeaders     string `yaml:"allow_headers"`
	AllowCredentials bool   `yaml:"allow_credentials"`
}

// UploadConfig defines file upload constraints.
type UploadConfig struct {
	MaxSize  int64 `yaml:"max_size"`
	MaxFiles int   `yaml:"max_files"`
}

// AdminConfig holds the shared admin credential protecting mutating routes.
type AdminConfig struct {
	Token string `yaml:"token"`
}

// RedisConfig defines Redis connection settings for the admin write lock.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Load reads a YAML configuration file from the provided path, applies
// defaults, then overlays the storage environment variables. It searches the
// current working directory first, then next to the binary executable.
func Load(name string) (*Config, error) {
	cfg := defaultConfig()

	configPath := findConfigFile(name)
	if configPath == "" {
		log.Printf("Warning: config file %q not found, using defaults", name)
		applyEnv(cfg)
		return cfg, nil
	}

	log.Printf("Loading config from: %s", configPath)
	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parsed Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&parsed)
	applyEnv(&parsed)
	return &parsed, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":4000",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: "data/portfolio.db",
			},
		},
		CORS: CORSConfig{
			AllowOrigin:      "*",
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "*",
			AllowCredentials: false,
		},
		Upload: UploadConfig{
			MaxSize:  50 * 1024 * 1024, // 50MB
			MaxFiles: 20,
		},
		Storage: storage.Config{
			UploadsDir: "uploads",
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":4000"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = "data/portfolio.db"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 50 * 1024 * 1024
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 20
	}
	if cfg.Storage.UploadsDir == "" {
		cfg.Storage.UploadsDir = "uploads"
	}
}

// applyEnv overlays the storage backend environment variables. Backend
// selection is implicit in which variable set is present; the facade decides
// priority from the assembled bundles.
func applyEnv(cfg *Config) {
	setString(&cfg.Storage.GCS.Bucket, "GCS_BUCKET_NAME")
	setString(&cfg.Storage.GCS.ProjectID, "GCS_PROJECT_ID")
	setString(&cfg.Storage.GCS.KeyFile, "GCS_KEY_FILE")
	setString(&cfg.Storage.GCS.CredentialsJSON, "GCS_CREDENTIALS_JSON")
	setBool(&cfg.Storage.GCS.PublicAccess, "GCS_PUBLIC_ACCESS")

	setString(&cfg.Storage.FTP.Host, "FTP_HOST")
	setString(&cfg.Storage.FTP.User, "FTP_USER")
	setString(&cfg.Storage.FTP.Password, "FTP_PASSWORD")
	setInt(&cfg.Storage.FTP.Port, "FTP_PORT")
	setBool(&cfg.Storage.FTP.Secure, "FTP_SECURE")
	setString(&cfg.Storage.FTP.BasePath, "FTP_BASE_PATH")
	setString(&cfg.Storage.FTP.BaseURL, "FTP_BASE_URL")

	setString(&cfg.Storage.UploadsDir, "UPLOADS_DIR")
	setString(&cfg.Admin.Token, "ADMIN_TOKEN")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a boolean, ignoring", key, v)
		return
	}
	*dst = parsed
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, ignoring", key, v)
		return
	}
	*dst = parsed
}

// findConfigFile searches for a config file in the current directory first,
// then next to the binary executable. Returns the full path or empty string.
func findConfigFile(name string) string {
	if _, err := os.Stat(name); err == nil {
		abs, _ := filepath.Abs(name)
		return abs
	}

	exe, err := os.Executable()
	if err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
