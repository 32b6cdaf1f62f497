package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds every runtime setting of the API.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	MongoURI    string        `env:"MONGO_URI,required,notEmpty"`
	DBName      string        `env:"MONGO_DB" envDefault:"wallpaper_hub"`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	TokenExpiry time.Duration `env:"TOKEN_EXPIRY" envDefault:"720h"`

	Categories    []string `env:"WALLPAPER_CATEGORIES" envSeparator:"," envDefault:"Nature,Abstract,Animals,Space,Anime,Other"`
	MaxUploadSize int64    `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
	MaxPageLimit  int      `env:"MAX_PAGE_LIMIT" envDefault:"100"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Storage StorageConfig
}

// StorageConfig selects and configures the object store that receives images.
type StorageConfig struct {
	Driver        string `env:"STORAGE_DRIVER" envDefault:"local"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string `env:"S3_PUBLIC_URL"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
}

// LoadConfig reads the environment, loading a .env file first when one exists.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	categories := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		if strings.ContainsAny(category, " \t") {
			return fmt.Errorf("category %q must not contain whitespace", category)
		}
		categories = append(categories, category)
	}
	if len(categories) == 0 {
		return fmt.Errorf("WALLPAPER_CATEGORIES must name at least one category")
	}
	c.Categories = categories

	if c.MaxPageLimit < 1 {
		return fmt.Errorf("MAX_PAGE_LIMIT must be positive")
	}
	if c.MaxUploadSize < 1 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3Bucket == "" || c.Storage.S3AccessKeyID == "" || c.Storage.S3SecretAccessKey == "" {
			return fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}
