package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	HTTPAddr     string
	DatabasePath string
	BodyLimit    string
	LogLevel     string
	NodeID       int64

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Storage
	// MaxUploadBytes caps a single note file; zero leaves only BodyLimit.
	MaxUploadBytes int64
	StorageDriver  string
	UploadDir      string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	// Generative AI
	GeminiAPIKey string
	GeminiModel  string
}

// Load resolves the configuration from the environment. In production
// (GO_ENV=production) variables are first pulled from AWS SSM Parameter
// Store; otherwise a local .env file is read if present.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == "production" {
		if err := loadProdEnv(ctx, getenv("SSM_PREFIX", "/noteshare/prod/")); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}
	return FromEnv(), nil
}

// FromEnv reads the configuration from the current process environment only.
func FromEnv() *Config {
	return &Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":3000"),
		DatabasePath: getenv("DATABASE_PATH", "noteshare.db"),
		BodyLimit:    getenv("BODY_LIMIT", "50M"),
		LogLevel:     strings.ToLower(getenv("LOG_LEVEL", "info")),
		NodeID:       getenvInt("NODE_ID", 1),

		JWTSecret: getenv("JWT_SECRET", "noteshare-secret-key"),
		JWTExpiry: getenvDuration("JWT_EXPIRY", 0),

		MaxUploadBytes: getenvBytes("MAX_UPLOAD_SIZE", 0),
		StorageDriver:  strings.ToLower(getenv("STORAGE_DRIVER", StorageLocal)),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		S3Bucket:       os.Getenv("S3_BUCKET_NAME"),
		S3Region:       getenv("AWS_S3_REGION", "us-east-2"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// LogLvl maps the configured level name to gommon's levels.
func (c *Config) LogLvl() log.Lvl {
	switch c.LogLevel {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func loadProdEnv(ctx context.Context, prefix string) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(getenv("AWS_REGION", "us-east-2")))
	if err != nil {
		return err
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}

		// Export vars
		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return err
			}
			loaded++
		}
	}
	log.Debugf("loaded %d prod environment variables", loaded)
	return nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
		log.Warnf("ignoring invalid %s=%q", key, val)
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		log.Warnf("ignoring invalid %s=%q", key, val)
	}
	return fallback
}

// getenvBytes accepts human sizes such as "30MB" or "5 MiB".
func getenvBytes(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := humanize.ParseBytes(val); err == nil {
			return int64(parsed)
		}
		log.Warnf("ignoring invalid %s=%q", key, val)
	}
	return fallback
}
