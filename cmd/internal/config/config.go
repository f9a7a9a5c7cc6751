package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/orbit/prod/"

type Config struct {
	Env       string `env:"GO_ENV" env-default:"development"`
	Port      int    `env:"PORT" env-default:"7070"`
	AppURL    string `env:"APP_URL" env-default:"http://localhost:3000"`
	MachineID int64  `env:"MACHINE_ID" env-default:"1"`

	LogLevel           string   `env:"LOG_LEVEL" env-default:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	DefaultTimezone    string   `env:"DEFAULT_TIMEZONE" env-default:"UTC"`
	ProxyRateLimit     float64  `env:"PROXY_RATE_LIMIT" env-default:"5"`

	Database DatabaseConfig
	Cognito  CognitoConfig
	Google   GoogleConfig
	Provider ProviderConfig
	AWS      AWSConfig
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite"`
	DSN    string `env:"DB_DSN" env-default:"database.db"`
}

type CognitoConfig struct {
	Region     string `env:"COGNITO_REGION" env-required:"true"`
	UserPoolID string `env:"COGNITO_USER_POOL_ID" env-required:"true"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `env:"GOOGLE_REDIRECT_URI"`
}

func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURI != ""
}

type ProviderConfig struct {
	NewsAPIKey      string        `env:"NEWS_API_KEY"`
	NewsBaseURL     string        `env:"NEWS_API_BASE_URL" env-default:"https://newsapi.org/v2"`
	F1BaseURL       string        `env:"F1_API_BASE_URL" env-default:"https://api.jolpi.ca/ergast/f1"`
	WeatherBaseURL  string        `env:"WEATHER_API_BASE_URL" env-default:"https://api.open-meteo.com/v1"`
	CurrencyBaseURL string        `env:"CURRENCY_API_BASE_URL" env-default:"https://api.frankfurter.dev/v1"`
	Timeout         time.Duration `env:"PROVIDER_TIMEOUT" env-default:"10s"`
}

type AWSConfig struct {
	ExportBucket      string `env:"EXPORT_BUCKET"`
	S3Region          string `env:"AWS_S3_REGION" env-default:"us-east-2"`
	WSGatewayEndpoint string `env:"WS_GATEWAY_ENDPOINT"`
	WSGatewayRegion   string `env:"WS_GATEWAY_REGION" env-default:"us-east-2"`
	SSMRegion         string `env:"SSM_REGION" env-default:"us-east-2"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		log.Warnf("invalid DEFAULT_TIMEZONE %q, falling back to UTC", c.DefaultTimezone)
		return time.UTC
	}
	return loc
}

// Load exports the environment for the current stage and then reads it
// into a typed Config.
func Load(ctx context.Context) (*Config, error) {
	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return &cfg, nil
}

// loadProdEnv exports every SSM parameter under envVarsPrefix as an env var.
func loadProdEnv(ctx context.Context) error {
	region := os.Getenv("SSM_REGION")
	if region == "" {
		region = "us-east-2"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	prefixLength := len(envVarsPrefix)
	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		// Export vars
		for _, param := range out.Parameters {
			key := (*param.Name)[prefixLength:]
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return fmt.Errorf("unable to set environment variable: %w", err)
			}
			count++
		}
	}

	log.Debugf("loaded %d prod environment variables", count)
	return nil
}

// GommonLevel maps the configured level name to gommon's.
func (c *Config) GommonLevel() log.Lvl {
	switch c.LogLevel {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
