package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	AWS      AWSConfig
	Tables   TableConfig
	Identity IdentityConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type AWSConfig struct {
	Region   string
	Endpoint string // optional override, e.g. http://localstack:4566
}

type TableConfig struct {
	Projects    string
	Users       string
	Assignments string
}

type IdentityConfig struct {
	UserPoolID    string
	DevBypassAuth bool
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", "eu-west-1"),
			Endpoint: getEnv("AWS_ENDPOINT_URL", ""),
		},
		Tables: TableConfig{
			Projects:    getEnv("PROJECTS_TABLE", ""),
			Users:       getEnv("USERS_TABLE", ""),
			Assignments: getEnv("ASSIGNMENTS_TABLE", ""),
		},
		Identity: IdentityConfig{
			UserPoolID:    getEnv("COGNITO_USER_POOL_ID", ""),
			DevBypassAuth: getEnv("DEV_BYPASS_AUTH", "") == "true",
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Tables.Projects == "" {
		return fmt.Errorf("PROJECTS_TABLE is required")
	}
	if c.Tables.Users == "" {
		return fmt.Errorf("USERS_TABLE is required")
	}
	if c.Tables.Assignments == "" {
		return fmt.Errorf("ASSIGNMENTS_TABLE is required")
	}

	if c.Identity.UserPoolID == "" {
		return fmt.Errorf("COGNITO_USER_POOL_ID is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
