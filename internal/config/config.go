package config

import "os"

type Config struct {
	Jira     JiraConfig
	GenAI    GenAIConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Server   ServerConfig
}

type JiraConfig struct {
	BaseURL  string
	Email    string
	APIToken string
}

// DemoMode - Jira 자격증명이 하나라도 없으면 샘플 데이터로 동작
func (c JiraConfig) DemoMode() bool {
	return c.BaseURL == "" || c.Email == "" || c.APIToken == ""
}

type GenAIConfig struct {
	APIKey string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	JWTSecret     string
	JWTAccessTTL  string
	AdminLoginID  string
	AdminPassword string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

func Load() Config {
	return Config{
		Jira: JiraConfig{
			BaseURL:  os.Getenv("JIRA_URL"),
			Email:    os.Getenv("JIRA_EMAIL"),
			APIToken: os.Getenv("JIRA_API_TOKEN"),
		},
		GenAI: GenAIConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			JWTAccessTTL:  getenv("JWT_ACCESS_TTL", "30m"),
			AdminLoginID:  getenv("ADMIN_LOGIN_ID", "admin"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
