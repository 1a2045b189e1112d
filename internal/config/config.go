package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	Email    EmailConfig
	Logging  LoggingConfig
}

type AppConfig struct {
	Port        int
	Environment string
	SiteURL     string
}

type DatabaseConfig struct {
	// URL is the Postgres connection string for the managed database.
	URL string
}

// SupabaseConfig points at the hosted auth service.
type SupabaseConfig struct {
	URL     string
	AnonKey string
}

// EmailConfig configures the feedback email dispatch.
type EmailConfig struct {
	Region string
	From   string
	To     string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Addr returns the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Supabase.URL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.Supabase.AnonKey == "" {
		return fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	return nil
}
