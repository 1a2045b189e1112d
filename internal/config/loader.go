package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from the environment, with a .env file as a
// convenience for local development. Values are read once at startup.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("SITE_URL", "http://localhost:8080")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("FEEDBACK_FROM", "Tracklet <onboarding@resend.dev>")
	v.SetDefault("FEEDBACK_TO", "tracklet.app@gmail.com")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	cfg := &Config{
		App: AppConfig{
			Port:        v.GetInt("PORT"),
			Environment: v.GetString("APP_ENVIRONMENT"),
			SiteURL:     v.GetString("SITE_URL"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Supabase: SupabaseConfig{
			URL:     v.GetString("SUPABASE_URL"),
			AnonKey: v.GetString("SUPABASE_ANON_KEY"),
		},
		Email: EmailConfig{
			Region: v.GetString("AWS_REGION"),
			From:   v.GetString("FEEDBACK_FROM"),
			To:     v.GetString("FEEDBACK_TO"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
