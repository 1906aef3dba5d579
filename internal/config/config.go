package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
		Circulation
		OpenLibrary
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Circulation struct {
		LoanPeriodDays int // Default due date offset when none is given
	}
	OpenLibrary struct {
		BaseURL string
	}
)

func NewConfig() *Config {
	// Local development keeps settings in a .env file; absence is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("loan_period_days", 14)
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("port"),
			Host: v.GetString("host"),
		},
		Database: Database{
			Path: v.GetString("database_path"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("shutdown_timeout_in_seconds"),
		},
		Circulation: Circulation{
			LoanPeriodDays: v.GetInt("loan_period_days"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL: v.GetString("openlibrary_base_url"),
		},
	}
}
