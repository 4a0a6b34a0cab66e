package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers understood by the repository layer.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DBDriver     string
	DatabaseURL  string
	SQLitePath   string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Display and parsing of amounts and dates
	AmountDecimalSep  string `mapstructure:"AMOUNT_DECIMAL_SEP"`
	AmountThousandSep string `mapstructure:"AMOUNT_THOUSAND_SEP"`
	DateDisplayFormat string `mapstructure:"DATE_DISPLAY_FORMAT"`
	CollationLocale   string `mapstructure:"COLLATION_LOCALE"`

	// SettlementWarnUnbalanced asks for a confirmation before settling an unbalanced selection.
	SettlementWarnUnbalanced bool

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_DRIVER", DriverSQLite)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "bookkeeping.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("AMOUNT_DECIMAL_SEP", ".")
	viper.SetDefault("AMOUNT_THOUSAND_SEP", " ")
	viper.SetDefault("DATE_DISPLAY_FORMAT", "dmy")
	viper.SetDefault("COLLATION_LOCALE", "und")
	viper.SetDefault("SETTLEMENT_WARN_UNBALANCED", true)
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DBDriver = strings.ToLower(viper.GetString("DB_DRIVER"))
	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		log.Printf("Warning: Invalid value for DB_DRIVER ('%s'). Defaulting to %s.\n", cfg.DBDriver, DriverSQLite)
		cfg.DBDriver = DriverSQLite
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.AmountDecimalSep = viper.GetString("AMOUNT_DECIMAL_SEP")
	if cfg.AmountDecimalSep == "" {
		cfg.AmountDecimalSep = "."
	}
	cfg.AmountThousandSep = viper.GetString("AMOUNT_THOUSAND_SEP")
	if cfg.AmountThousandSep == cfg.AmountDecimalSep {
		log.Printf("Warning: AMOUNT_THOUSAND_SEP equals AMOUNT_DECIMAL_SEP ('%s'). Disabling thousands separator.\n", cfg.AmountThousandSep)
		cfg.AmountThousandSep = ""
	}

	cfg.DateDisplayFormat = strings.ToLower(viper.GetString("DATE_DISPLAY_FORMAT"))
	switch cfg.DateDisplayFormat {
	case "dmy", "mdy", "ymd":
	default:
		log.Printf("Warning: Invalid value for DATE_DISPLAY_FORMAT ('%s'). Defaulting to dmy.\n", cfg.DateDisplayFormat)
		cfg.DateDisplayFormat = "dmy"
	}

	cfg.CollationLocale = viper.GetString("COLLATION_LOCALE")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.SettlementWarnUnbalanced = viper.GetBool("SETTLEMENT_WARN_UNBALANCED")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
