// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Source SourceConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// SourceConfig locates the spreadsheet sources. With CredentialsFile set the
// Google Sheets provider is used and DataSource/FieldLogSource are spreadsheet
// names; otherwise they are local xlsx paths.
type SourceConfig struct {
	CredentialsFile string
	DataSource      string
	FieldLogSource  string

	// Google mode: spreadsheet IDs behind the source names.
	DataSpreadsheetID     string
	FieldLogSpreadsheetID string

	// Offline mode: exported workbook paths behind the source names.
	DataWorkbook     string
	FieldLogWorkbook string

	QuotesSheet    string
	OrdersSheet    string
	CustomersSheet string
	ProductsSheet  string
	RatesSheet     string
	PersonnelSheet string
	HolidaysSheet  string
	CitiesSheet    string
	FieldLogYears  []string

	RetryAttempts   int
	RetryDelaySecs  int
	RefreshInterval int // minutes, 0 disables background refresh
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	SnapshotTTLSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("SHEETS_CREDENTIALS_FILE", "")
		viper.SetDefault("SHEETS_DATA_SOURCE", "DHE_Data")
		viper.SetDefault("SHEETS_FIELD_LOG_SOURCE", "2025 SERVİS PROGRAMI")
		viper.SetDefault("SHEETS_DATA_SPREADSHEET_ID", "")
		viper.SetDefault("SHEETS_FIELD_LOG_SPREADSHEET_ID", "")
		viper.SetDefault("XLSX_DATA_WORKBOOK", "./data/DHE_Data.xlsx")
		viper.SetDefault("XLSX_FIELD_LOG_WORKBOOK", "./data/servis_programi.xlsx")
		viper.SetDefault("SHEETS_QUOTES_SHEET", "teklif")
		viper.SetDefault("SHEETS_ORDERS_SHEET", "siparis")
		viper.SetDefault("SHEETS_CUSTOMERS_SHEET", "müsteri")
		viper.SetDefault("SHEETS_PRODUCTS_SHEET", "ürün")
		viper.SetDefault("SHEETS_RATES_SHEET", "kurlar")
		viper.SetDefault("SHEETS_PERSONNEL_SHEET", "Personel")
		viper.SetDefault("SHEETS_HOLIDAYS_SHEET", "Tatiller")
		viper.SetDefault("SHEETS_CITIES_SHEET", "sehirler")
		viper.SetDefault("SHEETS_FIELD_LOG_YEARS", []string{"2024", "2025", "2026"})
		viper.SetDefault("SHEETS_RETRY_ATTEMPTS", 3)
		viper.SetDefault("SHEETS_RETRY_DELAY_SECONDS", 2)
		viper.SetDefault("REFRESH_INTERVAL_MINUTES", 0)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SNAPSHOT_TTL_SECONDS", 0)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Source: SourceConfig{
				CredentialsFile:       viper.GetString("SHEETS_CREDENTIALS_FILE"),
				DataSource:            viper.GetString("SHEETS_DATA_SOURCE"),
				FieldLogSource:        viper.GetString("SHEETS_FIELD_LOG_SOURCE"),
				DataSpreadsheetID:     viper.GetString("SHEETS_DATA_SPREADSHEET_ID"),
				FieldLogSpreadsheetID: viper.GetString("SHEETS_FIELD_LOG_SPREADSHEET_ID"),
				DataWorkbook:          viper.GetString("XLSX_DATA_WORKBOOK"),
				FieldLogWorkbook:      viper.GetString("XLSX_FIELD_LOG_WORKBOOK"),
				QuotesSheet:           viper.GetString("SHEETS_QUOTES_SHEET"),
				OrdersSheet:           viper.GetString("SHEETS_ORDERS_SHEET"),
				CustomersSheet:        viper.GetString("SHEETS_CUSTOMERS_SHEET"),
				ProductsSheet:         viper.GetString("SHEETS_PRODUCTS_SHEET"),
				RatesSheet:            viper.GetString("SHEETS_RATES_SHEET"),
				PersonnelSheet:        viper.GetString("SHEETS_PERSONNEL_SHEET"),
				HolidaysSheet:         viper.GetString("SHEETS_HOLIDAYS_SHEET"),
				CitiesSheet:           viper.GetString("SHEETS_CITIES_SHEET"),
				FieldLogYears:         viper.GetStringSlice("SHEETS_FIELD_LOG_YEARS"),
				RetryAttempts:         viper.GetInt("SHEETS_RETRY_ATTEMPTS"),
				RetryDelaySecs:        viper.GetInt("SHEETS_RETRY_DELAY_SECONDS"),
				RefreshInterval:       viper.GetInt("REFRESH_INTERVAL_MINUTES"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				SnapshotTTLSeconds: viper.GetInt("CACHE_SNAPSHOT_TTL_SECONDS"),
			},
		}
	})

	return instance
}
