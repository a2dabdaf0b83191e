package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Meta          Meta          `mapstructure:",squash"`
	Sheets        Sheets        `mapstructure:",squash"`
	Export        Export        `mapstructure:",squash"`
	PipelineSync  PipelineSync  `mapstructure:",squash"`
	WeeklySummary WeeklySummary `mapstructure:",squash"`
	Metrics       Metrics       `mapstructure:",squash"`
	Alerts        Alerts        `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL               string   `mapstructure:"meta_base_url"`
	URL                   string   `mapstructure:"meta_url"`
	Version               string   `mapstructure:"meta_version"`
	AccessToken           string   `mapstructure:"meta_access_token"`
	AdAccountID           string   `mapstructure:"meta_ad_account_id"`
	CampaignAllowlist     []string `mapstructure:"meta_campaign_allowlist"`
	RateLimitMaxRequests  int      `mapstructure:"meta_rate_limit_max_requests"`
	RateLimitWindowSec    int      `mapstructure:"meta_rate_limit_window_seconds"`
	MaxRetries            int      `mapstructure:"meta_max_retries"`
	BackoffBaseSeconds    int      `mapstructure:"meta_backoff_base_seconds"`
	RequestTimeoutSeconds int      `mapstructure:"meta_request_timeout_seconds"`
	MaxConcurrentFetches  int      `mapstructure:"meta_max_concurrent_fetches"`
	MaxLookbackDays       int      `mapstructure:"meta_max_lookback_days"`
}

type Sheets struct {
	BaseURL               string `mapstructure:"sheets_base_url"`
	SpreadsheetID         string `mapstructure:"sheets_spreadsheet_id"`
	AccessToken           string `mapstructure:"sheets_access_token"`
	Enabled               bool   `mapstructure:"sheets_enabled"`
	MaxSyncRetries        int    `mapstructure:"sheets_max_sync_retries"`
	RequestTimeoutSeconds int    `mapstructure:"sheets_request_timeout_seconds"`
}

type Export struct {
	Enabled   bool   `mapstructure:"export_enabled"`
	Directory string `mapstructure:"export_directory"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type PipelineSync struct {
	UpdateIntervalHours  int    `mapstructure:"pipeline_update_interval_hours"`
	DailyReportTime      string `mapstructure:"pipeline_daily_report_time"`
	LookbackDays         int    `mapstructure:"pipeline_lookback_days"`
	ComparisonWindowDays int    `mapstructure:"pipeline_comparison_window_days"`
	Enabled              bool   `mapstructure:"pipeline_sync_enabled"`
}

type WeeklySummary struct {
	Day     string `mapstructure:"weekly_summary_day"`
	Time    string `mapstructure:"weekly_summary_time"`
	Enabled bool   `mapstructure:"weekly_summary_enabled"`
}

type Metrics struct {
	WeightROAS  float64 `mapstructure:"efficiency_weight_roas"`
	WeightCTR   float64 `mapstructure:"efficiency_weight_ctr"`
	WeightCPM   float64 `mapstructure:"efficiency_weight_cpm"`
	ResultValue float64 `mapstructure:"result_value"`
}

type Alerts struct {
	RoasDeclineThreshold       float64 `mapstructure:"alert_roas_decline_threshold"`
	SpendIncreaseThreshold     float64 `mapstructure:"alert_spend_increase_threshold"`
	ConversionDeclineThreshold float64 `mapstructure:"alert_conversion_decline_threshold"`
	CriticalMultiplier         float64 `mapstructure:"alert_critical_multiplier"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaign_tracker")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_URL", "https://graph.facebook.com/v22.0")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_AD_ACCOUNT_ID", "your_ad_account_id")
	viper.SetDefault("META_CAMPAIGN_ALLOWLIST", "")

	// Defaults de proteção da API do Meta
	viper.SetDefault("META_RATE_LIMIT_MAX_REQUESTS", 20)   // 20 requisições por janela
	viper.SetDefault("META_RATE_LIMIT_WINDOW_SECONDS", 60) // Janela deslizante de 60 segundos
	viper.SetDefault("META_MAX_RETRIES", 3)                // 3 tentativas antes de desistir
	viper.SetDefault("META_BACKOFF_BASE_SECONDS", 2)       // Backoff exponencial a partir de 2s
	viper.SetDefault("META_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_MAX_CONCURRENT_FETCHES", 5)
	viper.SetDefault("META_MAX_LOOKBACK_DAYS", 30) // Limite de 30 dias por consulta

	viper.SetDefault("SHEETS_BASE_URL", "https://sheets.googleapis.com/v4")
	viper.SetDefault("SHEETS_SPREADSHEET_ID", "your_spreadsheet_id")
	viper.SetDefault("SHEETS_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("SHEETS_ENABLED", false)
	viper.SetDefault("SHEETS_MAX_SYNC_RETRIES", 3)
	viper.SetDefault("SHEETS_REQUEST_TIMEOUT_SECONDS", 30)

	viper.SetDefault("EXPORT_ENABLED", false)
	viper.SetDefault("EXPORT_DIRECTORY", "./reports")

	// Defaults da pipeline de coleta e sincronização
	viper.SetDefault("PIPELINE_UPDATE_INTERVAL_HOURS", 1) // Atualização horária
	viper.SetDefault("PIPELINE_DAILY_REPORT_TIME", "09:00")
	viper.SetDefault("PIPELINE_LOOKBACK_DAYS", 30)
	viper.SetDefault("PIPELINE_COMPARISON_WINDOW_DAYS", 7)
	viper.SetDefault("PIPELINE_SYNC_ENABLED", false)

	viper.SetDefault("WEEKLY_SUMMARY_DAY", "monday")
	viper.SetDefault("WEEKLY_SUMMARY_TIME", "10:00")
	viper.SetDefault("WEEKLY_SUMMARY_ENABLED", false)

	// Pesos do score de eficiência e valor por resultado
	viper.SetDefault("EFFICIENCY_WEIGHT_ROAS", 0.5)
	viper.SetDefault("EFFICIENCY_WEIGHT_CTR", 0.3)
	viper.SetDefault("EFFICIENCY_WEIGHT_CPM", 0.2)
	viper.SetDefault("RESULT_VALUE", 1.0)

	// Limiares de alerta em percentual de variação diária
	viper.SetDefault("ALERT_ROAS_DECLINE_THRESHOLD", -15.0)
	viper.SetDefault("ALERT_SPEND_INCREASE_THRESHOLD", 20.0)
	viper.SetDefault("ALERT_CONVERSION_DECLINE_THRESHOLD", -20.0)
	viper.SetDefault("ALERT_CRITICAL_MULTIPLIER", 2.0)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	// Normalizar a lista de campanhas permitidas
	allowlist := make([]string, 0, len(config.Meta.CampaignAllowlist))
	for _, id := range config.Meta.CampaignAllowlist {
		id = strings.TrimSpace(id)
		if id != "" {
			allowlist = append(allowlist, id)
		}
	}
	config.Meta.CampaignAllowlist = allowlist

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
