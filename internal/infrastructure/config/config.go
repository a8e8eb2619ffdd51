package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ranking-insight/internal/domain/ranking"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 儲存 HTTP API、排名資料來源及外部相依的執行設定。
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	DB       DBConfig       `yaml:"db"`
	Auth     AuthConfig     `yaml:"auth"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Ranking  RankingConfig  `yaml:"ranking"`
	PAAPI    PAAPIConfig    `yaml:"paapi"`
	Redis    RedisConfig    `yaml:"redis"`
	Insights InsightsConfig `yaml:"insights"`
	Reports  ReportsConfig  `yaml:"reports"`
	Notifier NotifierConfig `yaml:"notifier"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	// Driver 為 sqlite 或 pgx。
	Driver       string        `yaml:"driver"`
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxIdleTime  time.Duration `yaml:"max_idle_time"`
}

type AuthConfig struct {
	TokenTTL          time.Duration `yaml:"token_ttl"`
	Secret            string        `yaml:"secret"`
	AdminEmail        string        `yaml:"admin_email"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
}

type CatalogConfig struct {
	CSVPath    string `yaml:"csv_path"`
	FocusBrand string `yaml:"focus_brand"`
}

type RankingConfig struct {
	// Provider 為 mock 或 live。
	Provider    string   `yaml:"provider"`
	DefaultDays int      `yaml:"default_days"`
	Categories  []string `yaml:"categories"`
	Seed        uint64   `yaml:"seed"`
}

type PAAPIConfig struct {
	AccessKey   string        `yaml:"access_key"`
	SecretKey   string        `yaml:"secret_key"`
	PartnerTag  string        `yaml:"partner_tag"`
	Region      string        `yaml:"region"`
	Marketplace string        `yaml:"marketplace"`
	Host        string        `yaml:"host"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxPages    int           `yaml:"max_pages"`
}

// HasCredentials 表示三項 PA-API 憑證皆已設定。
func (c PAAPIConfig) HasCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.PartnerTag != ""
}

type RedisConfig struct {
	Addr string        `yaml:"addr"`
	TTL  time.Duration `yaml:"ttl"`
}

type InsightsConfig struct {
	LLMEnabled    bool   `yaml:"llm_enabled"`
	BedrockRegion string `yaml:"bedrock_region"`
	ModelID       string `yaml:"model_id"`
}

type ReportsConfig struct {
	OutputDir string `yaml:"output_dir"`
	S3Bucket  string `yaml:"s3_bucket"`
	S3Prefix  string `yaml:"s3_prefix"`
	Region    string `yaml:"region"`
}

type NotifierConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  int64  `yaml:"chat_id"`
}

type PipelineConfig struct {
	AutoInterval time.Duration `yaml:"auto_interval"`
}

// LoadFromFile 從 YAML 組態檔載入設定。
func LoadFromFile(path string) (Config, error) {
	// 嘗試載入 .env 檔案（如果存在）
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate 檢查 ranking.categories 只包含已知類別。
func (c Config) validate() error {
	var unknown []string
	for _, cat := range c.Ranking.Categories {
		if !ranking.IsKnownCategory(cat) {
			unknown = append(unknown, cat)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("ranking.categories: unknown %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(ranking.Categories, ", "))
	}
	return nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "sqlite"
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 5
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 2
	}
	if cfg.DB.MaxIdleTime == 0 {
		cfg.DB.MaxIdleTime = 15 * time.Minute
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 30 * time.Minute
	}
	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = "dev-secret-change-me"
	}
	if cfg.Auth.AdminEmail == "" {
		cfg.Auth.AdminEmail = "admin@example.com"
	}
	if cfg.Catalog.FocusBrand == "" {
		cfg.Catalog.FocusBrand = "LANEIGE"
	}
	if cfg.Ranking.Provider == "" {
		cfg.Ranking.Provider = "mock"
	}
	if cfg.Ranking.DefaultDays <= 0 {
		cfg.Ranking.DefaultDays = 30
	}
	if cfg.PAAPI.Region == "" {
		cfg.PAAPI.Region = "us-east-1"
	}
	if cfg.PAAPI.Marketplace == "" {
		cfg.PAAPI.Marketplace = "www.amazon.com"
	}
	if cfg.PAAPI.Host == "" {
		cfg.PAAPI.Host = "webservices.amazon.com"
	}
	if cfg.PAAPI.Timeout == 0 {
		cfg.PAAPI.Timeout = 10 * time.Second
	}
	if cfg.PAAPI.MaxPages == 0 {
		cfg.PAAPI.MaxPages = 10
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 24 * time.Hour
	}
	if cfg.Insights.BedrockRegion == "" {
		cfg.Insights.BedrockRegion = "us-east-1"
	}
	if cfg.Insights.ModelID == "" {
		cfg.Insights.ModelID = "anthropic.claude-3-haiku-20240307-v1:0"
	}
	if cfg.Reports.OutputDir == "" {
		cfg.Reports.OutputDir = "output"
	}
	if cfg.Reports.S3Prefix == "" {
		cfg.Reports.S3Prefix = "reports/"
	}
	if cfg.Reports.Region == "" {
		cfg.Reports.Region = "us-east-1"
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("DB_DRIVER"); val != "" {
		cfg.DB.Driver = val
	}
	if val := os.Getenv("DB_DSN"); val != "" {
		cfg.DB.DSN = val
	}
	if val := os.Getenv("AUTH_SECRET"); val != "" {
		cfg.Auth.Secret = val
	}
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		cfg.Auth.AdminEmail = val
	}
	if val := os.Getenv("ADMIN_PASSWORD_HASH"); val != "" {
		cfg.Auth.AdminPasswordHash = val
	}
	if val := os.Getenv("CATALOG_CSV"); val != "" {
		cfg.Catalog.CSVPath = val
	}
	if val := os.Getenv("RANKING_PROVIDER"); val != "" {
		cfg.Ranking.Provider = strings.ToLower(val)
	}
	if val := os.Getenv("PA_API_ACCESS_KEY"); val != "" {
		cfg.PAAPI.AccessKey = val
	}
	if val := os.Getenv("PA_API_SECRET_KEY"); val != "" {
		cfg.PAAPI.SecretKey = val
	}
	if val := os.Getenv("PA_API_PARTNER_TAG"); val != "" {
		cfg.PAAPI.PartnerTag = val
	}
	if val := os.Getenv("PA_API_REGION"); val != "" {
		cfg.PAAPI.Region = val
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		cfg.Redis.Addr = val
	}
	if val := os.Getenv("INSIGHTS_LLM_ENABLED"); val != "" {
		cfg.Insights.LLMEnabled = (val == "true")
	}
	if val := os.Getenv("BEDROCK_MODEL_ID"); val != "" {
		cfg.Insights.ModelID = val
	}
	if val := os.Getenv("REPORTS_DIR"); val != "" {
		cfg.Reports.OutputDir = val
	}
	if val := os.Getenv("REPORTS_S3_BUCKET"); val != "" {
		cfg.Reports.S3Bucket = val
	}
	if val := os.Getenv("TELEGRAM_TOKEN"); val != "" {
		cfg.Notifier.Telegram.Token = val
	}
	if val := os.Getenv("TELEGRAM_CHAT_ID"); val != "" {
		if id, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Notifier.Telegram.ChatID = id
		}
	}
	if val := os.Getenv("TELEGRAM_ENABLED"); val != "" {
		cfg.Notifier.Telegram.Enabled = (val == "true")
	}
	if val := os.Getenv("AUTO_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Pipeline.AutoInterval = d
		}
	}
	return cfg
}

// ResolveProvider 決定實際使用的資料來源：live 缺少任一憑證時改用 mock。
func (c Config) ResolveProvider() string {
	if c.Ranking.Provider == "live" && c.PAAPI.HasCredentials() {
		return "live"
	}
	return "mock"
}
