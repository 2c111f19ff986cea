package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Gemini struct {
	APIKey  string        `yaml:"GEMINI_API_KEY" env:"GEMINI_API_KEY" env-default:""`
	Model   string        `yaml:"GEMINI_MODEL" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
	Timeout time.Duration `yaml:"GEMINI_TIMEOUT" env:"GEMINI_TIMEOUT" env-default:"30s"`
}

type R2 struct {
	AccountID       string `yaml:"R2_ACCOUNT_ID" env:"R2_ACCOUNT_ID" env-default:""`
	AccessKeyID     string `yaml:"R2_ACCESS_KEY_ID" env:"R2_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `yaml:"R2_SECRET_ACCESS_KEY" env:"R2_SECRET_ACCESS_KEY" env-default:""`
	Bucket          string `yaml:"R2_BUCKET" env:"R2_BUCKET" env-default:"ec-site-images"`
	PublicURL       string `yaml:"R2_PUBLIC_URL" env:"R2_PUBLIC_URL" env-required:"true"`
}

type GitHub struct {
	Token  string `yaml:"GITHUB_TOKEN" env:"GITHUB_TOKEN" env-default:""`
	Owner  string `yaml:"GITHUB_OWNER" env:"GITHUB_OWNER" env-required:"true"`
	Repo   string `yaml:"GITHUB_REPO" env:"GITHUB_REPO" env-required:"true"`
	Branch string `yaml:"GITHUB_BRANCH" env:"GITHUB_BRANCH" env-default:"main"`
}

type SendGrid struct {
	APIKey     string `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail  string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"noreply@aminati-ec.com"`
	FromName   string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"AMINATI_EC"`
	OrderEmail string `yaml:"ORDER_EMAIL" env:"SENDGRID_ORDER_EMAIL" env-default:"order@aminati-ec.com"`
}

type RedisConnect struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"720h"`
}

// Store carries the presentation defaults that used to live in the
// original admin-settings storage.
type Store struct {
	Name             string `yaml:"name" env:"STORE_NAME" env-default:"AMINATI_EC"`
	BrandFallback    string `yaml:"brand_fallback" env:"STORE_BRAND_FALLBACK" env-default:"AMINATI COLLECTION"`
	PlaceholderImage string `yaml:"placeholder_image" env:"STORE_PLACEHOLDER_IMAGE" env-default:"https://via.placeholder.com/500x625/f5f5f5/666666?text=No+Image"`
	CODFee           int64  `yaml:"cod_fee" env:"STORE_COD_FEE" env-default:"330"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Gemini       Gemini       `yaml:"gemini"`
	R2           R2           `yaml:"r2"`
	GitHub       GitHub       `yaml:"github"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	Store        Store        `yaml:"store"`
}

func MustLoad() *Config {

	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}

// Endpoint returns the S3-compatible endpoint for the R2 account.
func (r *R2) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.AccountID)
}

func (r *RedisConnect) Enabled() bool {
	return r.Addr != ""
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://:%s@%s/%d", r.Password, r.Addr, r.DB)
}
