package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	BasePath        string        `env:"BASE_PATH" envDefault:"/"`
	ProjectsPath    string        `env:"PROJECTS_PATH" envDefault:"data/projects.json"`
	ProjectsURL     string        `env:"PROJECTS_URL"`
	LoadTimeout     time.Duration `env:"PROJECTS_LOAD_TIMEOUT" envDefault:"5s"`
	SitePath        string        `env:"SITE_CONFIG" envDefault:"data/site.yaml"`
	MediaDir        string        `env:"MEDIA_DIR"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	Log     LogConfig     `envPrefix:"LOG_"`
	Contact ContactConfig `envPrefix:"CONTACT_"`
	SMTP    SMTPConfig    `envPrefix:"SMTP_"`

	Site *Site
}

// LogConfig controls the process logger
type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"10"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"28"`
	Compress   bool   `env:"COMPRESS" envDefault:"true"`
}

// ContactConfig selects how contact form submissions are delivered
type ContactConfig struct {
	// Mode is "simulated" or "smtp".
	Mode            string        `env:"MODE" envDefault:"simulated"`
	SimulatedDelay  time.Duration `env:"SIMULATED_DELAY" envDefault:"1s"`
	SubmitTimeout   time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"10s"`
	BreakerFailures uint32        `env:"BREAKER_FAILURES" envDefault:"3"`
	BreakerTimeout  time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`
}

// SMTPConfig holds the e-mail relay settings used when Contact.Mode is "smtp"
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
	To       string `env:"TO"`
}

// Site holds the business details shown across pages
type Site struct {
	Name          string `yaml:"name"`
	Tagline       string `yaml:"tagline"`
	About         string `yaml:"about"`
	Phone         string `yaml:"phone"`
	Email         string `yaml:"email"`
	Address       string `yaml:"address"`
	FeaturedCount int    `yaml:"featured_count"`
}

// DefaultSite is used when no site file exists
func DefaultSite() *Site {
	return &Site{
		Name:          "Ремонт & Отделка",
		Tagline:       "Профессиональный ремонт и отделка",
		About:         "Профессиональный ремонт и отделка помещений с гарантией качества. Более 10 лет опыта в отрасли.",
		Phone:         "+7 963 320-11-67",
		Email:         "9633201167@mail.ru",
		Address:       "Санкт-Петербург, м. Пионерская",
		FeaturedCount: 3,
	}
}

// Load reads an optional .env file, the environment and the site file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)

	switch cfg.Contact.Mode {
	case "simulated", "smtp":
	default:
		return nil, fmt.Errorf("invalid CONTACT_MODE %q", cfg.Contact.Mode)
	}

	site, err := LoadSite(cfg.SitePath)
	if err != nil {
		return nil, err
	}
	cfg.Site = site
	return &cfg, nil
}

// LoadSite reads the site YAML file. A missing file yields DefaultSite;
// fields left out of the file keep their defaults.
func LoadSite(path string) (*Site, error) {
	site := DefaultSite()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}
	if err := yaml.Unmarshal(data, site); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}
	if site.FeaturedCount <= 0 {
		site.FeaturedCount = DefaultSite().FeaturedCount
	}
	return site, nil
}

// NormalizeBasePath returns "/" or a path with a leading slash and no
// trailing slash.
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}
