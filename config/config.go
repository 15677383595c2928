package config

import (
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	AiProvider  string `env:"AI_PROVIDER" envDefault:"gemini"`
	OpenAI      string `env:"OPENAI" envDefault:""`
	Gemini      string `env:"GEMINI" envDefault:""`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	// Model overrides the provider specific model when set.
	Model string `env:"MODEL" envDefault:""`

	GenerationTimeout  time.Duration `env:"GENERATION_TIMEOUT" envDefault:"45s"`
	GenerationAttempts int           `env:"GENERATION_ATTEMPTS" envDefault:"2"`
	GenerationBackoff  time.Duration `env:"GENERATION_BACKOFF" envDefault:"2s"`

	SeoCsv              string `env:"SEO_CSV" envDefault:""`
	SeoTrendingHashtags int    `env:"SEO_TRENDING_HASHTAGS" envDefault:"3"`
	DefaultStyle        string `env:"DEFAULT_STYLE" envDefault:"Luxury"`
	DefaultLanguage     string `env:"DEFAULT_LANGUAGE" envDefault:"pidgin"`

	Output string `env:"OUTPUT" envDefault:"./output"`
	Listen string `env:"LISTEN" envDefault:":1323"`

	DiscordName         string `env:"DISCORD_NAME" envDefault:"NaijaStoic"`
	DiscordWebhookInfo  string `env:"DISCORD_WEBHOOK_INFO" envDefault:""`
	DiscordWebhookError string `env:"DISCORD_WEBHOOK_ERROR" envDefault:""`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var TheConfig = &Config{}

var gitHash, gitVersion string

// Parse reads an optional .env file and the process environment into a
// fresh Config.
func Parse() (*Config, error) {
	_ = godotenv.Load()
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, errs.New(errs.Configuration, "parsing environment", err)
	}
	c.AiProvider = strings.ToLower(strings.TrimSpace(c.AiProvider))
	if c.GenerationAttempts < 1 {
		c.GenerationAttempts = 1
	}
	return c, nil
}

// Configure populates TheConfig and the log level. Parse failures are fatal.
func Configure() {
	c, err := Parse()
	if err != nil {
		log.Fatalf("error parsing config: %v", err)
	}
	*TheConfig = *c
	level, err := log.ParseLevel(TheConfig.LogLevel)
	if err != nil {
		log.Warnf("unknown LOG_LEVEL %q, using info", TheConfig.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.Infof("Running: %s, %s", gitVersion, gitHash)
}

// Validate checks the preconditions for talking to the generation backend.
func (c *Config) Validate() error {
	switch c.AiProvider {
	case ProviderGemini:
		if c.Gemini == "" {
			return errs.Newf(errs.Configuration, "GEMINI api key is required when AI_PROVIDER=%s", c.AiProvider)
		}
	case ProviderOpenAI:
		if c.OpenAI == "" {
			return errs.Newf(errs.Configuration, "OPENAI api key is required when AI_PROVIDER=%s", c.AiProvider)
		}
	default:
		return errs.Newf(errs.Configuration, "unsupported AI_PROVIDER %q", c.AiProvider)
	}
	if c.GenerationTimeout <= 0 {
		return errs.Newf(errs.Configuration, "GENERATION_TIMEOUT must be positive, got %s", c.GenerationTimeout)
	}
	return nil
}

// ModelName resolves the model for the configured provider.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.AiProvider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// APIKey returns the credential of the configured provider.
func (c *Config) APIKey() string {
	if c.AiProvider == ProviderOpenAI {
		return c.OpenAI
	}
	return c.Gemini
}
