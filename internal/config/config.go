package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Port       int  `env:"PORT" envDefault:"8080"`

	// Secret keys both the token digests and the password hashes. It must
	// be identical across all instances sharing a database, otherwise
	// every outstanding reset token is silently invalidated.
	Secret string `env:"SECRET,required"`

	PostgresqlURL    string `env:"POSTGRESQL_URL,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	ResetTokenTTL    time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`
	ResetLinkBaseURL url.URL       `env:"RESET_LINK_BASE_URL,required"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	AwsRegion                       string `env:"AWS_REGION,required"`
	AwsAccessKey                    string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey                    string `env:"AWS_SECRET_KEY,required"`
	AwsEmailSender                  string `env:"AWS_EMAIL_SENDER,required"`
	AwsEmailResetLinkTemplate       string `env:"AWS_EMAIL_RESET_LINK_TEMPLATE,required"`
	AwsEmailPasswordChangedTemplate string `env:"AWS_EMAIL_PASSWORD_CHANGED_TEMPLATE,required"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return cfg, nil
}
