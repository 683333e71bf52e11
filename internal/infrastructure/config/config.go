package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AllowedOrigins is the comma-separated CORS allow-list for the public
	// storefront routes.
	AllowedOrigins string `env:"ALLOWED_ORIGINS, default=http://localhost:3000"`

	Mongo   MongoConfig
	AzureAD AzureADConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=printforge"`
}

// AzureADConfig binds token verification to the deployment: tokens must be
// issued by this tenant for this registered application.
type AzureADConfig struct {
	TenantID string `env:"AZURE_AD_TENANT_ID"`
	ClientID string `env:"AZURE_AD_CLIENT_ID"`
	// Audience overrides the default api://<client id> audience.
	Audience string `env:"AZURE_AD_AUDIENCE"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Origins returns the parsed CORS allow-list.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ResolvedAudience returns the expected token audience, defaulting to the
// application id URI.
func (a AzureADConfig) ResolvedAudience() string {
	if a.Audience != "" {
		return a.Audience
	}
	return "api://" + a.ClientID
}

// Issuer returns the expected token issuer for the tenant.
func (a AzureADConfig) Issuer() string {
	return "https://sts.windows.net/" + a.TenantID + "/"
}

// JWKSURL returns the tenant's key discovery endpoint.
func (a AzureADConfig) JWKSURL() string {
	return "https://login.microsoftonline.com/" + a.TenantID + "/discovery/v2.0/keys"
}
