package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/shopswift/ebay-autolister/ebay"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all autolister configuration loaded from environment variables.
type Config struct {
	Ebay    EbayConfig
	API     APIConfig
	Listing ListingConfig

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"ebay_autolister.log"`
}

// EbayConfig holds marketplace credentials and environment selection.
type EbayConfig struct {
	ClientID      string `envconfig:"EBAY_CLIENT_ID" default:""`
	ClientSecret  string `envconfig:"EBAY_CLIENT_SECRET" default:""`
	Sandbox       bool   `envconfig:"EBAY_SANDBOX" default:"true"`
	MarketplaceID string `envconfig:"EBAY_MARKETPLACE_ID" default:"EBAY_US"`
}

// APIConfig holds request pacing and batching settings.
type APIConfig struct {
	RateLimitInterval time.Duration `envconfig:"RATE_LIMIT_INTERVAL" default:"100ms"`
	BatchSize         int           `envconfig:"BATCH_SIZE" default:"25"`
	// MaxRetries is parsed and reported but nothing consumes it; failed
	// calls are terminal and surface in the run summary.
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`
}

// ListingConfig holds offer defaults. The DEFAULT policy ids are
// placeholders; sellers replace them with real business policy ids.
type ListingConfig struct {
	Currency            string `envconfig:"LISTING_CURRENCY" default:"USD"`
	FulfillmentPolicyID string `envconfig:"FULFILLMENT_POLICY_ID" default:"DEFAULT"`
	PaymentPolicyID     string `envconfig:"PAYMENT_POLICY_ID" default:"DEFAULT"`
	ReturnPolicyID      string `envconfig:"RETURN_POLICY_ID" default:"DEFAULT"`
}

// Environment names the configured deployment target.
func (e *EbayConfig) Environment() string {
	if e.Sandbox {
		return "sandbox"
	}
	return "production"
}

// APIBaseURL returns the API base URL for the configured environment.
func (e *EbayConfig) APIBaseURL() string {
	if e.Sandbox {
		return ebay.SandboxAPIBaseURL
	}
	return ebay.ProductionAPIBaseURL
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Ebay.ClientID == "" {
		return fmt.Errorf("EBAY_CLIENT_ID is required")
	}
	if c.Ebay.ClientSecret == "" {
		return fmt.Errorf("EBAY_CLIENT_SECRET is required")
	}
	if c.API.BatchSize < 1 || c.API.BatchSize > 25 {
		return fmt.Errorf("BATCH_SIZE must be between 1 and 25, got %d", c.API.BatchSize)
	}
	if c.API.RateLimitInterval < 0 {
		return fmt.Errorf("RATE_LIMIT_INTERVAL must not be negative")
	}
	return nil
}

const sampleEnv = `# eBay API credentials (https://developer.ebay.com/my/keys)
EBAY_CLIENT_ID=your_client_id_here
EBAY_CLIENT_SECRET=your_client_secret_here
EBAY_SANDBOX=true
EBAY_MARKETPLACE_ID=EBAY_US

# Request pacing and batching
RATE_LIMIT_INTERVAL=100ms
BATCH_SIZE=25
MAX_RETRIES=3

# Offer defaults; replace DEFAULT with your business policy ids
LISTING_CURRENCY=USD
FULFILLMENT_POLICY_ID=DEFAULT
PAYMENT_POLICY_ID=DEFAULT
RETURN_POLICY_ID=DEFAULT

# Logging
LOG_LEVEL=info
LOG_FILE=ebay_autolister.log
`

// WriteSampleEnv writes a starter environment file. It refuses to
// overwrite an existing file so real credentials are never clobbered.
func WriteSampleEnv(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(sampleEnv); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
