// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/companieshouse/gofigure"
	"github.com/go-playground/validator/v10"
)

var cfg *Config
var mtx sync.Mutex

// PayPal environments accepted in PAYPAL_ENV
const (
	PaypalEnvLive = "live"
	PaypalEnvTest = "test"
)

// Config defines the configuration options for this service.
type Config struct {
	BindAddr             string `env:"BIND_ADDR"              flag:"bind-addr"              flagDesc:"Bind address"`
	PaypalClientID       string `env:"PAYPAL_CLIENT_ID"       flag:"paypal-client-id"       flagDesc:"Client ID for the PayPal REST app"               validate:"required"`
	PaypalSecret         string `env:"PAYPAL_SECRET"          flag:"paypal-secret"          flagDesc:"Secret for the PayPal REST app"                  validate:"required"`
	PaypalEnv            string `env:"PAYPAL_ENV"             flag:"paypal-env"             flagDesc:"PayPal environment, either live or test"         validate:"oneof=live test"`
	PaypalTimeoutSeconds int    `env:"PAYPAL_TIMEOUT_SECONDS" flag:"paypal-timeout-seconds" flagDesc:"Timeout in seconds for each call made to PayPal" validate:"gte=0"`
	Currency             string `env:"CHECKOUT_CURRENCY"      flag:"checkout-currency"      flagDesc:"ISO currency code used for new checkouts"       validate:"required,len=3"`
	CheckoutWebURL       string `env:"CHECKOUT_WEB_URL"       flag:"checkout-web-url"       flagDesc:"Base URL PayPal sends the buyer back to"        validate:"omitempty,url"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:             ":8080",
		PaypalEnv:            PaypalEnvTest,
		PaypalTimeoutSeconds: 30,
		Currency:             "HKD",
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the values required to talk to PayPal are present and
// well formed.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: [%v]", err)
	}
	return nil
}

// Sandbox reports whether calls should be made against the PayPal sandbox.
func (c *Config) Sandbox() bool {
	return strings.ToLower(c.PaypalEnv) != PaypalEnvLive
}

// PaypalTimeout is the http client timeout for calls to PayPal. Zero means no
// timeout.
func (c *Config) PaypalTimeout() time.Duration {
	return time.Duration(c.PaypalTimeoutSeconds) * time.Second
}

// ReturnURL is where PayPal sends the buyer after approving the payment.
func (c *Config) ReturnURL() string {
	return strings.TrimSuffix(c.CheckoutWebURL, "/") + "/checkout/success"
}

// CancelURL is where PayPal sends the buyer after cancelling the payment.
func (c *Config) CancelURL() string {
	return strings.TrimSuffix(c.CheckoutWebURL, "/") + "/checkout/cancel"
}
