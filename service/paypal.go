package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/google/uuid"
	"github.com/plutov/paypal/v4"
)

// Base URLs of the PayPal v1 REST API
const (
	SandboxAPIBase = "https://api.sandbox.paypal.com/v1"
	LiveAPIBase    = "https://api.paypal.com/v1"
)

const (
	tokenPath   = "/oauth2/token"
	paymentPath = "/payments/payment"
)

//go:generate mockgen -destination mock_paypal.go -package service github.com/companieshouse/paypal.checkout.api.ch.gov.uk/service Transport

// Transport is the HTTP capability the checkout session delegates every
// PayPal call to. The HTTP status of a response is ignored: whatever JSON
// object PayPal sends back is decoded and returned, and only failures to make
// the call or read its body are returned as errors.
type Transport interface {
	RequestToken(ctx context.Context) (Response, error)
	Send(ctx context.Context, method, path, accessToken string, payload interface{}) (Response, error)
}

// PayPalTransport implements Transport on top of the PayPal SDK client, which
// holds the credentials, the API base and the underlying http.Client
type PayPalTransport struct {
	Client *paypal.Client
}

// NewPayPalTransport creates a transport for the sandbox or live environment
func NewPayPalTransport(clientID, secret string, sandbox bool) (*PayPalTransport, error) {
	c, err := paypal.NewClient(clientID, secret, getPayPalAPIBase(sandbox))
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	return &PayPalTransport{Client: c}, nil
}

// SetTimeout limits how long a single call to PayPal may take. Zero disables
// the limit.
func (t *PayPalTransport) SetTimeout(timeout time.Duration) *PayPalTransport {
	t.Client.Client.Timeout = timeout
	return t
}

// RequestToken exchanges the client credentials for a bearer token
func (t *PayPalTransport) RequestToken(ctx context.Context) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Client.APIBase+tokenPath,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return nil, fmt.Errorf("error generating token request for PayPal: [%v]", err)
	}

	req.SetBasicAuth(t.Client.ClientID, t.Client.Secret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return t.do(req)
}

// Send makes an authorised call to PayPal, with payload (if any) encoded as
// JSON. POSTs carry a new PayPal-Request-Id so PayPal never applies one twice.
func (t *PayPalTransport) Send(ctx context.Context, method, path, accessToken string, payload interface{}) (Response, error) {
	req, err := t.Client.NewRequest(ctx, method, t.Client.APIBase+path, payload)
	if err != nil {
		return nil, fmt.Errorf("error generating request for PayPal: [%v]", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if method == http.MethodPost {
		req.Header.Set("PayPal-Request-Id", uuid.New().String())
	}

	return t.do(req)
}

func (t *PayPalTransport) do(req *http.Request) (Response, error) {
	resp, err := t.Client.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to PayPal: [%v]", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response from PayPal: [%v]", err)
	}

	log.Debug("paypal response received", log.Data{"method": req.Method, "path": req.URL.Path, "status": resp.StatusCode})

	response := Response{}
	if len(bytes.TrimSpace(body)) == 0 {
		return response, nil
	}

	err = json.Unmarshal(body, &response)
	if err != nil {
		return nil, fmt.Errorf("error reading response from PayPal: [%v]", err)
	}

	return response, nil
}

func getPayPalAPIBase(sandbox bool) string {
	if sandbox {
		return SandboxAPIBase
	}
	return LiveAPIBase
}
