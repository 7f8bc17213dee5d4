package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/models"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of a new checkout session
const DefaultCurrency = "HKD"

// StatusSuccess is the status the return url carries when the buyer approved the payment
const StatusSuccess = "success"

// CheckoutSession accumulates an order and takes it through PayPal's create,
// execute and lookup calls. A session is meant to live for a single request
// and is not safe for concurrent use.
//
// Every call to PayPal is preceded by a fresh client credentials exchange;
// tokens are never cached.
type CheckoutSession struct {
	Transport Transport

	currency      string
	items         []LineItem
	adjustments   Adjustments
	returnURL     string
	cancelURL     string
	errorMessage  string
	transactionID string
}

// NewCheckoutSession creates a session talking to the PayPal sandbox or live
// environment with the given REST app credentials
func NewCheckoutSession(clientID, clientSecret string, sandbox bool) (*CheckoutSession, error) {
	t, err := NewPayPalTransport(clientID, clientSecret, sandbox)
	if err != nil {
		return nil, err
	}
	return NewCheckoutSessionWithTransport(t), nil
}

// NewCheckoutSessionWithTransport creates a session using t for every call to PayPal
func NewCheckoutSessionWithTransport(t Transport) *CheckoutSession {
	return &CheckoutSession{
		Transport: t,
		currency:  DefaultCurrency,
		adjustments: Adjustments{
			DiscountDescription: DefaultDiscountDescription,
		},
	}
}

// AddItem appends item to the order. Empty items are ignored.
func (s *CheckoutSession) AddItem(item LineItem) *CheckoutSession {
	if !item.IsEmpty() {
		s.items = append(s.items, item)
	}
	return s
}

// SetCurrency sets the ISO currency code of the order
func (s *CheckoutSession) SetCurrency(code string) *CheckoutSession {
	s.currency = strings.ToUpper(code)
	return s
}

// SetDiscount sets the discount, clamped at zero. The description only
// replaces the current one when it is not empty.
func (s *CheckoutSession) SetDiscount(value decimal.Decimal, description ...string) *CheckoutSession {
	s.adjustments.Discount = clamp(value)
	if len(description) > 0 && description[0] != "" {
		s.adjustments.DiscountDescription = description[0]
	}
	return s
}

// SetShipping sets the shipping cost, clamped at zero
func (s *CheckoutSession) SetShipping(value decimal.Decimal) *CheckoutSession {
	s.adjustments.Shipping = clamp(value)
	return s
}

// SetTax sets the tax amount, clamped at zero
func (s *CheckoutSession) SetTax(value decimal.Decimal) *CheckoutSession {
	s.adjustments.Tax = clamp(value)
	return s
}

// SetReturnURL sets where PayPal sends the buyer after approving the payment
func (s *CheckoutSession) SetReturnURL(value string) *CheckoutSession {
	s.returnURL = value
	return s
}

// SetCancelURL sets where PayPal sends the buyer after cancelling the payment
func (s *CheckoutSession) SetCancelURL(value string) *CheckoutSession {
	s.cancelURL = value
	return s
}

// Currency returns the currency code of the order
func (s *CheckoutSession) Currency() string {
	return s.currency
}

// Items returns a copy of the items currently in the order
func (s *CheckoutSession) Items() []LineItem {
	return append([]LineItem(nil), s.items...)
}

// Adjustments returns the discount, shipping and tax of the order
func (s *CheckoutSession) Adjustments() Adjustments {
	return s.adjustments
}

// ErrorMessage returns the message of the latest PayPal failure, which may be empty
func (s *CheckoutSession) ErrorMessage() string {
	return s.errorMessage
}

// ComputeQuote prices the order. A non-empty items list replaces the items
// added so far; an empty one leaves them alone. Every item is tagged with the
// session currency.
func (s *CheckoutSession) ComputeQuote(items ...LineItem) (*Quote, error) {
	if len(items) > 0 {
		s.items = append([]LineItem(nil), items...)
	}

	if len(s.items) == 0 {
		return nil, &OperationError{Kind: EmptyInput, Err: errors.New("no items to check out")}
	}

	for i := range s.items {
		s.items[i].Currency = s.currency
	}

	return newQuote(s.currency, s.Items(), s.adjustments), nil
}

// Checkout creates the PayPal payment for the order and returns the url the
// buyer must be redirected to for approval. items, when given, replace the
// items added so far.
func (s *CheckoutSession) Checkout(ctx context.Context, items ...LineItem) (*CheckoutResult, error) {
	quote, err := s.ComputeQuote(items...)
	if err != nil {
		return nil, err
	}

	token, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	response, err := s.Transport.Send(ctx, http.MethodPost, paymentPath, token, newPaymentRequest(quote, s.returnURL, s.cancelURL))
	if err != nil {
		return nil, s.transportFailure(err)
	}

	result, opErr := parseCheckoutResponse(response)
	if opErr != nil {
		if opErr.Kind == APIError {
			s.errorMessage = opErr.Message
		}
		log.Error(fmt.Errorf("error creating paypal payment: [%v]", opErr))
		return nil, opErr
	}

	log.Info("paypal payment created", log.Data{"payment_id": result.PaymentID, "total": quote.Total.StringFixed(2), "currency": quote.Currency})

	return result, nil
}

// Complete executes a payment once the buyer is back from PayPal. status is
// the status carried on the return url; paymentID and payerID are the
// paymentId and PayerID query parameters PayPal appends to it.
func (s *CheckoutSession) Complete(ctx context.Context, status, paymentID, payerID string) (*TransactionResult, error) {
	if !strings.EqualFold(status, StatusSuccess) {
		return nil, &OperationError{Kind: NotApproved, Err: fmt.Errorf("checkout returned with status [%s]", status)}
	}
	if paymentID == "" {
		return nil, &OperationError{Kind: EmptyInput, Err: errors.New("payment id not supplied")}
	}

	token, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%s/execute", paymentPath, url.PathEscape(paymentID))
	response, err := s.Transport.Send(ctx, http.MethodPost, path, token, models.OutgoingPayPalExecuteRequest{PayerID: payerID})
	if err != nil {
		return nil, s.transportFailure(err)
	}

	return s.applyTransactionResponse(paymentID, response)
}

// Lookup fetches a payment from PayPal and refreshes the transaction id and
// error message of the session from it
func (s *CheckoutSession) Lookup(ctx context.Context, paymentID string) (*TransactionResult, error) {
	if paymentID == "" {
		return nil, &OperationError{Kind: EmptyInput, Err: errors.New("payment id not supplied")}
	}

	token, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	response, err := s.Transport.Send(ctx, http.MethodGet, paymentPath+"/"+url.PathEscape(paymentID), token, nil)
	if err != nil {
		return nil, s.transportFailure(err)
	}

	return s.applyTransactionResponse(paymentID, response)
}

// TransactionID returns the sale id of the latest executed or looked up
// payment. When paymentID is given the payment is looked up first; if that
// fails the previous value is returned.
func (s *CheckoutSession) TransactionID(ctx context.Context, paymentID string) string {
	if paymentID != "" {
		if _, err := s.Lookup(ctx, paymentID); err != nil {
			log.Error(fmt.Errorf("error refreshing paypal transaction id: [%v]", err), log.Data{"payment_id": paymentID})
		}
	}
	return s.transactionID
}

func (s *CheckoutSession) applyTransactionResponse(paymentID string, response Response) (*TransactionResult, error) {
	s.transactionID = ""
	s.errorMessage = ""

	if response.Has("error") {
		opErr := apiError(response)
		s.errorMessage = opErr.Message
		return nil, opErr
	}

	if len(response) == 0 {
		return nil, &OperationError{Kind: MissingField, Err: errors.New("empty response from PayPal")}
	}

	outcome := extractTransactionOutcome(response)
	s.transactionID = outcome.TransactionID
	s.errorMessage = outcome.ErrorMessage

	log.Info("paypal payment state read", log.Data{"payment_id": paymentID, "state": outcome.State, "transaction_id": outcome.TransactionID})

	return &TransactionResult{Response: response, Outcome: outcome}, nil
}

// authenticate exchanges the client credentials for a bearer token
func (s *CheckoutSession) authenticate(ctx context.Context) (string, error) {
	response, err := s.Transport.RequestToken(ctx)
	if err != nil {
		return "", s.transportFailure(err)
	}

	if response.Has("error") {
		opErr := apiError(response)
		s.errorMessage = opErr.Message
		log.Error(fmt.Errorf("error authenticating with paypal: [%v]", opErr))
		return "", opErr
	}

	token := response.String("access_token")
	if token == "" {
		return "", &OperationError{Kind: MissingField, Err: errors.New("no access_token in PayPal token response")}
	}

	return token, nil
}

func (s *CheckoutSession) transportFailure(err error) *OperationError {
	s.errorMessage = err.Error()
	log.Error(err)
	return &OperationError{Kind: TransportError, Message: s.errorMessage, Err: err}
}

func newPaymentRequest(quote *Quote, returnURL, cancelURL string) models.OutgoingPayPalPaymentRequest {
	items := make([]models.Item, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, models.Item{
			Name:        item.Name,
			Price:       item.Price.String(),
			Currency:    item.Currency,
			Quantity:    item.Quantity,
			SKU:         item.SKU,
			Description: item.Description,
		})
	}

	return models.OutgoingPayPalPaymentRequest{
		Intent: "sale",
		Payer:  models.Payer{PaymentMethod: "paypal"},
		Transactions: []models.Transaction{
			{
				Amount: models.Amount{
					Total:    quote.Total.StringFixed(2),
					Currency: quote.Currency,
					Details: models.Details{
						Subtotal: quote.Details.Subtotal.StringFixed(2),
						Discount: quote.Details.Discount.StringFixed(2),
						Shipping: quote.Details.Shipping.StringFixed(2),
						Tax:      quote.Details.Tax.StringFixed(2),
					},
				},
				ItemList: models.ItemList{Items: items},
			},
		},
		RedirectURLs: models.RedirectURLs{
			ReturnURL: returnURL,
			CancelURL: cancelURL,
		},
	}
}
