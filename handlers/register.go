package handlers

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/interceptors"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/service"
	"github.com/gorilla/mux"
)

var cfg *config.Config

// newCheckoutSession builds the session used by a single request. It is a
// variable so unit tests can swap in a mock transport.
var newCheckoutSession = func(c *config.Config) (*service.CheckoutSession, error) {
	transport, err := service.NewPayPalTransport(c.PaypalClientID, c.PaypalSecret, c.Sandbox())
	if err != nil {
		return nil, err
	}
	transport.SetTimeout(c.PaypalTimeout())

	return service.NewCheckoutSessionWithTransport(transport).
		SetCurrency(c.Currency).
		SetReturnURL(c.ReturnURL()).
		SetCancelURL(c.CancelURL()), nil
}

// Register defines the route mappings for the main router and it's subrouters
func Register(mainRouter *mux.Router, c config.Config) {
	cfg = &c

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")

	checkoutRouter := mainRouter.PathPrefix("/checkout").Subrouter()
	checkoutRouter.HandleFunc("", HandleCreateCheckout).Methods("POST").Name("create-checkout")
	// PayPal sends the buyer back here through the return and cancel urls
	checkoutRouter.HandleFunc("/{status}", HandleCheckoutReturn).Methods("GET").Name("checkout-return")

	checkoutSessionInterceptor := interceptors.CheckoutSessionInterceptor{
		NewSession: func() (*service.CheckoutSession, error) { return newCheckoutSession(cfg) },
	}

	paymentRouter := mainRouter.PathPrefix("/payments/{payment_id}").Subrouter()
	paymentRouter.HandleFunc("", HandleGetPayment).Methods("GET").Name("get-payment")
	paymentRouter.HandleFunc("/transaction", HandleGetTransaction).Methods("GET").Name("get-transaction")

	checkoutRouter.Use(log.Handler)
	paymentRouter.Use(log.Handler, checkoutSessionInterceptor.CheckoutSessionIntercept)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// failureStatus maps a failed checkout operation to the status returned to the caller
func failureStatus(err error) int {
	kind, ok := service.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case service.EmptyInput, service.NotApproved:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// failureMessage prefers the message PayPal gave over the error itself
func failureMessage(session *service.CheckoutSession, err error) string {
	if msg := session.ErrorMessage(); msg != "" {
		return msg
	}
	return err.Error()
}
