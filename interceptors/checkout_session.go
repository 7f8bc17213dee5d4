package interceptors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/helpers"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/service"
	"github.com/gorilla/mux"
)

// CheckoutSessionInterceptor contains the factory used to build the session for a payment request
type CheckoutSessionInterceptor struct {
	NewSession func() (*service.CheckoutSession, error)
}

// CheckoutSessionIntercept checks the request names a payment and adds a
// checkout session for it to the request context
func (checkoutSessionInterceptor CheckoutSessionInterceptor) CheckoutSessionIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["payment_id"]
		if id == "" {
			log.ErrorR(r, fmt.Errorf("CheckoutSessionInterceptor error: no payment id"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		session, err := checkoutSessionInterceptor.NewSession()
		if err != nil {
			log.ErrorR(r, fmt.Errorf("CheckoutSessionInterceptor error when creating checkout session: [%v]", err), log.Data{"payment_id": id})
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), helpers.ContextKeyCheckoutSession, session)

		log.InfoR(r, "CheckoutSessionInterceptor proceeding with request", log.Data{"payment_id": id})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
