package handlers

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/helpers"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/service"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/utils"
	"github.com/gorilla/mux"
)

// HandleGetPayment returns the payment as PayPal currently has it
func HandleGetPayment(w http.ResponseWriter, req *http.Request) {
	// get checkout session from context, put there by the checkout session interceptor
	session, ok := req.Context().Value(helpers.ContextKeyCheckoutSession).(*service.CheckoutSession)
	if !ok {
		log.ErrorR(req, fmt.Errorf("invalid CheckoutSession in request context"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	id := mux.Vars(req)["payment_id"]

	result, err := session.Lookup(req.Context(), id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error looking up paypal payment: [%v]", err), log.Data{"payment_id": id})
		utils.WriteMessageWithStatus(w, req, failureMessage(session, err), failureStatus(err))
		return
	}

	utils.WriteJSONWithStatus(w, req, result.Response, http.StatusOK)

	log.InfoR(req, "Successful GET request for paypal payment", log.Data{"payment_id": id, "state": result.Outcome.State})
}

// HandleGetTransaction returns the sale id of an approved payment
func HandleGetTransaction(w http.ResponseWriter, req *http.Request) {
	session, ok := req.Context().Value(helpers.ContextKeyCheckoutSession).(*service.CheckoutSession)
	if !ok {
		log.ErrorR(req, fmt.Errorf("invalid CheckoutSession in request context"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	id := mux.Vars(req)["payment_id"]

	transactionID := session.TransactionID(req.Context(), id)
	if transactionID == "" {
		message := session.ErrorMessage()
		if message == "" {
			message = "no transaction found for payment"
		}
		log.ErrorR(req, fmt.Errorf("no paypal transaction id: [%s]", message), log.Data{"payment_id": id})
		utils.WriteMessageWithStatus(w, req, message, http.StatusNotFound)
		return
	}

	utils.WriteJSONWithStatus(w, req, map[string]string{"payment_id": id, "transaction_id": transactionID}, http.StatusOK)
}
