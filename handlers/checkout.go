package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/mappers"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/service"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// HandleCreateCheckout creates a PayPal payment for the order in the request
// body and returns the url the buyer must be sent to for approval
func HandleCreateCheckout(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var incomingCheckoutRequest models.IncomingCheckoutRequest
	err := requestDecoder.Decode(&incomingCheckoutRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err = validateCheckoutCreate(incomingCheckoutRequest); err != nil {
		log.ErrorR(req, fmt.Errorf("invalid POST request to create checkout: [%v]", err))
		utils.WriteMessageWithStatus(w, req, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := newCheckoutSession(cfg)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating checkout session: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	items, err := applyCheckoutRequest(session, incomingCheckoutRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("invalid amount in checkout request: [%v]", err))
		utils.WriteMessageWithStatus(w, req, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := session.Checkout(req.Context(), items...)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating paypal payment: [%v]", err))
		utils.WriteMessageWithStatus(w, req, failureMessage(session, err), failureStatus(err))
		return
	}

	w.Header().Set("Location", result.ApprovalURL)
	utils.WriteJSONWithStatus(w, req, mappers.MapToCheckoutResponse(*result), http.StatusCreated)

	log.InfoR(req, "Successful POST request for new checkout", log.Data{"payment_id": result.PaymentID, "status": http.StatusCreated})
}

// HandleCheckoutReturn executes the payment once PayPal has sent the buyer back
func HandleCheckoutReturn(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	status := vars["status"]
	if status == "" {
		log.ErrorR(req, fmt.Errorf("checkout status not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	paymentID := utils.QueryValue(req, "paymentId", "paymentID")
	payerID := utils.QueryValue(req, "PayerID", "payerId")

	session, err := newCheckoutSession(cfg)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating checkout session: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	result, err := session.Complete(req.Context(), status, paymentID, payerID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error completing paypal payment: [%v]", err), log.Data{"payment_id": paymentID})
		utils.WriteMessageWithStatus(w, req, failureMessage(session, err), failureStatus(err))
		return
	}

	utils.WriteJSONWithStatus(w, req, mappers.MapToTransactionResponse(paymentID, result.Outcome), http.StatusOK)

	log.InfoR(req, "Checkout completed", log.Data{"payment_id": paymentID, "state": result.Outcome.State})
}

func validateCheckoutCreate(incomingCheckoutRequest models.IncomingCheckoutRequest) error {
	validate := validator.New()
	return validate.Struct(incomingCheckoutRequest)
}

// applyCheckoutRequest sets the currency and adjustments of the request on
// session and returns its items
func applyCheckoutRequest(session *service.CheckoutSession, incoming models.IncomingCheckoutRequest) ([]service.LineItem, error) {
	if incoming.Currency != "" {
		session.SetCurrency(incoming.Currency)
	}

	discount, err := mappers.MapToAmount(incoming.Discount)
	if err != nil {
		return nil, err
	}
	shipping, err := mappers.MapToAmount(incoming.Shipping)
	if err != nil {
		return nil, err
	}
	tax, err := mappers.MapToAmount(incoming.Tax)
	if err != nil {
		return nil, err
	}
	session.SetDiscount(discount, incoming.DiscountDescription).SetShipping(shipping).SetTax(tax)

	return mappers.MapToLineItems(incoming.Items)
}
