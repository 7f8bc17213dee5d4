package service

import (
	"errors"
	"strings"
)

// StateApproved is the payment state PayPal reports once a sale has gone through
const StateApproved = "approved"

const approvalRel = "approval_url"

// CheckoutResult is returned once PayPal has created a payment awaiting approval
type CheckoutResult struct {
	PaymentID   string
	ApprovalURL string
}

// TransactionOutcome is what could be read from an execute or lookup response
type TransactionOutcome struct {
	State         string
	TransactionID string
	ErrorMessage  string
}

// Approved reports whether PayPal considers the payment approved
func (o TransactionOutcome) Approved() bool {
	return strings.EqualFold(o.State, StateApproved)
}

// TransactionResult carries the raw PayPal response alongside its outcome so
// callers can read fields that are not modelled here
type TransactionResult struct {
	Response Response
	Outcome  TransactionOutcome
}

// apiError builds the failure for a response carrying an "error" field
func apiError(response Response) *OperationError {
	return &OperationError{
		Kind:    APIError,
		Message: response.String("error_description"),
		Err:     errors.New("error returned by PayPal: " + response.String("error")),
	}
}

// parseCheckoutResponse reads the payment id and the first approval link from
// a create payment response
func parseCheckoutResponse(response Response) (*CheckoutResult, *OperationError) {
	if response.Has("error") {
		return nil, apiError(response)
	}

	links, _ := asList(response["links"])
	for _, l := range links {
		link, ok := asObject(l)
		if !ok {
			continue
		}
		if strings.ToLower(stringOf(link["rel"])) == approvalRel {
			href := stringOf(link["href"])
			if href == "" {
				break
			}
			return &CheckoutResult{PaymentID: response.String("id"), ApprovalURL: href}, nil
		}
	}

	return nil, &OperationError{Kind: MissingField, Err: errors.New("no approval_url link in PayPal response")}
}

// extractTransactionOutcome reads the state of a payment and, when approved,
// the id of its sale at transactions[0].related_resources[0].sale.id
func extractTransactionOutcome(response Response) TransactionOutcome {
	outcome := TransactionOutcome{State: response.String("state")}

	if response.Has("state") && outcome.Approved() {
		outcome.TransactionID, _ = saleID(response)
	} else if response.Has("message") {
		outcome.ErrorMessage = response.String("message")
	}

	return outcome
}

func saleID(response Response) (string, bool) {
	transaction, ok := first(response, "transactions")
	if !ok {
		return "", false
	}
	resource, ok := first(transaction, "related_resources")
	if !ok {
		return "", false
	}
	sale, ok := asObject(resource["sale"])
	if !ok {
		return "", false
	}
	id := stringOf(sale["id"])
	return id, id != ""
}
