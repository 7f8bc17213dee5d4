package mappers

import (
	"fmt"

	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/service"
	"github.com/shopspring/decimal"
)

// MapToLineItems converts the items of a checkout request into order lines
func MapToLineItems(items []models.IncomingItemRest) ([]service.LineItem, error) {
	lineItems := make([]service.LineItem, 0, len(items))
	for _, i := range items {
		price, err := decimal.NewFromString(i.Price)
		if err != nil {
			return nil, fmt.Errorf("price [%s] of item [%s] format incorrect", i.Price, i.Name)
		}
		lineItems = append(lineItems, service.LineItem{
			Name:        i.Name,
			Price:       price,
			Quantity:    i.Quantity,
			SKU:         i.SKU,
			Description: i.Description,
		})
	}
	return lineItems, nil
}

// MapToAmount parses an optional amount, empty meaning zero
func MapToAmount(amount string) (decimal.Decimal, error) {
	if amount == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount [%s] format incorrect", amount)
	}
	return d, nil
}

func MapToCheckoutResponse(result service.CheckoutResult) models.CheckoutResponseRest {
	return models.CheckoutResponseRest{
		PaymentID:   result.PaymentID,
		ApprovalURL: result.ApprovalURL,
	}
}

func MapToTransactionResponse(paymentID string, outcome service.TransactionOutcome) models.TransactionResponseRest {
	return models.TransactionResponseRest{
		PaymentID:     paymentID,
		State:         outcome.State,
		Approved:      outcome.Approved(),
		TransactionID: outcome.TransactionID,
		ErrorMessage:  outcome.ErrorMessage,
	}
}
