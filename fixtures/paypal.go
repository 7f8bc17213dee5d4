package fixtures

import "github.com/companieshouse/paypal.checkout.api.ch.gov.uk/models"

var PaymentID = "PAY-1AB23456CD789012EF34GHIJ"
var PayerID = "QYR5Z8XDVJNXQ"
var AccessToken = "A21AAFEpH4PsADK7qSS7pSRsgzfENtu-Q1ysgEDVDESseMHBYXVJYE8ovjj68elIDy8nF26AwPhfXTIeWAZHSLIsQkSYz9ifg"

// GetTokenResponse returns a successful client credentials response
func GetTokenResponse() map[string]interface{} {
	return map[string]interface{}{
		"scope":        "https://uri.paypal.com/services/payments/payment",
		"access_token": AccessToken,
		"token_type":   "Bearer",
		"app_id":       "APP-80W284485P519543T",
		"expires_in":   float64(32400),
	}
}

// GetOAuthErrorResponse returns the body PayPal sends when the credentials are wrong
func GetOAuthErrorResponse(description string) map[string]interface{} {
	return map[string]interface{}{
		"error":             "invalid_client",
		"error_description": description,
	}
}

// GetCreatedPaymentResponse returns a payment awaiting buyer approval
func GetCreatedPaymentResponse(approvalURL string) map[string]interface{} {
	return map[string]interface{}{
		"id":     PaymentID,
		"intent": "sale",
		"state":  "created",
		"links": []interface{}{
			map[string]interface{}{
				"href":   "https://api.sandbox.paypal.com/v1/payments/payment/" + PaymentID,
				"rel":    "self",
				"method": "GET",
			},
			map[string]interface{}{
				"href":   approvalURL,
				"rel":    "approval_url",
				"method": "REDIRECT",
			},
			map[string]interface{}{
				"href":   "https://api.sandbox.paypal.com/v1/payments/payment/" + PaymentID + "/execute",
				"rel":    "execute",
				"method": "POST",
			},
		},
	}
}

// GetApprovedPaymentResponse returns an executed payment whose sale has the given id
func GetApprovedPaymentResponse(saleID string) map[string]interface{} {
	return map[string]interface{}{
		"id":     PaymentID,
		"intent": "sale",
		"state":  "approved",
		"payer": map[string]interface{}{
			"payment_method": "paypal",
			"payer_info":     map[string]interface{}{"payer_id": PayerID},
		},
		"transactions": []interface{}{
			map[string]interface{}{
				"amount": map[string]interface{}{"total": "20.00", "currency": "HKD"},
				"related_resources": []interface{}{
					map[string]interface{}{
						"sale": map[string]interface{}{
							"id":             saleID,
							"state":          "completed",
							"parent_payment": PaymentID,
						},
					},
				},
			},
		},
	}
}

// GetFailedPaymentResponse returns a payment in the failed state
func GetFailedPaymentResponse(message string) map[string]interface{} {
	return map[string]interface{}{
		"id":      PaymentID,
		"state":   "failed",
		"message": message,
	}
}

// GetIncomingCheckoutRequest returns a valid create checkout body with two items
func GetIncomingCheckoutRequest() models.IncomingCheckoutRequest {
	return models.IncomingCheckoutRequest{
		Currency: "usd",
		Items: []models.IncomingItemRest{
			{Name: "Item 1", Price: "10.00", Quantity: 1},
			{Name: "Item 2", Price: "5.00", Quantity: 2, SKU: "SKU-2"},
		},
		Discount:            "2",
		DiscountDescription: "Loyalty",
		Shipping:            "1.50",
	}
}
