package models

// IncomingCheckoutRequest is the data received in the body of a create checkout request
type IncomingCheckoutRequest struct {
	Currency            string             `json:"currency"             validate:"omitempty,len=3"`
	Items               []IncomingItemRest `json:"items"                validate:"required,min=1,dive"`
	Discount            string             `json:"discount"             validate:"omitempty,numeric"`
	DiscountDescription string             `json:"discount_description"`
	Shipping            string             `json:"shipping"             validate:"omitempty,numeric"`
	Tax                 string             `json:"tax"                  validate:"omitempty,numeric"`
}

// IncomingItemRest is a single line item of a create checkout request
type IncomingItemRest struct {
	Name        string `json:"name"        validate:"required"`
	Price       string `json:"price"       validate:"required,numeric"`
	Quantity    int    `json:"quantity"    validate:"required,min=1"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
}

// CheckoutResponseRest is returned once a PayPal payment has been created
type CheckoutResponseRest struct {
	PaymentID   string `json:"payment_id"`
	ApprovalURL string `json:"approval_url"`
}

// TransactionResponseRest is the outcome of executing or looking up a payment
type TransactionResponseRest struct {
	PaymentID     string `json:"payment_id"`
	State         string `json:"state"`
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transaction_id,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}
