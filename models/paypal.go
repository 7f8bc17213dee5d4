package models

// OutgoingPayPalPaymentRequest is the request sent to PayPal to create a
// payment resource
type OutgoingPayPalPaymentRequest struct {
	Intent       string        `json:"intent"`
	Payer        Payer         `json:"payer"`
	Transactions []Transaction `json:"transactions"`
	RedirectURLs RedirectURLs  `json:"redirect_urls"`
}

// Payer describes how the buyer will pay
type Payer struct {
	PaymentMethod string `json:"payment_method"`
}

// Transaction carries the amount and the items of a PayPal payment
type Transaction struct {
	Amount   Amount   `json:"amount"`
	ItemList ItemList `json:"item_list"`
}

// Amount is the total of a transaction and its breakdown
type Amount struct {
	Total    string  `json:"total"`
	Currency string  `json:"currency"`
	Details  Details `json:"details"`
}

// Details is the breakdown of a transaction amount
type Details struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
}

// ItemList holds the items being paid for
type ItemList struct {
	Items []Item `json:"items"`
}

// Item is a single line of a PayPal item list
type Item struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
	SKU         string `json:"sku,omitempty"`
	Description string `json:"description,omitempty"`
}

// RedirectURLs are where PayPal sends the buyer once they leave the approval page
type RedirectURLs struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

// OutgoingPayPalExecuteRequest is the body posted to execute an approved payment
type OutgoingPayPalExecuteRequest struct {
	PayerID string `json:"payer_id"`
}
