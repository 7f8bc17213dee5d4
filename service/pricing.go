package service

import (
	"github.com/shopspring/decimal"
)

// DefaultDiscountDescription is used until a discount is given its own description
const DefaultDiscountDescription = "Discount Amount"

// LineItem is one line of the order. Price and Quantity are used as given.
type LineItem struct {
	Name        string
	Price       decimal.Decimal
	Quantity    int
	Currency    string
	SKU         string
	Description string
}

// IsEmpty reports whether the item carries no data at all
func (i LineItem) IsEmpty() bool {
	return i.Name == "" && i.Price.IsZero() && i.Quantity == 0 && i.Currency == "" && i.SKU == "" && i.Description == ""
}

// Amount is price times quantity, rounded to 2 decimal places
func (i LineItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// Adjustments are the order level amounts applied on top of the items.
// Every amount is non-negative and rounded to 2 decimal places.
type Adjustments struct {
	Discount            decimal.Decimal
	DiscountDescription string
	Shipping            decimal.Decimal
	Tax                 decimal.Decimal
}

// Details is the breakdown of a quote total
type Details struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
}

// Quote is the priced order as sent to PayPal
type Quote struct {
	Currency            string
	Subtotal            decimal.Decimal
	Total               decimal.Decimal
	Details             Details
	DiscountDescription string
	Items               []LineItem
}

// clamp drops negative amounts to zero and rounds to 2 decimal places
func clamp(value decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, value).Round(2)
}

// subtotal rounds every line before summing and rounds the sum again
func subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount())
	}
	return sum.Round(2)
}

// newQuote prices items with adj. items must already be tagged with currency.
func newQuote(currency string, items []LineItem, adj Adjustments) *Quote {
	sub := subtotal(items)
	total := sub.Sub(adj.Discount).Add(adj.Shipping).Add(adj.Tax).Round(2)

	return &Quote{
		Currency: currency,
		Subtotal: sub,
		Total:    total,
		Details: Details{
			Subtotal: sub,
			Discount: adj.Discount,
			Shipping: adj.Shipping,
			Tax:      adj.Tax,
		},
		DiscountDescription: adj.DiscountDescription,
		Items:               items,
	}
}
