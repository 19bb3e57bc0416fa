package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"dropstore/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks a checkout payload against the storefront business rules.
// It accumulates every violation rather than stopping at the first, so the
// caller sees all problems in one response. Pure: no I/O, no mutation.
func Validate(p domain.CheckoutPayload) (bool, []domain.FieldError) {
	var errs []domain.FieldError
	add := func(field, message string) {
		errs = append(errs, domain.FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(p.StoreID) == "" {
		add("store_id", "store id is required")
	}

	email := strings.TrimSpace(p.Customer.Email)
	switch {
	case email == "":
		add("customer.email", "email is required")
	case !emailPattern.MatchString(email):
		add("customer.email", "email is invalid")
	}

	if len(p.Items) == 0 {
		add("items", "at least one item is required")
	}
	var itemSum float64
	for i, item := range p.Items {
		if item.Quantity < 1 {
			add(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
		if item.Price < 0 {
			add(fmt.Sprintf("items[%d].price", i), "price must not be negative")
		}
		if !amountsEqual(item.Subtotal, item.Price*float64(item.Quantity)) {
			add(fmt.Sprintf("items[%d].subtotal", i), "subtotal must equal price times quantity")
		}
		itemSum += item.Subtotal
	}
	if len(p.Items) > 0 && !amountsEqual(p.Subtotal, itemSum) {
		add("subtotal", "subtotal must equal the sum of item subtotals")
	}

	if p.Shipping != nil {
		addressErrors(add, "shipping.address", p.Shipping.Address)
		if p.Shipping.ShippingCost < 0 {
			add("shipping.shipping_cost", "shipping cost must not be negative")
		}
	}
	if p.Billing != nil {
		addressErrors(add, "billing.address", p.Billing.Address)
	}

	if p.Discount != nil {
		if p.Discount.Amount < 0 {
			add("discount.amount", "discount must not be negative")
		} else if p.Discount.Amount > p.Subtotal+amountTolerance {
			add("discount.amount", "discount must not exceed the subtotal")
		}
	}
	if p.Tax != nil && (p.Tax.Rate < 0 || p.Tax.Rate > 1) {
		add("tax.rate", "tax rate must be between 0 and 1")
	}

	if p.Payment.Currency != domain.PiCurrency {
		add("payment.currency", "currency must be PI")
	}
	if !amountsEqual(p.Payment.AmountTotal, p.DerivedTotal()) {
		add("payment.amount_total", "amount total does not match the order totals")
	}

	return len(errs) == 0, errs
}

func addressErrors(add func(field, message string), prefix string, a domain.Address) {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"address_line_1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			add(prefix+"."+f.name, f.name+" is required")
		}
	}
}
