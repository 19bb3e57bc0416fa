package checkout

import (
	"strings"

	"dropstore/internal/domain"
)

// Sanitize returns the canonical form of a payload: trimmed and lowercased
// email, trimmed free-text fields, all amounts rounded to two decimals, and
// item subtotals plus the payload subtotal recomputed from price × quantity
// instead of trusting the caller's arithmetic. Idempotent: sanitizing an
// already-canonical payload is a no-op. The input is not mutated.
func Sanitize(p domain.CheckoutPayload) domain.CheckoutPayload {
	out := p

	out.StoreID = strings.TrimSpace(p.StoreID)
	out.Customer.Email = strings.ToLower(strings.TrimSpace(p.Customer.Email))
	out.Customer.Phone = strings.TrimSpace(p.Customer.Phone)
	out.Notes = strings.TrimSpace(p.Notes)
	out.GiftMessage = strings.TrimSpace(p.GiftMessage)

	out.Items = make([]domain.OrderItem, len(p.Items))
	var subtotal float64
	for i, item := range p.Items {
		item.Title = strings.TrimSpace(item.Title)
		item.Price = round2(item.Price)
		item.Subtotal = round2(item.Price * float64(item.Quantity))
		out.Items[i] = item
		subtotal += item.Subtotal
	}
	out.Subtotal = round2(subtotal)

	if p.Billing != nil {
		billing := *p.Billing
		billing.Address = cleanAddress(billing.Address)
		out.Billing = &billing
	}
	if p.Shipping != nil {
		shipping := *p.Shipping
		shipping.Address = cleanAddress(shipping.Address)
		shipping.ShippingMethod = strings.TrimSpace(shipping.ShippingMethod)
		shipping.ShippingCost = round2(shipping.ShippingCost)
		out.Shipping = &shipping
	}
	if p.Discount != nil {
		discount := *p.Discount
		discount.Code = strings.TrimSpace(discount.Code)
		discount.Amount = round2(discount.Amount)
		out.Discount = &discount
	}
	if p.Tax != nil {
		tax := *p.Tax
		tax.Amount = round2(tax.Amount)
		out.Tax = &tax
	}

	out.Payment.AmountTotal = round2(p.Payment.AmountTotal)
	out.Payment.TransactionID = strings.TrimSpace(p.Payment.TransactionID)

	return out
}

func cleanAddress(a domain.Address) domain.Address {
	return domain.Address{
		FullName:     strings.TrimSpace(a.FullName),
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         strings.TrimSpace(a.City),
		State:        strings.TrimSpace(a.State),
		PostalCode:   strings.TrimSpace(a.PostalCode),
		Country:      strings.TrimSpace(a.Country),
	}
}
