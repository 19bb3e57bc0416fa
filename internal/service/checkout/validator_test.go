package checkout

import (
	"strings"
	"testing"

	"dropstore/internal/domain"
)

func validPayload() domain.CheckoutPayload {
	return domain.CheckoutPayload{
		StoreID:  "store-1",
		Customer: domain.Customer{Email: "a@b.com"},
		Items: []domain.OrderItem{
			{ProductID: "p1", Title: "Tee", Quantity: 2, Price: 10, Subtotal: 20},
		},
		Subtotal: 20,
		Payment: domain.Payment{
			Method:      "pi_wallet",
			Currency:    domain.PiCurrency,
			AmountTotal: 20,
			Status:      domain.PaymentPending,
		},
	}
}

func hasFieldError(errs []domain.FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateHappyPath(t *testing.T) {
	valid, errs := Validate(validPayload())
	if !valid {
		t.Fatalf("expected valid payload, got errors: %+v", errs)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %d", len(errs))
	}
}

func TestValidateMissingEmail(t *testing.T) {
	p := validPayload()
	p.Customer.Email = ""
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "customer.email") {
		t.Fatalf("expected customer.email error, got %+v", errs)
	}
}

func TestValidateMalformedEmail(t *testing.T) {
	p := validPayload()
	p.Customer.Email = "not-an-email"
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "customer.email") {
		t.Fatalf("expected customer.email error, got %+v", errs)
	}
}

func TestValidateMissingStoreID(t *testing.T) {
	p := validPayload()
	p.StoreID = "  "
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "store_id") {
		t.Fatalf("expected store_id error, got %+v", errs)
	}
}

func TestValidateEmptyItems(t *testing.T) {
	p := validPayload()
	p.Items = nil
	p.Subtotal = 0
	p.Payment.AmountTotal = 0
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "items") {
		t.Fatalf("expected items error, got %+v", errs)
	}
}

func TestValidateZeroQuantityTaggedToItem(t *testing.T) {
	p := validPayload()
	p.Items = append(p.Items, domain.OrderItem{ProductID: "p2", Title: "Mug", Quantity: 0, Price: 5, Subtotal: 0})
	valid, errs := Validate(p)
	if valid {
		t.Fatal("expected invalid payload")
	}
	if !hasFieldError(errs, "items[1].quantity") {
		t.Fatalf("expected error tagged to items[1].quantity, got %+v", errs)
	}
}

func TestValidateItemSubtotalMismatch(t *testing.T) {
	p := validPayload()
	p.Items[0].Subtotal = 19
	p.Subtotal = 19
	p.Payment.AmountTotal = 19
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "items[0].subtotal") {
		t.Fatalf("expected items[0].subtotal error, got %+v", errs)
	}
}

func TestValidateSubtotalMismatch(t *testing.T) {
	p := validPayload()
	p.Subtotal = 25
	p.Payment.AmountTotal = 25
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "subtotal") {
		t.Fatalf("expected subtotal error, got %+v", errs)
	}
}

func TestValidatePaymentTotalMismatch(t *testing.T) {
	p := validPayload()
	p.Payment.AmountTotal = 15
	valid, errs := Validate(p)
	if valid {
		t.Fatal("expected invalid payload")
	}
	if len(errs) != 1 || errs[0].Field != "payment.amount_total" {
		t.Fatalf("expected exactly one payment.amount_total error, got %+v", errs)
	}
}

func TestValidateWrongCurrency(t *testing.T) {
	p := validPayload()
	p.Payment.Currency = "USD"
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "payment.currency") {
		t.Fatalf("expected payment.currency error, got %+v", errs)
	}
}

func TestValidateShippingAddressIncomplete(t *testing.T) {
	p := validPayload()
	p.Shipping = &domain.ShippingInfo{
		Address:        domain.Address{FullName: "A B", AddressLine1: "1 Main St", City: "Town"},
		ShippingMethod: domain.ShippingStandard,
		ShippingCost:   0,
	}
	valid, errs := Validate(p)
	if valid {
		t.Fatal("expected invalid payload")
	}
	for _, field := range []string{"shipping.address.state", "shipping.address.postal_code", "shipping.address.country"} {
		if !hasFieldError(errs, field) {
			t.Fatalf("expected %s error, got %+v", field, errs)
		}
	}
}

func TestValidateShippingCostInTotal(t *testing.T) {
	p := validPayload()
	p.Shipping = &domain.ShippingInfo{
		Address: domain.Address{
			FullName: "A B", AddressLine1: "1 Main St", City: "Town",
			State: "TS", PostalCode: "12345", Country: "US",
		},
		ShippingMethod: domain.ShippingExpress,
		ShippingCost:   5,
	}
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "payment.amount_total") {
		t.Fatalf("expected payment total mismatch once shipping added, got %+v", errs)
	}

	p.Payment.AmountTotal = 25
	valid, errs = Validate(p)
	if !valid {
		t.Fatalf("expected valid payload with shipping included, got %+v", errs)
	}
}

func TestValidateDiscountExceedsSubtotal(t *testing.T) {
	p := validPayload()
	p.Discount = &domain.Discount{Code: "SAVE", Amount: 30}
	p.Payment.AmountTotal = -10
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "discount.amount") {
		t.Fatalf("expected discount.amount error, got %+v", errs)
	}
}

func TestValidateTaxRateRange(t *testing.T) {
	p := validPayload()
	p.Tax = &domain.Tax{Rate: 1.5, Amount: 2}
	p.Payment.AmountTotal = 22
	valid, errs := Validate(p)
	if valid || !hasFieldError(errs, "tax.rate") {
		t.Fatalf("expected tax.rate error, got %+v", errs)
	}
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	p := validPayload()
	p.StoreID = ""
	p.Customer.Email = ""
	p.Payment.Currency = "USD"
	valid, errs := Validate(p)
	if valid {
		t.Fatal("expected invalid payload")
	}
	if len(errs) < 3 {
		t.Fatalf("expected accumulated errors, got %+v", errs)
	}
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	joined := strings.Join(fields, ",")
	for _, want := range []string{"store_id", "customer.email", "payment.currency"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %s among %s", want, joined)
		}
	}
}

func TestValidateToleratesRoundingDrift(t *testing.T) {
	p := validPayload()
	// 3 × 3.33 is 9.99; a caller that rounded to 10.00 is within tolerance.
	p.Items = []domain.OrderItem{{ProductID: "p1", Title: "Tee", Quantity: 3, Price: 3.33, Subtotal: 10.00}}
	p.Subtotal = 10.00
	p.Payment.AmountTotal = 10.00
	valid, errs := Validate(p)
	if !valid {
		t.Fatalf("expected drift within tolerance to pass, got %+v", errs)
	}
}
