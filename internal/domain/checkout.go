package domain

import "time"

// Shipping method values accepted on a checkout.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingPickup   = "pickup"
	ShippingDigital  = "digital"
)

// Payment status values carried on a checkout.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

// PiCurrency is the only settlement currency the platform accepts.
const PiCurrency = "PI"

type Customer struct {
	CustomerID *string `json:"customer_id"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
}

type Address struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type BillingInfo struct {
	Address Address `json:"address"`
}

type ShippingInfo struct {
	Address        Address `json:"address"`
	ShippingMethod string  `json:"shipping_method"`
	ShippingCost   float64 `json:"shipping_cost"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type Discount struct {
	Code       string   `json:"code,omitempty"`
	Amount     float64  `json:"amount"`
	Percentage *float64 `json:"percentage,omitempty"`
}

type Tax struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type Payment struct {
	Method        string     `json:"method"`
	Currency      string     `json:"currency"`
	AmountTotal   float64    `json:"amount_total"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
}

type CheckoutMetadata struct {
	CheckoutID     string     `json:"checkout_id"`
	OrderID        string     `json:"order_id,omitempty"`
	IdempotencyKey string     `json:"idempotency_key,omitempty"`
	Source         string     `json:"source"`
	Device         string     `json:"device"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	IPAddress      string     `json:"ip_address,omitempty"`
	UserAgent      string     `json:"user_agent,omitempty"`
}

// CheckoutPayload is the wire contract between a storefront caller and the
// checkout pipeline. Field names must stay stable; UI clients depend on them.
type CheckoutPayload struct {
	StoreID     string           `json:"store_id"`
	Customer    Customer         `json:"customer"`
	Billing     *BillingInfo     `json:"billing,omitempty"`
	Shipping    *ShippingInfo    `json:"shipping,omitempty"`
	Items       []OrderItem      `json:"items"`
	Subtotal    float64          `json:"subtotal"`
	Discount    *Discount        `json:"discount,omitempty"`
	Tax         *Tax             `json:"tax,omitempty"`
	Payment     Payment          `json:"payment"`
	Metadata    CheckoutMetadata `json:"metadata"`
	Notes       string           `json:"notes,omitempty"`
	GiftMessage string           `json:"gift_message,omitempty"`
}

// DerivedTotal computes the amount the payment must cover:
// subtotal minus discount, plus tax and shipping where present.
func (p CheckoutPayload) DerivedTotal() float64 {
	total := p.Subtotal
	if p.Discount != nil {
		total -= p.Discount.Amount
	}
	if p.Tax != nil {
		total += p.Tax.Amount
	}
	if p.Shipping != nil {
		total += p.Shipping.ShippingCost
	}
	return total
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type CheckoutResponse struct {
	Success     bool             `json:"success"`
	CheckoutID  string           `json:"checkout_id"`
	OrderID     string           `json:"order_id"`
	PaymentLink string           `json:"payment_link,omitempty"`
	Message     string           `json:"message"`
	Data        *CheckoutPayload `json:"data,omitempty"`
}
