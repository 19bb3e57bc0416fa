package domain

import "time"

// Gift-card status values.
const (
	GiftCardActive   = "active"
	GiftCardRedeemed = "redeemed"
	GiftCardDisabled = "disabled"
)

type GiftCard struct {
	ID             string    `json:"id"`
	StoreID        string    `json:"store_id"`
	Code           string    `json:"code"`
	InitialBalance float64   `json:"initial_balance"`
	Balance        float64   `json:"balance"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
