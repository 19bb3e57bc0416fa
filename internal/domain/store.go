package domain

import "time"

// Store type values.
const (
	StorePhysical = "physical"
	StoreOnline   = "online"
	StoreDigital  = "digital"
)

type Store struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type StoreProduct struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
