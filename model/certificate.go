package model

import "time"

type CertificateResponse struct {
	ID         int64     `json:"id"`
	IssuedAt   time.Time `json:"issued_at"`
	Amount     int64     `json:"amount"`
	FullName   string    `json:"full_name"`
	TaxID      string    `json:"tax_id"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	Region     string    `json:"region"`
	Country    string    `json:"country"`
	OrderID    *int64    `json:"order_id,omitempty"`
	DonationID *int64    `json:"donation_id,omitempty"`
}
