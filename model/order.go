package model

import (
	"strings"
	"time"
)

// FulfillOrderRequest is the checkout payload. Fiscal fields are only read when
// CertificateConsent is set.
type FulfillOrderRequest struct {
	BuyerTaxID     string `json:"buyer_tax_id" validate:"required,max=20"`
	EventID        int64  `json:"event_id" validate:"required,gt=0"`
	Quantity       int32  `json:"quantity" validate:"required,min=1"`
	PaymentChannel string `json:"payment_channel" validate:"required,oneof=CARD TRANSFER CASH"`
	PaymentToken   string `json:"payment_token" validate:"max=255"`
	Amount         int64  `json:"amount" validate:"min=0"`
	HolderName     string `json:"holder_name" validate:"max=200"`
	Category       string `json:"category" validate:"max=50"`

	TermsAccepted      bool `json:"terms_accepted" validate:"required"`
	Newsletter         bool `json:"newsletter"`
	CertificateConsent bool `json:"certificate_consent"`

	FiscalName  string `json:"fiscal_name" validate:"max=200"`
	FiscalTaxID string `json:"fiscal_tax_id" validate:"max=20"`
	Address     string `json:"address" validate:"required_if=CertificateConsent true,max=255"`
	PostalCode  string `json:"postal_code" validate:"required_if=CertificateConsent true,max=20"`
	City        string `json:"city" validate:"required_if=CertificateConsent true,max=100"`
	Region      string `json:"region" validate:"required_if=CertificateConsent true,max=100"`
	Country     string `json:"country" validate:"required_if=CertificateConsent true,max=100"`
}

func (r FulfillOrderRequest) Fiscal() FiscalData {
	return FiscalData{
		FullName:   r.FiscalName,
		TaxID:      r.FiscalTaxID,
		Address:    r.Address,
		PostalCode: r.PostalCode,
		City:       r.City,
		Region:     r.Region,
		Country:    r.Country,
	}
}

// FiscalData carries what a donation certificate prints. Empty FullName and TaxID
// fall back to the buyer's account.
type FiscalData struct {
	FullName   string `json:"full_name" validate:"max=200"`
	TaxID      string `json:"tax_id" validate:"max=20"`
	Address    string `json:"address" validate:"required,max=255"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	City       string `json:"city" validate:"required,max=100"`
	Region     string `json:"region" validate:"required,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
}

// MissingAddressFields lists the json names of blank address fields.
func (f FiscalData) MissingAddressFields() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"address", f.Address},
		{"postal_code", f.PostalCode},
		{"city", f.City},
		{"region", f.Region},
		{"country", f.Country},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

type OrderResponse struct {
	ID               int64                `json:"id"`
	BuyerTaxID       string               `json:"buyer_tax_id"`
	CreatedAt        time.Time            `json:"created_at"`
	TotalAmount      int64                `json:"total_amount"`
	PaymentChannel   string               `json:"payment_channel"`
	PaymentStatus    string               `json:"payment_status"`
	Consent          bool                 `json:"consent"`
	PaymentReference string               `json:"payment_reference"`
	Tickets          []TicketResponse     `json:"tickets"`
	Certificate      *CertificateResponse `json:"certificate,omitempty"`
}

type OrderFulfilledEventMessage struct {
	OrderID       int64  `json:"order_id"`
	EventID       int64  `json:"event_id"`
	BuyerTaxID    string `json:"buyer_tax_id"`
	Quantity      int32  `json:"quantity"`
	TotalAmount   int64  `json:"total_amount"`
	CertificateID int64  `json:"certificate_id,omitempty"`
}

type OrderRefundedEventMessage struct {
	OrderID     int64   `json:"order_id"`
	BuyerTaxID  string  `json:"buyer_tax_id"`
	TotalAmount int64   `json:"total_amount"`
	EventIDs    []int64 `json:"event_ids"`
}
