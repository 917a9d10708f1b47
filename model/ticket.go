package model

import "time"

type TicketResponse struct {
	ID          int64      `json:"id"`
	AccessToken string     `json:"access_token"`
	Used        bool       `json:"used"`
	HolderName  string     `json:"holder_name"`
	Category    string     `json:"category"`
	OrderID     int64      `json:"order_id"`
	EventID     int64      `json:"event_id"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

type RedeemTicketRequest struct {
	AccessToken string `json:"access_token" validate:"required,max=64"`
}
