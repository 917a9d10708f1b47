package model

import "time"

type EventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	Location    string    `json:"location"`
	Stock       int32     `json:"stock"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}
