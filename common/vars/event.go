package vars

import (
	"cudeca-ticket/model"
	"sync/atomic"
)

// eventCatalog holds the last catalog snapshot loaded by the event cron.
// Readers never block the refresher.
var eventCatalog atomic.Pointer[[]model.EventResponse]

// GetEvents returns the current catalog snapshot, nil when none has been loaded.
func GetEvents() []model.EventResponse {
	ptr := eventCatalog.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// SetEvents replaces the catalog snapshot with a copy of events.
// Passing an empty slice clears it.
func SetEvents(events []model.EventResponse) {
	if len(events) == 0 {
		eventCatalog.Store(nil)
		return
	}

	snapshot := make([]model.EventResponse, len(events))
	copy(snapshot, events)
	eventCatalog.Store(&snapshot)
}

// FindEvent looks an event up in the current snapshot.
func FindEvent(id int64) (model.EventResponse, bool) {
	for _, event := range GetEvents() {
		if event.ID == id {
			return event, true
		}
	}
	return model.EventResponse{}, false
}
