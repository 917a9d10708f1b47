package http

import (
	"cudeca-ticket/common/errs"
	"cudeca-ticket/common/vars"
	"cudeca-ticket/model"
	"net/http"
)

// EventHttp serves the public catalog from the snapshot kept by the event cron.
type EventHttp struct{}

func RegisterEventHttp(mux *http.ServeMux) *EventHttp {
	in := &EventHttp{}

	mux.HandleFunc("GET /api/events", in.list)
	mux.HandleFunc("GET /api/events/{id}", in.get)

	return in
}

func (in *EventHttp) list(w http.ResponseWriter, r *http.Request) {
	events := vars.GetEvents()
	if events == nil {
		events = []model.EventResponse{}
	}

	writeJSONResponse(w, http.StatusOK, model.ListEventsResponse{Events: events})
}

func (in *EventHttp) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	event, ok := vars.FindEvent(id)
	if !ok {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Event not found"})
		return
	}

	writeJSONResponse(w, http.StatusOK, event)
}
