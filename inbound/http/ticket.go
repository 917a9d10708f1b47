package http

import (
	"context"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/common/otel"
	"cudeca-ticket/model"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"net/http"
)

type TicketService interface {
	Redeem(ctx context.Context, accessToken string) (model.TicketResponse, error)
}

type TicketHttp struct {
	Tickets  TicketService
	Validate *validator.Validate
}

func RegisterTicketHttp(mux *http.ServeMux, tickets TicketService, validate *validator.Validate) *TicketHttp {
	in := &TicketHttp{Tickets: tickets, Validate: validate}

	mux.HandleFunc("POST /api/tickets/redeem", in.redeem)

	return in
}

func (in TicketHttp) redeem(w http.ResponseWriter, r *http.Request) {
	var req model.RedeemTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "TicketHttp.redeem")
	defer span.End()

	resp, err := in.Tickets.Redeem(ctx, req.AccessToken)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}
