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

type DonationService interface {
	IssueCertificate(ctx context.Context, donationID int64, fiscal model.FiscalData) (model.CertificateResponse, error)
}

type DonationHttp struct {
	Donations DonationService
	Validate  *validator.Validate
}

func RegisterDonationHttp(mux *http.ServeMux, donations DonationService, validate *validator.Validate) *DonationHttp {
	in := &DonationHttp{Donations: donations, Validate: validate}

	mux.HandleFunc("POST /api/donations/{id}/certificate", in.certificate)

	return in
}

func (in DonationHttp) certificate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	var req model.FiscalData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "DonationHttp.certificate")
	defer span.End()

	resp, err := in.Donations.IssueCertificate(ctx, id, req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}
