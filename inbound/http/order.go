package http

import (
	"context"
	"cudeca-ticket/common"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/common/otel"
	"cudeca-ticket/model"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type OrderService interface {
	Fulfill(ctx context.Context, req model.FulfillOrderRequest) (model.OrderResponse, error)
	Get(ctx context.Context, id int64) (model.OrderResponse, error)
	Refund(ctx context.Context, id int64) (model.OrderResponse, error)
	IssueCertificate(ctx context.Context, orderID int64, fiscal model.FiscalData) (model.CertificateResponse, error)
}

type OrderHttp struct {
	Orders   OrderService
	Validate *validator.Validate
}

func RegisterOrderHttp(mux *http.ServeMux, orders OrderService, validate *validator.Validate) *OrderHttp {
	in := &OrderHttp{Orders: orders, Validate: validate}

	mux.HandleFunc("POST /api/orders", in.create)
	mux.HandleFunc("GET /api/orders/{id}", in.get)
	mux.HandleFunc("POST /api/orders/{id}/refund", in.refund)
	mux.HandleFunc("POST /api/orders/{id}/certificate", in.certificate)

	return in
}

func (in OrderHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.FulfillOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "OrderHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create order receive request",
		traceIdAttr,
		slog.String("buyer_tax_id", req.BuyerTaxID),
		slog.Int64("event_id", req.EventID),
		slog.Int("quantity", int(req.Quantity)),
		slog.String("payment_channel", req.PaymentChannel),
	)

	resp, err := in.Orders.Fulfill(ctx, req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "create order success", traceIdAttr, slog.Any(constant.LogFieldResponse, resp.ID))

	writeJSONResponse(w, http.StatusCreated, resp)
}

func (in OrderHttp) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "OrderHttp.get")
	defer span.End()

	resp, err := in.Orders.Get(ctx, id)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in OrderHttp) refund(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "OrderHttp.refund")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "refund order receive request", traceIdAttr, slog.Int64("order_id", id))

	resp, err := in.Orders.Refund(ctx, id)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in OrderHttp) certificate(w http.ResponseWriter, r *http.Request) {
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

	ctx, span := otel.Tracer.Start(r.Context(), "OrderHttp.certificate")
	defer span.End()

	resp, err := in.Orders.IssueCertificate(ctx, id, req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}
