package service

import (
	"context"
	"cudeca-ticket/common"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/contract"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/common/otel"
	"cudeca-ticket/model"
	"cudeca-ticket/outbound/sqlgen"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"log/slog"
	"strings"
	"time"
)

const paymentTokenReleaseTimeout = 3 * time.Second

// OrderService finalizes purchases. Stock reservation, the order row, its tickets and the
// optional certificate are written in one transaction: either all of them commit or none does.
type OrderService struct {
	Db        contract.DbConn
	Querier   *sqlgen.Queries
	Cache     *redis.Client
	Publisher contract.Publisher

	PaymentVerifier PaymentVerifier
	Ledger          InventoryLedger
	Tickets         TicketIssuer
	Certificates    CertificateIssuer

	TimeNow         func() time.Time
	PaymentTokenTTL time.Duration
}

func (s OrderService) Fulfill(ctx context.Context, req model.FulfillOrderRequest) (resp model.OrderResponse, err error) {
	ctx, span := otel.Tracer.Start(ctx, "OrderService.Fulfill")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("event.id", req.EventID),
		attribute.Int("order.quantity", int(req.Quantity)),
		attribute.String("order.payment_channel", req.PaymentChannel),
	)

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	state := constant.FulfillmentStarted

	defer func() {
		if err == nil {
			return
		}

		common.UtilSpanError(span, err)
		slog.Log(ctx, logLevel(err), "order fulfillment failed",
			traceIdAttr,
			slog.String(constant.LogFieldState, constant.FulfillmentFailed),
			slog.String("failed_after", state),
			slog.Any(constant.LogFieldErr, err),
		)
	}()

	if err = validateFulfillRequest(req); err != nil {
		return model.OrderResponse{}, err
	}

	if err = s.PaymentVerifier.Verify(ctx, req.PaymentChannel, req.PaymentToken); err != nil {
		return model.OrderResponse{}, err
	}

	buyer, err := s.getAccount(ctx, s.Querier, req.BuyerTaxID)
	if err != nil {
		return model.OrderResponse{}, err
	}

	keepClaim := false
	paymentReference := strings.TrimSpace(req.PaymentToken)
	if paymentReference != "" {
		if err = s.claimPaymentToken(ctx, paymentReference, buyer.TaxID); err != nil {
			return model.OrderResponse{}, err
		}

		defer func() {
			if err != nil && !keepClaim {
				s.releasePaymentToken(ctx, paymentReference)
			}
		}()
	} else {
		paymentReference = ulid.Make().String()
	}

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		err = errs.Storage("begin transaction", err)
		return model.OrderResponse{}, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}
	}()

	withTx := s.Querier.WithTx(tx)

	event, err := s.Ledger.Reserve(ctx, withTx, req.EventID, req.Quantity)
	if err != nil {
		return model.OrderResponse{}, err
	}
	state = constant.FulfillmentStockReserved

	order, err := withTx.InsertOrder(ctx, sqlgen.InsertOrderParams{
		BuyerTaxID:       buyer.TaxID,
		CreatedAt:        pgtype.Timestamptz{Time: s.TimeNow(), Valid: true},
		TotalAmount:      req.Amount,
		PaymentChannel:   req.PaymentChannel,
		PaymentStatus:    constant.PaymentStatusPaid,
		Consent:          req.CertificateConsent,
		PaymentReference: paymentReference,
	})
	if err != nil {
		err = errs.Storage("insert order", err)
		return model.OrderResponse{}, err
	}
	state = constant.FulfillmentOrderCreated
	span.SetAttributes(attribute.Int64("order.id", order.ID))

	holderName := strings.TrimSpace(req.HolderName)
	if holderName == "" {
		holderName = displayName(buyer)
	}

	tickets, err := s.Tickets.Issue(ctx, withTx, order, event.ID, req.Quantity, holderName, req.Category)
	if err != nil {
		return model.OrderResponse{}, err
	}
	state = constant.FulfillmentTicketsIssued

	var certificate *sqlgen.Certificate
	if req.CertificateConsent {
		issued, err := s.Certificates.IssueForOrder(ctx, withTx, order, buyer, order.TotalAmount, req.Fiscal())
		if err != nil {
			return model.OrderResponse{}, err
		}
		certificate = &issued
		state = constant.FulfillmentCertificateIssued
	}

	if err = tx.Commit(ctx); err != nil {
		// Only a reported rollback proves nothing was written. Any other commit error may hide
		// a committed order, so the token stays claimed until it expires.
		keepClaim = !errors.Is(err, pgx.ErrTxCommitRollback)
		if keepClaim {
			slog.WarnContext(ctx, "commit outcome unknown, payment token kept", traceIdAttr, slog.String("payment_reference", paymentReference))
		}
		err = errs.Storage("commit transaction", err)
		return model.OrderResponse{}, err
	}
	state = constant.FulfillmentCompleted

	slog.InfoContext(ctx, "order fulfilled",
		traceIdAttr,
		slog.String(constant.LogFieldState, state),
		slog.Int64("order_id", order.ID),
		slog.Int64("event_id", event.ID),
		slog.Int("tickets", len(tickets)),
		slog.Int("remaining_stock", int(event.Stock)),
	)

	message := model.OrderFulfilledEventMessage{
		OrderID:     order.ID,
		EventID:     event.ID,
		BuyerTaxID:  buyer.TaxID,
		Quantity:    req.Quantity,
		TotalAmount: order.TotalAmount,
	}
	if certificate != nil {
		message.CertificateID = certificate.ID
	}

	// The order is committed at this point, a lost notification must not fail it.
	if pubErr := common.PublishMessage(ctx, s.Publisher, constant.SubjectOrderFulfilled, message); pubErr != nil {
		slog.WarnContext(ctx, "order fulfilled notification not published", traceIdAttr, slog.Int64("order_id", order.ID), slog.Any(constant.LogFieldErr, pubErr))
	}

	return toOrderResponse(order, tickets, certificate), nil
}

// Get returns an order with its tickets and certificate, if any.
func (s OrderService) Get(ctx context.Context, id int64) (model.OrderResponse, error) {
	ctx, span := otel.Tracer.Start(ctx, "OrderService.Get")
	defer span.End()

	order, err := s.Querier.GetOrder(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.OrderResponse{}, fmt.Errorf("%w: order %d", errs.ErrNotFound, id)
	}
	if err != nil {
		common.UtilSpanError(span, err)
		return model.OrderResponse{}, errs.Storage("get order", err)
	}

	tickets, err := s.Querier.ListTicketsByOrder(ctx, id)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.OrderResponse{}, errs.Storage("list tickets by order", err)
	}

	certificate, err := findOrderCertificate(ctx, s.Querier, id)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.OrderResponse{}, err
	}

	return toOrderResponse(order, tickets, certificate), nil
}

// Refund moves a paid order to REFUNDED and gives its seats back to each event.
func (s OrderService) Refund(ctx context.Context, id int64) (resp model.OrderResponse, err error) {
	ctx, span := otel.Tracer.Start(ctx, "OrderService.Refund")
	defer span.End()

	span.SetAttributes(attribute.Int64("order.id", id))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	defer func() {
		if err != nil {
			common.UtilSpanError(span, err)
			slog.Log(ctx, logLevel(err), "order refund failed", traceIdAttr, slog.Int64("order_id", id), slog.Any(constant.LogFieldErr, err))
		}
	}()

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		err = errs.Storage("begin transaction", err)
		return model.OrderResponse{}, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}
	}()

	withTx := s.Querier.WithTx(tx)

	order, err := withTx.RefundOrder(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = s.refundRejection(ctx, withTx, id)
		return model.OrderResponse{}, err
	}
	if err != nil {
		err = errs.Storage("refund order", err)
		return model.OrderResponse{}, err
	}

	counts, err := withTx.CountOrderTicketsByEvent(ctx, id)
	if err != nil {
		err = errs.Storage("count order tickets", err)
		return model.OrderResponse{}, err
	}

	eventIDs := make([]int64, 0, len(counts))
	for _, count := range counts {
		if _, err = s.Ledger.Release(ctx, withTx, count.EventID, count.Quantity); err != nil {
			return model.OrderResponse{}, err
		}
		eventIDs = append(eventIDs, count.EventID)
	}

	tickets, err := withTx.ListTicketsByOrder(ctx, id)
	if err != nil {
		err = errs.Storage("list tickets by order", err)
		return model.OrderResponse{}, err
	}

	// Certificates survive a refund.
	certificate, err := findOrderCertificate(ctx, withTx, id)
	if err != nil {
		return model.OrderResponse{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = errs.Storage("commit transaction", err)
		return model.OrderResponse{}, err
	}

	slog.InfoContext(ctx, "order refunded", traceIdAttr, slog.Int64("order_id", id), slog.Int("tickets", len(tickets)))

	if pubErr := common.PublishMessage(ctx, s.Publisher, constant.SubjectOrderRefunded, model.OrderRefundedEventMessage{
		OrderID:     order.ID,
		BuyerTaxID:  order.BuyerTaxID,
		TotalAmount: order.TotalAmount,
		EventIDs:    eventIDs,
	}); pubErr != nil {
		slog.WarnContext(ctx, "order refunded notification not published", traceIdAttr, slog.Int64("order_id", id), slog.Any(constant.LogFieldErr, pubErr))
	}

	return toOrderResponse(order, tickets, certificate), nil
}

// findOrderCertificate returns nil when the order has no certificate.
func findOrderCertificate(ctx context.Context, q *sqlgen.Queries, orderID int64) (*sqlgen.Certificate, error) {
	certificate, err := q.GetCertificateByOrderID(ctx, pgtype.Int8{Int64: orderID, Valid: true})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage("get certificate by order", err)
	}
	return &certificate, nil
}

func (s OrderService) refundRejection(ctx context.Context, q *sqlgen.Queries, id int64) error {
	order, err := q.GetOrder(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: order %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return errs.Storage("get order", err)
	}

	return fmt.Errorf("%w: order %d is %s", errs.ErrInvalidState, id, order.PaymentStatus)
}

// IssueCertificate issues the certificate for an already paid order. Calling it again for the
// same order returns the certificate issued the first time.
func (s OrderService) IssueCertificate(ctx context.Context, orderID int64, fiscal model.FiscalData) (resp model.CertificateResponse, err error) {
	ctx, span := otel.Tracer.Start(ctx, "OrderService.IssueCertificate")
	defer span.End()

	span.SetAttributes(attribute.Int64("order.id", orderID))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	defer func() {
		if err != nil {
			common.UtilSpanError(span, err)
			slog.Log(ctx, logLevel(err), "order certificate failed", traceIdAttr, slog.Int64("order_id", orderID), slog.Any(constant.LogFieldErr, err))
		}
	}()

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		err = errs.Storage("begin transaction", err)
		return model.CertificateResponse{}, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}
	}()

	withTx := s.Querier.WithTx(tx)

	// Row lock serializes concurrent requests for the same order.
	order, err := withTx.GetOrderForUpdate(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("%w: order %d", errs.ErrNotFound, orderID)
		return model.CertificateResponse{}, err
	}
	if err != nil {
		err = errs.Storage("get order", err)
		return model.CertificateResponse{}, err
	}

	buyer, err := s.getAccount(ctx, withTx, order.BuyerTaxID)
	if err != nil {
		return model.CertificateResponse{}, err
	}

	certificate, err := s.Certificates.IssueForOrder(ctx, withTx, order, buyer, order.TotalAmount, fiscal)
	if err != nil {
		return model.CertificateResponse{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = errs.Storage("commit transaction", err)
		return model.CertificateResponse{}, err
	}

	slog.InfoContext(ctx, "order certificate ready", traceIdAttr, slog.Int64("order_id", orderID), slog.Int64("certificate_id", certificate.ID))

	return toCertificateResponse(certificate), nil
}

func (s OrderService) getAccount(ctx context.Context, q *sqlgen.Queries, taxID string) (sqlgen.Account, error) {
	account, err := q.GetAccount(ctx, taxID)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlgen.Account{}, fmt.Errorf("%w: buyer %s", errs.ErrNotFound, taxID)
	}
	if err != nil {
		return sqlgen.Account{}, errs.Storage("get account", err)
	}
	return account, nil
}

// claimPaymentToken makes sure a confirmation token pays for a single order.
func (s OrderService) claimPaymentToken(ctx context.Context, token, buyerTaxID string) error {
	ttl := s.PaymentTokenTTL
	if ttl <= 0 {
		ttl = constant.OrderPaymentTokenDefaultTTL
	}

	claimed, err := s.Cache.SetNX(ctx, fmt.Sprintf(constant.OrderPaymentTokenKey, token), buyerTaxID, ttl).Result()
	if err != nil {
		return errs.Storage("claim payment token", err)
	}
	if !claimed {
		return fmt.Errorf("%w: payment token already used", errs.ErrDuplicateRequest)
	}
	return nil
}

// releasePaymentToken drops the claim even when the request context is already canceled.
func (s OrderService) releasePaymentToken(ctx context.Context, token string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), paymentTokenReleaseTimeout)
	defer cancel()

	if err := s.Cache.Del(ctx, fmt.Sprintf(constant.OrderPaymentTokenKey, token)).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to release payment token", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
	}
}

func validateFulfillRequest(req model.FulfillOrderRequest) error {
	if strings.TrimSpace(req.BuyerTaxID) == "" {
		return fmt.Errorf("%w: buyer tax id is required", errs.ErrInvalidRequest)
	}
	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", errs.ErrInvalidRequest)
	}
	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", errs.ErrInvalidRequest)
	}
	if !req.TermsAccepted {
		return fmt.Errorf("%w: terms must be accepted", errs.ErrInvalidRequest)
	}
	if req.CertificateConsent {
		if missing := req.Fiscal().MissingAddressFields(); len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrMissingFiscalData, strings.Join(missing, ", "))
		}
	}
	return nil
}

// logLevel keeps expected business rejections out of the error log.
func logLevel(err error) slog.Level {
	switch {
	case errors.Is(err, errs.ErrStorageFailure):
		return slog.LevelError
	case errors.Is(err, errs.ErrInvalidRequest), errors.Is(err, errs.ErrNotFound):
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
