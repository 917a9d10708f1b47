package event

import (
	"context"
	"cudeca-ticket/common"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/contract"
	"cudeca-ticket/common/otel"
	"cudeca-ticket/model"
	"cudeca-ticket/outbound/sqlgen"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/message"
	"log/slog"
	"strings"
	"time"
)

type OrderEvent struct {
	Querier         *sqlgen.Queries
	Cache           *redis.Client
	Publisher       contract.Publisher
	AmountFormatter *message.Printer

	Timeout time.Duration
}

func (in OrderEvent) FulfilledHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.OrderFulfilledEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "order fulfilled event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "OrderEvent.FulfilledHandler")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.InfoContext(ctx, "order fulfilled event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	order, err := in.Querier.GetOrder(ctx, req.OrderID)
	if errors.Is(err, pgx.ErrNoRows) {
		slog.WarnContext(ctx, "order not found", traceIdAttr, slog.Int64("order_id", req.OrderID))
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	if order.PaymentStatus != constant.PaymentStatusPaid {
		slog.WarnContext(ctx, "order is no longer paid, skipping confirmation", traceIdAttr, slog.String(constant.LogFieldState, order.PaymentStatus))
		return nil
	}

	buyer, err := in.Querier.GetAccount(ctx, order.BuyerTaxID)
	if errors.Is(err, pgx.ErrNoRows) {
		slog.WarnContext(ctx, "buyer not found", traceIdAttr, slog.String("buyer_tax_id", order.BuyerTaxID))
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get buyer", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	event, err := in.Querier.GetEvent(ctx, req.EventID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get event", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	in.cacheStock(ctx, event)

	tickets, err := in.Querier.ListTicketsByOrder(ctx, order.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list order tickets", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	notice := ""
	if req.CertificateID != 0 {
		certificate, err := in.Querier.GetCertificateByOrderID(ctx, pgtype.Int8{Int64: order.ID, Valid: true})
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			slog.ErrorContext(ctx, "failed to get certificate", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			return err
		}
		if err == nil {
			notice = fmt.Sprintf(constant.EmailCertificateNotice, certificateNumber(certificate.ID), certificate.FullName)
		}
	}

	emailPayload := model.SendEmailEventMessage{
		To:      buyer.Email,
		Subject: "Order Confirmation",
		Body:    in.buildOrderConfirmationEmailBody(buyer, order, event, tickets, notice),
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, emailPayload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish email payload", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	slog.InfoContext(ctx, "order fulfilled event success", traceIdAttr, slog.Int64("order_id", order.ID))

	return nil
}

func (in OrderEvent) RefundedHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.OrderRefundedEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "order refunded event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "OrderEvent.RefundedHandler")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.InfoContext(ctx, "order refunded event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	for _, eventID := range req.EventIDs {
		event, err := in.Querier.GetEvent(ctx, eventID)
		if err != nil {
			slog.WarnContext(ctx, "failed to get event for stock cache", traceIdAttr, slog.Int64("event_id", eventID), slog.Any(constant.LogFieldErr, err))
			continue
		}

		in.cacheStock(ctx, event)
	}

	buyer, err := in.Querier.GetAccount(ctx, req.BuyerTaxID)
	if errors.Is(err, pgx.ErrNoRows) {
		slog.WarnContext(ctx, "buyer not found", traceIdAttr, slog.String("buyer_tax_id", req.BuyerTaxID))
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get buyer", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	emailPayload := model.SendEmailEventMessage{
		To:      buyer.Email,
		Subject: "Order Refunded",
		Body: fmt.Sprintf(constant.EmailOrderRefundTemplate,
			model.DisplayName(buyer.FirstName, buyer.Surname),
			orderNumber(req.OrderID),
			in.formatAmount(req.TotalAmount),
		),
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, emailPayload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish email payload", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	slog.InfoContext(ctx, "order refunded event success", traceIdAttr, slog.Int64("order_id", req.OrderID))

	return nil
}

// cacheStock mirrors the committed stock into the cache. Failures are logged only.
func (in OrderEvent) cacheStock(ctx context.Context, event sqlgen.Event) {
	key := fmt.Sprintf(constant.EachEventStockKey, event.ID)
	if err := in.Cache.Set(ctx, key, event.Stock, 0).Err(); err != nil {
		slog.WarnContext(ctx, "failed to cache event stock",
			common.ExtractTraceIDFromCtx(ctx),
			slog.Int64("event_id", event.ID),
			slog.Any(constant.LogFieldErr, err),
		)
	}
}

func (in OrderEvent) buildOrderConfirmationEmailBody(buyer sqlgen.Account, order sqlgen.Order, event sqlgen.Event, tickets []sqlgen.Ticket, notice string) string {
	var codes strings.Builder
	for _, ticket := range tickets {
		codes.WriteString("  - ")
		codes.WriteString(ticket.AccessToken)
		codes.WriteString("\n")
	}

	return fmt.Sprintf(constant.EmailOrderConfirmationTemplate,
		model.DisplayName(buyer.FirstName, buyer.Surname),
		orderNumber(order.ID),
		event.Name,
		event.StartsAt.Time.Format("02/01/2006 15:04"),
		event.Location,
		len(tickets),
		in.formatAmount(order.TotalAmount),
		codes.String(),
		notice,
	)
}

// formatAmount renders cents as euros.
func (in OrderEvent) formatAmount(cents int64) string {
	return in.AmountFormatter.Sprintf("%.2f €", float64(cents)/100)
}

func orderNumber(id int64) string {
	return fmt.Sprintf("CUDECA-%d", id)
}

func certificateNumber(id int64) string {
	return fmt.Sprintf("CERT-%d", id)
}
