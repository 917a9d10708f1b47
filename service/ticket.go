package service

import (
	"context"
	"cudeca-ticket/common"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/common/otel"
	"cudeca-ticket/model"
	"cudeca-ticket/outbound/sqlgen"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"log/slog"
	"strings"
	"time"
)

const DefaultTokenAttempts = 5

// TicketIssuer mints access tokens and stores a whole batch of tickets per write.
type TicketIssuer struct {
	// NewToken returns a fresh random access token. Defaults to a v4 uuid.
	NewToken    func() string
	MaxAttempts int
}

func NewTicketIssuer(maxAttempts int) TicketIssuer {
	return TicketIssuer{NewToken: uuid.NewString, MaxAttempts: maxAttempts}
}

// Issue stores quantity unused tickets for order and event. Tokens that collide with an
// existing ticket are skipped by the insert and minted again, up to MaxAttempts rounds.
func (in TicketIssuer) Issue(
	ctx context.Context,
	q *sqlgen.Queries,
	order sqlgen.Order,
	eventID int64,
	quantity int32,
	holderName string,
	category string,
) ([]sqlgen.Ticket, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", errs.ErrInvalidRequest)
	}

	newToken := in.NewToken
	if newToken == nil {
		newToken = uuid.NewString
	}

	maxAttempts := in.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultTokenAttempts
	}

	if strings.TrimSpace(category) == "" {
		category = constant.DefaultTicketCategory
	}

	tickets := make([]sqlgen.Ticket, 0, quantity)
	missing := int(quantity)
	for attempt := 1; missing > 0; attempt++ {
		if attempt > maxAttempts {
			return nil, errs.Storage("issue tickets", fmt.Errorf("%d access tokens still colliding after %d attempts", missing, maxAttempts))
		}

		tokens := make([]string, missing)
		for i := range tokens {
			tokens[i] = newToken()
		}

		inserted, err := q.InsertTickets(ctx, sqlgen.InsertTicketsParams{
			AccessTokens: tokens,
			HolderName:   holderName,
			Category:     category,
			OrderID:      order.ID,
			EventID:      eventID,
		})
		if err != nil {
			return nil, errs.Storage("insert tickets", err)
		}

		tickets = append(tickets, inserted...)
		missing -= len(inserted)
	}

	return tickets, nil
}

// TicketService handles ticket checks at the venue entrance.
type TicketService struct {
	Querier *sqlgen.Queries

	TimeNow func() time.Time
}

// Redeem marks the ticket behind accessToken as used. A ticket can be redeemed once.
func (s TicketService) Redeem(ctx context.Context, accessToken string) (model.TicketResponse, error) {
	ctx, span := otel.Tracer.Start(ctx, "TicketService.Redeem")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	if strings.TrimSpace(accessToken) == "" {
		return model.TicketResponse{}, fmt.Errorf("%w: access token is required", errs.ErrInvalidRequest)
	}

	ticket, err := s.Querier.RedeemTicket(ctx, sqlgen.RedeemTicketParams{
		AccessToken: accessToken,
		ValidatedAt: pgtype.Timestamptz{Time: s.TimeNow(), Valid: true},
	})
	if err == nil {
		slog.InfoContext(ctx, "ticket redeemed", traceIdAttr, slog.Int64("ticket_id", ticket.ID), slog.Int64("event_id", ticket.EventID))
		return toTicketResponse(ticket), nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		common.UtilSpanError(span, err)
		slog.ErrorContext(ctx, "failed to redeem ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.TicketResponse{}, errs.Storage("redeem ticket", err)
	}

	ticket, err = s.Querier.GetTicketByAccessToken(ctx, accessToken)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TicketResponse{}, fmt.Errorf("%w: ticket", errs.ErrNotFound)
	}
	if err != nil {
		common.UtilSpanError(span, err)
		slog.ErrorContext(ctx, "failed to get ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.TicketResponse{}, errs.Storage("get ticket", err)
	}

	return model.TicketResponse{}, fmt.Errorf("%w: ticket %d was already used at %s", errs.ErrInvalidState, ticket.ID, ticket.ValidatedAt.Time.Format(time.RFC3339))
}
