package service

import (
	"context"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/outbound/sqlgen"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
)

// InventoryLedger owns every change to events.stock. Both operations run on the
// caller's querier so they commit or roll back with the surrounding transaction.
type InventoryLedger struct{}

// Reserve takes quantity seats from the event in a single conditional update.
// Either the whole quantity is taken or nothing is.
func (InventoryLedger) Reserve(ctx context.Context, q *sqlgen.Queries, eventID int64, quantity int32) (sqlgen.Event, error) {
	if quantity < 1 {
		return sqlgen.Event{}, fmt.Errorf("%w: quantity must be at least 1", errs.ErrInvalidRequest)
	}

	event, err := q.ReserveEventStock(ctx, sqlgen.ReserveEventStockParams{Quantity: quantity, ID: eventID})
	if err == nil {
		return event, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return sqlgen.Event{}, errs.Storage("reserve event stock", err)
	}

	event, err = q.GetEvent(ctx, eventID)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlgen.Event{}, fmt.Errorf("%w: event %d", errs.ErrNotFound, eventID)
	}
	if err != nil {
		return sqlgen.Event{}, errs.Storage("get event", err)
	}

	return sqlgen.Event{}, fmt.Errorf("%w: event %d has %d left, %d requested", errs.ErrInsufficientStock, eventID, event.Stock, quantity)
}

// Release gives quantity seats back to the event.
func (InventoryLedger) Release(ctx context.Context, q *sqlgen.Queries, eventID int64, quantity int32) (sqlgen.Event, error) {
	if quantity < 1 {
		return sqlgen.Event{}, fmt.Errorf("%w: quantity must be at least 1", errs.ErrInvalidRequest)
	}

	event, err := q.ReleaseEventStock(ctx, sqlgen.ReleaseEventStockParams{Quantity: quantity, ID: eventID})
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlgen.Event{}, fmt.Errorf("%w: event %d", errs.ErrNotFound, eventID)
	}
	if err != nil {
		return sqlgen.Event{}, errs.Storage("release event stock", err)
	}

	return event, nil
}
