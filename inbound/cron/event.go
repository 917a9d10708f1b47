package cron

import (
	"context"
	"cudeca-ticket/common"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/vars"
	"cudeca-ticket/model"
	"cudeca-ticket/outbound/sqlgen"
	"fmt"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"log/slog"
	"time"
)

type EventCron struct {
	Cfg     *viper.Viper
	Cache   *redis.Client
	Querier *sqlgen.Queries
	TimeNow func() time.Time
}

func (in EventCron) Start(ctx context.Context) {
	refreshTicker := time.NewTicker(in.Cfg.GetDuration("cron.event.refresh.interval"))
	defer refreshTicker.Stop()

	in.refresh(ctx)

	slog.Info("event cron started")

	for {
		select {
		case <-refreshTicker.C:
			in.refresh(ctx)
		case <-ctx.Done():
			slog.Info("event cron stopped")
			return
		}
	}
}

// refresh reloads the upcoming catalog from the database. The cached stock
// counters are overwritten with the same values.
func (in EventCron) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, in.Cfg.GetDuration("cron.event.refresh.timeout"))
	defer cancel()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.DebugContext(ctx, "refreshing events", traceIdAttr)

	events, err := in.listUpcoming(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list upcoming events", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	catalog := make([]model.EventResponse, 0, len(events))
	for _, event := range events {
		catalog = append(catalog, model.EventResponse{
			ID:          event.ID,
			Name:        event.Name,
			EventType:   event.EventType,
			Description: event.Description,
			StartsAt:    event.StartsAt.Time,
			Location:    event.Location,
			Stock:       event.Stock,
		})
	}

	vars.SetEvents(catalog)

	if err := in.writeStock(ctx, events); err != nil {
		slog.WarnContext(ctx, "failed to refresh stock cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	slog.DebugContext(ctx, "events refreshed successfully", traceIdAttr, slog.Int("count", len(catalog)))
}

func (in EventCron) InitStockCache(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	events, err := in.listUpcoming(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list upcoming events", slog.Any(constant.LogFieldErr, err))
		return fmt.Errorf("list upcoming events: %w", err)
	}

	if len(events) == 0 {
		slog.InfoContext(ctx, "no upcoming events found to initialize")
		return nil
	}

	if err := in.writeStock(ctx, events); err != nil {
		slog.ErrorContext(ctx, "failed to initialize event stock in cache", slog.Any(constant.LogFieldErr, err))
		return err
	}

	slog.InfoContext(ctx, "event stock initialized successfully", slog.Int("count", len(events)))
	return nil
}

func (in EventCron) listUpcoming(ctx context.Context) ([]sqlgen.Event, error) {
	now := time.Now
	if in.TimeNow != nil {
		now = in.TimeNow
	}

	return in.Querier.ListUpcomingEvents(ctx, pgtype.Timestamptz{Time: now(), Valid: true})
}

func (in EventCron) writeStock(ctx context.Context, events []sqlgen.Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := in.Cache.TxPipeline()
	for _, event := range events {
		pipe.Set(ctx, fmt.Sprintf(constant.EachEventStockKey, event.ID), event.Stock, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("execute pipeline: %w", err)
	}

	return nil
}
