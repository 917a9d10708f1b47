package otel

import (
	"context"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"strings"
)

type PgxCustomTracer struct{}

func (p PgxCustomTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	name := queryName(data.SQL)

	ctx, span := Tracer.Start(ctx, "pgx."+name, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", name),
		attribute.String("db.statement", data.SQL),
		attribute.Int("db.args.count", len(data.Args)),
	)

	return ctx
}

func (p PgxCustomTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	if data.Err != nil && data.Err != pgx.ErrNoRows {
		span.SetStatus(codes.Error, data.Err.Error())
		span.RecordError(data.Err)
		return
	}

	span.SetStatus(codes.Ok, "")
	span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
}

// queryName extracts the sqlc query name from the "-- name: X :kind" header, falling back to "query".
func queryName(sql string) string {
	const prefix = "-- name: "

	sql = strings.TrimSpace(sql)
	if !strings.HasPrefix(sql, prefix) {
		return "query"
	}

	fields := strings.Fields(strings.TrimPrefix(sql, prefix))
	if len(fields) == 0 {
		return "query"
	}

	return fields[0]
}
