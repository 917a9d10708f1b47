package http

import (
	"context"
	"cudeca-ticket/model"
	"log/slog"
	"net/http"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function, such as a redis ping, to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHttp struct {
	Checks map[string]Pinger
}

func RegisterHealthHttp(mux *http.ServeMux, checks map[string]Pinger) *HealthHttp {
	in := &HealthHttp{Checks: checks}

	mux.HandleFunc("GET /health", in.health)

	return in
}

func (in *HealthHttp) health(w http.ResponseWriter, r *http.Request) {
	resp := model.HealthResponse{Status: "ok", Checks: make(map[string]string, len(in.Checks))}
	status := http.StatusOK

	for name, check := range in.Checks {
		if err := check.Ping(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "health check failed", slog.String("check", name), slog.Any("error", err))
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}

	writeJSONResponse(w, status, resp)
}
