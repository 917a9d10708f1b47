package cmd

import (
	"context"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/jetstream"
	inboundCron "cudeca-ticket/inbound/cron"
	inboundHttp "cudeca-ticket/inbound/http"
	"cudeca-ticket/outbound/sqlgen"
	"cudeca-ticket/service"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"log"
	"log/slog"
	"net/http"
	"time"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "http")
	defer stopProfiling()

	validate := validator.New()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	if _, err := jetstream.CreateQueueStream(ctx, js); err != nil {
		log.Fatalln("failed to create stream", err)
	}

	querier := sqlgen.New(db)

	orderService := service.OrderService{
		Db:              db,
		Querier:         querier,
		Cache:           cacheClient,
		Publisher:       js,
		PaymentVerifier: service.TokenPresenceVerifier{},
		Ledger:          service.InventoryLedger{},
		Tickets:         service.NewTicketIssuer(cfg.GetInt("ticket.token_attempts")),
		Certificates:    service.CertificateIssuer{TimeNow: time.Now},
		TimeNow:         time.Now,
		PaymentTokenTTL: cfg.GetDuration("order.payment_token_ttl"),
	}

	donationService := service.DonationService{
		Db:           db,
		Querier:      querier,
		Certificates: service.CertificateIssuer{TimeNow: time.Now},
	}

	ticketService := service.TicketService{
		Querier: querier,
		TimeNow: time.Now,
	}

	mux := http.NewServeMux()

	inboundHttp.RegisterHealthHttp(mux, map[string]inboundHttp.Pinger{
		"database": db,
		"cache": inboundHttp.PingFunc(func(ctx context.Context) error {
			return cacheClient.Ping(ctx).Err()
		}),
		"queue": inboundHttp.PingFunc(func(context.Context) error {
			if !natsConn.IsConnected() {
				return errors.New(natsConn.Status().String())
			}
			return nil
		}),
	})
	inboundHttp.RegisterEventHttp(mux)
	inboundHttp.RegisterOrderHttp(mux, orderService, validate)
	inboundHttp.RegisterDonationHttp(mux, donationService, validate)
	inboundHttp.RegisterTicketHttp(mux, ticketService, validate)

	eventCron := &inboundCron.EventCron{
		Cfg:     cfg,
		Cache:   cacheClient,
		Querier: querier,
		TimeNow: time.Now,
	}

	err := eventCron.InitStockCache(ctx)
	if err != nil {
		log.Fatalln("unable to init event stock cache", err)
	}

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(cfg.GetDuration("server.timeout"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           inboundHttp.AccessLogMiddleware(timeoutMiddleware(inboundHttp.CorsMiddleware(mux))),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started", slog.String("addr", srv.Addr))

	go func() {
		eventCron.Start(ctx)
	}()

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		slog.Error("unable to shutdown server", slog.Any(constant.LogFieldErr, err))
	}

	slog.Info("http server stopped")
}
