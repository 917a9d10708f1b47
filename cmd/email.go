package cmd

import (
	"context"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/jetstream"
	"cudeca-ticket/inbound/event"
	emailOutbound "cudeca-ticket/outbound/email"
	"log"
	"log/slog"
)

func runQueueEmailCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "email")
	defer stopProfiling()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)

	st, err := jetstream.CreateQueueStream(ctx, js)
	if err != nil {
		log.Fatalln("failed to create stream", err)
	}

	outbound := &emailOutbound.EmailOutbound{Cfg: cfg}
	if err := outbound.Init(); err != nil {
		log.Fatalln("failed to init email outbound", err)
	}

	emailEvent := event.EmailEvent{
		Sender:  outbound,
		Timeout: cfg.GetDuration("queue.email.timeout"),
	}

	cons, err := jetstream.CreateQueueConsumer(ctx, st, jetstream.ConsumerOptions{
		Durable:       "consumer-email",
		FilterSubject: constant.EmailWildcard,
		MaxDeliver:    cfg.GetInt("queue.email.max_deliver"),
		AckWait:       cfg.GetDuration("queue.email.ack_wait"),
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	slog.InfoContext(ctx, "email queue consumer started")

	err = jetstream.Consume(ctx, cons, map[string]jetstream.Handler{
		constant.SubjectSendEmail: emailEvent.SendEmailHandler,
	})
	if err != nil {
		log.Fatalln("failed to consume messages", err)
	}

	slog.InfoContext(ctx, "email queue consumer stopped")
}
