package cmd

import (
	"context"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/jetstream"
	"cudeca-ticket/inbound/event"
	"cudeca-ticket/outbound/sqlgen"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"log"
	"log/slog"
)

func runQueueOrderCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "order")
	defer stopProfiling()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)

	st, err := jetstream.CreateQueueStream(ctx, js)
	if err != nil {
		log.Fatalln("failed to create stream", err)
	}

	orderEvent := event.OrderEvent{
		Querier:         sqlgen.New(db),
		Cache:           cacheClient,
		Publisher:       js,
		AmountFormatter: message.NewPrinter(language.Spanish),
		Timeout:         cfg.GetDuration("queue.order.timeout"),
	}

	cons, err := jetstream.CreateQueueConsumer(ctx, st, jetstream.ConsumerOptions{
		Durable:       "consumer-order",
		FilterSubject: constant.OrderWildcard,
		MaxDeliver:    cfg.GetInt("queue.order.max_deliver"),
		AckWait:       cfg.GetDuration("queue.order.ack_wait"),
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	slog.InfoContext(ctx, "order queue consumer started")

	err = jetstream.Consume(ctx, cons, map[string]jetstream.Handler{
		constant.SubjectOrderFulfilled: orderEvent.FulfilledHandler,
		constant.SubjectOrderRefunded:  orderEvent.RefundedHandler,
	})
	if err != nil {
		log.Fatalln("failed to consume messages", err)
	}

	slog.InfoContext(ctx, "order queue consumer stopped")
}
