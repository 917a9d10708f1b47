package cmd

import (
	"context"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/otel"
	"github.com/spf13/cobra"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Start() {
	cfg := newCfg("env")
	slog.SetLogLoggerLevel(slog.Level(cfg.GetInt("log.level")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.SetupTracing(ctx, cfg)
	if err != nil {
		log.Fatalln("unable to setup tracing", err)
	}
	defer func() {
		ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(ctxShutDown); err != nil {
			slog.Error("unable to flush traces", slog.Any(constant.LogFieldErr, err))
		}
	}()

	rootCmd := &cobra.Command{Use: "cudeca-ticket"}
	cmd := []*cobra.Command{
		{
			Use:   "serve-http",
			Short: "Run HTTP server",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
		},
		{
			Use:   "serve-queue:order",
			Short: "Run queue order server",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueOrderCmd(ctx)
			},
		},
		{
			Use:   "serve-queue:email",
			Short: "Run queue email server",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueEmailCmd(ctx)
			},
		},
		{
			Use:   "dev",
			Short: "Run dev server, for testing purpose",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
			PreRun: func(cmd *cobra.Command, args []string) {
				go func() {
					runQueueOrderCmd(ctx)
				}()
				go func() {
					runQueueEmailCmd(ctx)
				}()
			},
		},
	}

	rootCmd.AddCommand(cmd...)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
