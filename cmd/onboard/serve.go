package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lingokit/onboard"
	"github.com/lingokit/onboard/internal/metrics"
	httpAdapter "github.com/lingokit/onboard/pkg/adapters/http"
	"github.com/lingokit/onboard/pkg/adapters/memory"
	redisAdapter "github.com/lingokit/onboard/pkg/adapters/redis"
	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the onboarding session over HTTP",
	Long:  `Starts the onboarding engine in server mode, exposing the session snapshot and commands as a JSON API for a UI shell. Metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		bankPath, _ := cmd.Flags().GetString("bank")

		b := bank.Default()
		if bankPath != "" {
			var err error
			if b, err = bank.LoadFile(bankPath); err != nil {
				return err
			}
		}

		var flags ports.FlagStore = memory.NewFlagStore()
		if redisAddr == "" {
			redisAddr = os.Getenv("ONBOARD_REDIS_ADDR")
		}
		if redisAddr != "" {
			flags = redisAdapter.New(redisAddr, os.Getenv("ONBOARD_REDIS_PASSWORD"), 0)
		}

		identity := memory.NewIdentity(&ports.UserIdentity{
			ID:            "local-user",
			Email:         "local@lingokit.dev",
			EmailVerified: true,
		})

		reg := prometheus.NewRegistry()
		collector := metrics.NewCollector(reg)

		eng := onboard.New(b, identity, flags,
			onboard.WithLogger(logger),
			onboard.WithHooks(collector.Hooks()),
		)

		handler := httpAdapter.NewHandler(eng,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(reg),
		)

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting onboarding server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8321", "Listen address")
	serveCmd.Flags().String("redis", "", "Redis address for the shared completion-flag cache (in-memory when empty)")
	serveCmd.Flags().String("bank", "", "Path to a YAML question bank (built-in script when empty)")
}
