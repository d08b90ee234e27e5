package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/binsort/internal/platform/web"
	"github.com/vovakirdan/binsort/internal/storage"
)

var (
	flagWebAddr        string
	flagWebIdleTimeout int
	flagVerbose        bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server for browser clients",
	Long: `Start an HTTP server that runs games for browser clients.

The server drives each session in real time and exposes a JSON API:

  POST   /api/sessions                 {"variant":"classic","name":"ann"}
  POST   /api/sessions/{id}/start      {"name":"ann"}
  POST   /api/sessions/{id}/events     {"events":[{"kind":"move_left"}]}
  POST   /api/sessions/{id}/resize     {"width":800,"height":600}
  GET    /api/sessions/{id}/frame
  GET    /api/sessions/{id}/stream     (server-sent events)
  POST   /api/sessions/{id}/restart
  POST   /api/sessions/{id}/reward     {"email":"you@example.com"}
  DELETE /api/sessions/{id}
  GET    /api/variants
  GET    /api/scores/{game}?limit=10

Examples:
  binsort web
  binsort web --addr :9090 --reward-url https://rewards.example.com/redeem`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().IntVar(&flagWebIdleTimeout, "idle-timeout", 10, "Minutes before an untouched session is removed")
	webCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every request")
}

func runWeb(_ *cobra.Command, _ []string) error {
	webLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "binsort-web",
	})
	if flagVerbose {
		webLogger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		webLogger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.IdleTimeout = time.Duration(flagWebIdleTimeout) * time.Minute

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(cfg, store, rewardClient(), webLogger)
	return server.ListenAndServe(ctx)
}
