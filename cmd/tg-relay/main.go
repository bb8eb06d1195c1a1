package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tg-relay/internal/bot"
	"tg-relay/internal/config"
	"tg-relay/internal/crash"
	"tg-relay/internal/handler"
	"tg-relay/internal/logger"
	"tg-relay/internal/service"
	"tg-relay/internal/storage"
)

// relayRecordRetention is how long audit rows are kept before pruning.
const relayRecordRetention = 90 * 24 * time.Hour

func main() {
	defer crash.RecoverWithStackAndExit("main")

	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Setup(cfg); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Database.Enabled {
		if err := storage.Initialize(cfg); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	}

	records := storage.NewRelayRecordRepository(storage.GetDB())
	if err := records.MigrateTable(); err != nil {
		logger.Warningf("Error migrating RelayRecord table: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	botService, server, err := bot.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v", err)
	}

	// Core relay state, injected into every handler.
	registry := service.NewRegistry(cfg.Relay.AdminIDs, cfg.Relay.AllowedGroups, cfg.Relay.BlockedGroups)
	pending := service.NewPendingStore(time.Duration(cfg.Relay.PendingTTLMinutes) * time.Minute)

	transport := bot.NewTransport(botService.Bot)
	router := service.NewRouter(registry, transport, records)
	dispatcher := service.NewDispatcher(registry, pending, transport, records)
	controls := service.NewControls(registry, pending)

	h := handler.NewHandler(botService.Bot, transport, registry, pending, router, dispatcher, controls)
	h.Register(botService.Handler)

	if server != nil {
		crash.SafeGoroutine("webhook-server", func() {
			if err := server.Start(); err != nil {
				logger.Errorf("HTTP server error: %v", err)
			}
		})

		// Give server time to start before updates flow in.
		time.Sleep(500 * time.Millisecond)
	}

	crash.SafeGoroutine("relay-record-pruner", func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := records.PruneOlderThan(relayRecordRetention); err != nil {
				logger.Warningf("Error pruning relay records: %v", err)
			} else if n > 0 {
				logger.Infof("Pruned %d relay records", n)
			}
		}
	})

	logger.Infof("Relay starting with %d admins", len(cfg.Relay.AdminIDs))
	crash.SafeGoroutine("bot-handler", botService.Start)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Infof("Received signal: %v, shutting down...", sig)

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warningf("HTTP server shutdown error: %v", err)
		}
	}

	botService.Stop()
	logger.Infof("Relay stopped gracefully")
}
