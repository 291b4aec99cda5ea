package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/habibiefaried/fountain-relay/internal/config"
	"github.com/habibiefaried/fountain-relay/internal/dnsutil"
	"github.com/habibiefaried/fountain-relay/internal/forwarder"
	"github.com/habibiefaried/fountain-relay/internal/linesource"
	"github.com/habibiefaried/fountain-relay/internal/notify"
	"github.com/habibiefaried/fountain-relay/internal/storage"
)

func main() {
	configPath := flag.String("config", os.Getenv("FOUNTAIN_CONFIG"), "path to YAML config file (optional)")
	preflight := flag.Bool("preflight", true, "print relay and recipient DNS report at startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if *preflight {
		if !dnsutil.PrintRelayRecords(os.Stdout, cfg.SMTP.Host, cfg.SMTP.To) {
			log.Printf("Warning: relay DNS checks failed, alerts may not be delivered")
		}
	}

	fileStore, err := storage.NewFileStorage(cfg.Log.Path)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}

	var store interface {
		storage.Storage
		Close() error
	}
	if cfg.Log.DatabaseURL != "" {
		pgStore, err := storage.NewPostgresStorage(cfg.Log.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to postgres: %v", err)
			log.Printf("Falling back to file-only storage")
			store = fileStore
		} else {
			log.Printf("Postgres storage initialized, using composite storage")
			store = storage.NewCompositeStorage(fileStore, pgStore)
		}
	} else {
		log.Printf("DB_URL not set, using file-only storage")
		store = fileStore
	}

	src, err := linesource.Open(cfg.Serial)
	if err != nil {
		store.Close()
		log.Fatalf("Failed to open serial device: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw := forwarder.New(src, store, notify.NewSMTPNotifier(cfg.SMTP), forwarder.Options{
		Recipients: cfg.SMTP.To,
		OnLogError: cfg.Log.OnError,
	})

	log.Printf("Forwarding %s @ %d baud to %v via %s", cfg.Serial.Device, cfg.Serial.BaudRate, cfg.SMTP.To, cfg.SMTP.Addr())
	runErr := fw.Run(ctx)

	src.Close()
	if err := store.Close(); err != nil {
		log.Printf("Error closing storage: %v", err)
	}
	if runErr != nil {
		log.Fatalf("Forwarder stopped: %v", runErr)
	}
	log.Println("Shutdown complete")
}
