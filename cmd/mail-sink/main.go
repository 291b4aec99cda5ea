package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/habibiefaried/fountain-relay/internal/dnsutil"
	"github.com/habibiefaried/fountain-relay/internal/parser"
	"github.com/habibiefaried/fountain-relay/internal/server"
	"github.com/habibiefaried/fountain-relay/internal/storage"
)

func main() {
	fqdn := os.Getenv("FQDN")
	if fqdn == "" {
		fqdn = "localhost"
	}
	if err := dnsutil.ValidateHost(fqdn); err != nil {
		log.Fatalf("Invalid FQDN: %v", err)
	}

	addr := os.Getenv("SINK_ADDR")
	if addr == "" {
		addr = ":2525"
	}

	var store storage.Storage
	if path := os.Getenv("SINK_LOG"); path != "" {
		fileStore, err := storage.NewFileStorage(path)
		if err != nil {
			log.Fatalf("Failed to open sink log: %v", err)
		}
		defer fileStore.Close()
		store = fileStore
		log.Printf("Recording received alerts in %s", path)
	}

	be := &server.Backend{
		Username: os.Getenv("SINK_USERNAME"),
		Password: os.Getenv("SINK_PASSWORD"),
		OnAlert: func(a *parser.Alert) {
			if store == nil {
				return
			}
			if err := store.Append(storage.Entry{ID: storage.NewID(), Time: time.Now(), Message: a.Subject}); err != nil {
				log.Printf("Error recording alert: %v", err)
			}
		},
	}
	if be.Username == "" {
		log.Printf("SINK_USERNAME not set — accepting mail without authentication")
	}

	go func() {
		if err := server.RunSMTPServer(addr, fqdn, be); err != nil {
			log.Fatalf("Failed to start SMTP sink: %v", err)
		}
	}()

	// Single HTTP API for status checks
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "48080"
	}
	httpAddr := ":" + port
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "OK")
	})
	log.Printf("Starting HTTP API on %s", httpAddr)
	if err := http.ListenAndServe(httpAddr, nil); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}
